//go:build linux

package platform

import "golang.org/x/sys/unix"

// adviseSequential widens read-ahead for the descriptor. Errors are ignored;
// not every filesystem honours fadvise.
//
//nolint:gosec // G115: fd values are small non-negative integers
func adviseSequential(fd uintptr) {
	//nolint:errcheck // fadvise is advisory
	unix.Fadvise(int(fd), 0, 0, unix.FADV_SEQUENTIAL)
}
