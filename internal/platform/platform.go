// Package platform wraps OS-specific I/O hints used while hashing.
package platform

// fder is implemented by files backed by an OS descriptor, such as *os.File.
type fder interface {
	Fd() uintptr
}

// AdviseSequential hints to the kernel that f will be read front to back.
// Files without a descriptor (in-memory filesystems) are left alone.
func AdviseSequential(f any) {
	if d, ok := f.(fder); ok {
		adviseSequential(d.Fd())
	}
}
