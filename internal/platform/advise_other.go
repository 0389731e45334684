//go:build !linux

package platform

// adviseSequential is a no-op on non-Linux platforms.
func adviseSequential(_ uintptr) {}
