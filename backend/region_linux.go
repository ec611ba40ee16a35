// File: backend/region_linux.go
//go:build linux

//
// Package backend: Linux-specific region allocation via anonymous mmap.
// Keeps bank memory off the Go heap, page-aligned, and invisible to the GC,
// matching how the physical banks behave on device. Fallback to Go heap if
// the mapping fails.
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package backend

import "golang.org/x/sys/unix"

// allocRegion maps sz bytes of anonymous memory; mapped=false on fallback.
func allocRegion(sz int) (data []byte, mapped bool) {
	data, err := unix.Mmap(-1, 0, sz,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANONYMOUS|unix.MAP_PRIVATE)
	if err != nil {
		return make([]byte, sz), false
	}
	return data[:sz], true
}

// freeRegion returns mapped memory to the OS.
func freeRegion(data []byte, mapped bool) error {
	if !mapped || data == nil {
		return nil
	}
	return unix.Munmap(data)
}
