// File: backend/region_other.go
//go:build !linux

//
// Package backend: portable region allocation on the Go heap.
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package backend

func allocRegion(sz int) (data []byte, mapped bool) {
	return make([]byte, sz), false
}

func freeRegion(_ []byte, _ bool) error { return nil }
