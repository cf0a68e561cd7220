// Host I/O bridge collaborator interface for the GD-ROM drive controller.
// https://github.com/msgpo/redream-next
//
// Copyright (c) The redream-next Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package bridge defines the host I/O bridge collaborator: the system
// component that raises/clears the drive's interrupt line and copies bytes
// between guest address space and host buffers during DMA. Its internals
// are out of scope here; this package names only the boundary.
package bridge

// Line identifies the drive's interrupt line on the bridge.
type Line int

// Bridge is the host I/O bridge the drive core drives its interrupt and DMA
// copy-out through.
type Bridge interface {
	// RaiseInterrupt asserts the drive's interrupt line.
	RaiseInterrupt(line Line)

	// ClearInterrupt deasserts the drive's interrupt line.
	ClearInterrupt(line Line)

	// CopySectors copies src into guest memory space at dst, returning
	// the number of bytes copied.
	CopySectors(space int, dst uint32, src []byte) (n int)
}
