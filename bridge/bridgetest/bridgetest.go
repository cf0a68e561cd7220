// In-memory bridge.Bridge fake for tests.
// https://github.com/msgpo/redream-next
//
// Copyright (c) The redream-next Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package bridgetest implements fakes for package bridge, in the style of
// periph's conn/conntest fakes for package conn.
package bridgetest

import (
	"sync"

	"github.com/msgpo/redream-next/bridge"
)

// Loopback is a bridge.Bridge that records interrupt state and copies DMA
// output into a local byte slice instead of real guest memory.
type Loopback struct {
	sync.Mutex

	// Raised is true between a RaiseInterrupt and the next
	// ClearInterrupt.
	Raised bool
	// RaiseCount counts every RaiseInterrupt call.
	RaiseCount int
	// ClearCount counts every ClearInterrupt call.
	ClearCount int

	// Guest accumulates every byte slice passed to CopySectors, in
	// order, as a stand-in for guest memory.
	Guest []byte
}

// RaiseInterrupt implements bridge.Bridge.
func (l *Loopback) RaiseInterrupt(line bridge.Line) {
	l.Lock()
	defer l.Unlock()

	l.Raised = true
	l.RaiseCount++
}

// ClearInterrupt implements bridge.Bridge.
func (l *Loopback) ClearInterrupt(line bridge.Line) {
	l.Lock()
	defer l.Unlock()

	l.Raised = false
	l.ClearCount++
}

// CopySectors implements bridge.Bridge.
func (l *Loopback) CopySectors(space int, dst uint32, src []byte) int {
	l.Lock()
	defer l.Unlock()

	l.Guest = append(l.Guest, src...)
	return len(src)
}
