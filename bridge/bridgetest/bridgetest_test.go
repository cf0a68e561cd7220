// https://github.com/msgpo/redream-next
//
// Copyright (c) The redream-next Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package bridgetest

import (
	"bytes"
	"testing"
)

func TestRaiseClearTracksState(t *testing.T) {
	var l Loopback

	l.RaiseInterrupt(0)
	if !l.Raised || l.RaiseCount != 1 {
		t.Fatalf("after RaiseInterrupt: Raised=%v RaiseCount=%d", l.Raised, l.RaiseCount)
	}

	l.ClearInterrupt(0)
	if l.Raised || l.ClearCount != 1 {
		t.Fatalf("after ClearInterrupt: Raised=%v ClearCount=%d", l.Raised, l.ClearCount)
	}
}

func TestCopySectorsAccumulatesGuest(t *testing.T) {
	var l Loopback

	n1 := l.CopySectors(0, 0, []byte{1, 2, 3})
	n2 := l.CopySectors(0, 3, []byte{4, 5})

	if n1 != 3 || n2 != 2 {
		t.Fatalf("CopySectors returned (%d, %d), want (3, 2)", n1, n2)
	}
	if !bytes.Equal(l.Guest, []byte{1, 2, 3, 4, 5}) {
		t.Fatalf("Guest = %v, want [1 2 3 4 5]", l.Guest)
	}
}
