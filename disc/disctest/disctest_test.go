// https://github.com/msgpo/redream-next
//
// Copyright (c) The redream-next Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package disctest

import (
	"testing"

	"github.com/msgpo/redream-next/disc"
)

func newFake() *Fake {
	return NewSingleSession(1, []disc.Track{
		{Num: 1, ADR: 1, Ctrl: 0, FAD: 150},
		{Num: 2, ADR: 1, Ctrl: 4, FAD: 10000},
	}, 20000)
}

func TestReadSectorDeterministic(t *testing.T) {
	f := newFake()

	out := make([]byte, 16)
	n, err := f.ReadSector(100, 0, 0, out)
	if err != nil {
		t.Fatalf("ReadSector: %v", err)
	}
	if n != len(out) {
		t.Fatalf("n = %d, want %d", n, len(out))
	}
	for i, b := range out {
		if want := byte(100 + i); b != want {
			t.Fatalf("out[%d] = %#x, want %#x", i, b, want)
		}
	}
}

func TestGetTrackNotFound(t *testing.T) {
	f := newFake()

	if _, err := f.GetTrack(99); err != disc.ErrNoDisc {
		t.Fatalf("GetTrack(99) err = %v, want disc.ErrNoDisc", err)
	}
}

func TestGetSessionBounds(t *testing.T) {
	f := newFake()

	if _, err := f.GetSession(0); err == nil {
		t.Fatalf("GetSession(0) expected error, got nil")
	}
	if _, err := f.GetSession(2); err == nil {
		t.Fatalf("GetSession(2) expected error (only one session), got nil")
	}

	sess, err := f.GetSession(1)
	if err != nil {
		t.Fatalf("GetSession(1): %v", err)
	}
	if sess.FirstTrack.Num != 1 {
		t.Fatalf("FirstTrack.Num = %d, want 1", sess.FirstTrack.Num)
	}
}

func TestDestroyMarksDestroyed(t *testing.T) {
	f := newFake()

	if f.Destroyed() {
		t.Fatalf("Destroyed() = true before Destroy")
	}
	f.Destroy()
	if !f.Destroyed() {
		t.Fatalf("Destroyed() = false after Destroy")
	}
}
