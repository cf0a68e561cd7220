// https://github.com/msgpo/redream-next
//
// Copyright (c) The redream-next Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package buffer

import (
	"bytes"
	"testing"
)

func TestResetLoadsData(t *testing.T) {
	var s Staging

	s.Reset([]byte{1, 2, 3, 4})

	if s.Head() != 0 {
		t.Fatalf("Head = %d, want 0", s.Head())
	}
	if s.Size() != 4 {
		t.Fatalf("Size = %d, want 4", s.Size())
	}
	if !bytes.Equal(s.Bytes(), []byte{1, 2, 3, 4}) {
		t.Fatalf("Bytes = %v, want [1 2 3 4]", s.Bytes())
	}
}

func TestResetPastCapacityPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("Reset with oversized payload did not panic")
		}
	}()

	var s Staging
	s.Reset(make([]byte, Size+1))
}

func TestReadWordAdvancesCursor(t *testing.T) {
	var s Staging
	s.Reset([]byte{0x34, 0x12, 0x78, 0x56})

	if w := s.ReadWord(); w != 0x1234 {
		t.Fatalf("ReadWord = %#04x, want 0x1234", w)
	}
	if s.Head() != 2 {
		t.Fatalf("Head = %d after one ReadWord, want 2", s.Head())
	}
	if w := s.ReadWord(); w != 0x5678 {
		t.Fatalf("ReadWord = %#04x, want 0x5678", w)
	}
	if !s.Drained() {
		t.Fatalf("Drained = false, want true after consuming all loaded bytes")
	}
}

func TestReadWordZeroPadsPastLoadedSize(t *testing.T) {
	var s Staging
	s.Reset([]byte{0xff}) // one byte loaded, but a word read spans two

	if w := s.ReadWord(); w != 0x00ff {
		t.Fatalf("ReadWord = %#04x, want 0x00ff (zero-padded high byte)", w)
	}
}

func TestWriteWordGrowsSize(t *testing.T) {
	var s Staging
	s.Reset(nil)

	s.WriteWord(0x1234)
	if s.Size() != 2 {
		t.Fatalf("Size = %d after one WriteWord, want 2", s.Size())
	}

	s.WriteWord(0x5678)
	if s.Size() != 4 {
		t.Fatalf("Size = %d after two WriteWords, want 4", s.Size())
	}

	want := []byte{0x34, 0x12, 0x78, 0x56}
	if !bytes.Equal(s.Bytes(), want) {
		t.Fatalf("Bytes = %v, want %v", s.Bytes(), want)
	}
}

func TestRemaining(t *testing.T) {
	var s Staging
	s.Reset([]byte{1, 2, 3, 4})

	if r := s.Remaining(); r != 4 {
		t.Fatalf("Remaining = %d, want 4", r)
	}
	s.ReadWord()
	if r := s.Remaining(); r != 2 {
		t.Fatalf("Remaining = %d after one ReadWord, want 2", r)
	}
}
