// https://github.com/msgpo/redream-next
//
// Copyright (c) The redream-next Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package bits

import "testing"

func TestSetClearGet(t *testing.T) {
	var v uint16

	Set(&v, 3)
	if !Get(&v, 3) {
		t.Fatalf("bit 3 not set after Set")
	}

	Clear(&v, 3)
	if Get(&v, 3) {
		t.Fatalf("bit 3 still set after Clear")
	}
}

func TestSetTo(t *testing.T) {
	var v uint16

	SetTo(&v, 7, true)
	if !Get(&v, 7) {
		t.Fatalf("bit 7 not set after SetTo(true)")
	}

	SetTo(&v, 7, false)
	if Get(&v, 7) {
		t.Fatalf("bit 7 still set after SetTo(false)")
	}
}

func TestGetNSetN(t *testing.T) {
	var v uint16

	SetN(&v, 4, 0xf, 0xa)
	if got := GetN(&v, 4, 0xf); got != 0xa {
		t.Fatalf("GetN = %#x, want 0xa", got)
	}

	// adjacent bits outside the field must be untouched
	Set(&v, 0)
	Set(&v, 9)
	if got := GetN(&v, 4, 0xf); got != 0xa {
		t.Fatalf("GetN after neighboring Set = %#x, want 0xa", got)
	}
}

func TestSetNMasksValue(t *testing.T) {
	var v uint16

	SetN(&v, 0, 0x3, 0xff) // value wider than mask must be truncated
	if got := GetN(&v, 0, 0x3); got != 0x3 {
		t.Fatalf("GetN = %#x, want 0x3", got)
	}
}
