// In-memory disc.Disc fake for tests.
// https://github.com/msgpo/redream-next
//
// Copyright (c) The redream-next Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package disctest implements fakes for package disc, in the style of
// periph's conn/conntest fakes for package conn.
package disctest

import (
	"github.com/msgpo/redream-next/disc"
)

// Fake is an in-memory disc.Disc backed by a fixed track list. Sector
// contents are synthesized deterministically from the requested FAD so
// tests can assert on read output without shipping a real disc image.
type Fake struct {
	Format   uint16
	Tracks   []disc.Track
	Sessions []disc.Session
	Meta     disc.Meta

	destroyed bool
}

// NewSingleSession builds a Fake with one data session spanning the given
// tracks, with the given leadout FAD.
func NewSingleSession(format uint16, tracks []disc.Track, leadout disc.FAD) *Fake {
	return &Fake{
		Format: format,
		Tracks: tracks,
		Sessions: []disc.Session{
			{FirstTrack: tracks[0], LeadoutFAD: leadout},
		},
		Meta: disc.Meta{Name: "FAKE", Version: "1", ID: "FAKE-0001"},
	}
}

// ReadSector implements disc.Disc. It never fails; contents are a
// deterministic pattern derived from fad so round-trip reads are
// verifiable without backing storage.
func (f *Fake) ReadSector(fad disc.FAD, format uint8, mask uint8, out []byte) (int, error) {
	n := len(out)

	if n > disc.MaxSectorSize {
		n = disc.MaxSectorSize
	}

	for i := 0; i < n; i++ {
		out[i] = byte(uint32(fad) + uint32(i))
	}

	return n, nil
}

// GetTOC implements disc.Disc.
func (f *Fake) GetTOC(area int) (first, last int, leadinFAD, leadoutFAD disc.FAD, err error) {
	first = f.Tracks[0].Num
	last = f.Tracks[len(f.Tracks)-1].Num
	leadinFAD = f.Tracks[0].FAD
	leadoutFAD = f.Sessions[len(f.Sessions)-1].LeadoutFAD
	return
}

// GetTrack implements disc.Disc.
func (f *Fake) GetTrack(num int) (disc.Track, error) {
	for _, t := range f.Tracks {
		if t.Num == num {
			return t, nil
		}
	}
	return disc.Track{}, disc.ErrNoDisc
}

// GetSession implements disc.Disc. index is 1-based; 0 is handled by the
// drive core itself.
func (f *Fake) GetSession(index int) (disc.Session, error) {
	if index < 1 || index > len(f.Sessions) {
		return disc.Session{}, disc.ErrNoDisc
	}
	return f.Sessions[index-1], nil
}

// NumSessions implements disc.Disc.
func (f *Fake) NumSessions() int { return len(f.Sessions) }

// GetFormat implements disc.Disc.
func (f *Fake) GetFormat() uint16 { return f.Format }

// GetMeta implements disc.Disc.
func (f *Fake) GetMeta() disc.Meta { return f.Meta }

// Destroy implements disc.Disc.
func (f *Fake) Destroy() { f.destroyed = true }

// Destroyed reports whether Destroy has been called, for assertions in
// tests that exercise disc replacement.
func (f *Fake) Destroyed() bool { return f.destroyed }
