// Disc-image collaborator interface for the GD-ROM drive controller.
// https://github.com/msgpo/redream-next
//
// Copyright (c) The redream-next Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package disc defines the disc-image collaborator boundary: the decoder
// that parses image files and exposes sector, TOC, session, and format
// queries. The decoder's internals are out of scope here; this package only
// names the interface the drive core depends on, plus the small value types
// exchanged across it.
package disc

import "fmt"

// FAD is a Frame Address: a linear sector index on the disc.
type FAD uint32

// MSF decodes a Minutes/Seconds/Frames address (75 frames per second) into
// a FAD.
func MSF(min, sec, frame uint8) FAD {
	return FAD(uint32(min)*60*75 + uint32(sec)*75 + uint32(frame))
}

// Track describes one disc track entry as returned by TOC and session
// queries.
type Track struct {
	Num  int
	ADR  uint8
	Ctrl uint8
	FAD  FAD
}

// Session describes one disc session.
type Session struct {
	FirstTrack Track
	LeadoutFAD FAD
}

// Meta carries identifying information about the loaded disc image.
type Meta struct {
	Name    string
	Version string
	ID      string
}

// MaxSectorSize bounds the largest sector this decoder interface can
// produce per call to ReadSector, used to size CD-read batches.
const MaxSectorSize = 2352

// Disc is the decoder collaborator the drive core reads through. An
// implementation owns the open image file/handle; Destroy releases it.
type Disc interface {
	// ReadSector reads one sector at the given FAD, in the requested
	// format and sub-header mask, into out. It returns the number of
	// bytes written.
	ReadSector(fad FAD, format uint8, mask uint8, out []byte) (n int, err error)

	// GetTOC returns the first/last track numbers and the leadin/leadout
	// FADs for the given area.
	GetTOC(area int) (first, last int, leadinFAD, leadoutFAD FAD, err error)

	// GetTrack returns the track at the given 1-based track number.
	GetTrack(num int) (Track, error)

	// GetSession returns the session at the given 1-based index.
	GetSession(index int) (Session, error)

	// NumSessions returns the number of sessions on the disc.
	NumSessions() int

	// GetFormat returns the disc format code (register.FormatXXX).
	GetFormat() uint16

	// GetMeta returns identifying metadata for the loaded image.
	GetMeta() Meta

	// Destroy releases any resources held by the decoder.
	Destroy()
}

// ErrNoDisc is an error a Disc implementation may return when a query has
// no answer; disctest.Fake returns it for an unknown track or session. The
// drive core never returns it: a sector read with no disc bound returns
// zero bytes and logs a warning instead.
var ErrNoDisc = fmt.Errorf("disc: no media present")
