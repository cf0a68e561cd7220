// Fixed-size PIO/DMA staging buffers for the GD-ROM drive controller.
// https://github.com/msgpo/redream-next
//
// Copyright (c) The redream-next Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package buffer implements the drive's fixed-size PIO and DMA staging
// buffers: owned byte arrays with explicit head/size cursors. This is a
// software model of the controller rather than a driver for real hardware
// DMA, so the buffer is a plain owned slice with no unsafe pointers or
// physical allocation.
package buffer

import "fmt"

// Size is the fixed capacity of both staging buffers.
const Size = 64 * 1024

// Staging is a fixed-capacity byte buffer with a read/write cursor.
type Staging struct {
	bytes [Size]byte
	head  int
	size  int
}

// Reset discards any in-flight transfer and loads data as the buffer
// contents, resetting the cursor to zero.
func (s *Staging) Reset(data []byte) {
	if len(data) > Size {
		panic(fmt.Sprintf("buffer: payload of %d bytes exceeds %d byte capacity", len(data), Size))
	}

	s.head = 0
	s.size = copy(s.bytes[:], data)
}

// Head returns the current cursor position.
func (s *Staging) Head() int { return s.head }

// Size returns the number of valid bytes loaded into the buffer.
func (s *Staging) Size() int { return s.size }

// Drained reports whether the cursor has consumed every loaded byte.
func (s *Staging) Drained() bool { return s.head >= s.size }

// Remaining returns the number of unread bytes.
func (s *Staging) Remaining() int { return s.size - s.head }

// Bytes returns the valid, loaded portion of the buffer.
func (s *Staging) Bytes() []byte { return s.bytes[:s.size] }

// ReadWord returns the two bytes at the cursor and advances it by two,
// zero-extending past the end of the loaded data (so a final odd byte
// still reads back a well-defined value).
func (s *Staging) ReadWord() uint16 {
	if s.head >= Size {
		panic("buffer: read past capacity")
	}

	lo := s.byteAt(s.head)
	hi := s.byteAt(s.head + 1)
	s.head += 2

	return uint16(lo) | uint16(hi)<<8
}

func (s *Staging) byteAt(i int) byte {
	if i >= s.size {
		return 0
	}
	return s.bytes[i]
}

// WriteWord appends two bytes at the cursor and advances it by two.
func (s *Staging) WriteWord(w uint16) {
	if s.head+2 > Size {
		panic("buffer: write past capacity")
	}

	s.bytes[s.head] = uint8(w)
	s.bytes[s.head+1] = uint8(w >> 8)
	s.head += 2

	if s.head > s.size {
		s.size = s.head
	}
}
