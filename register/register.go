// Register file for the GD-ROM drive controller.
// https://github.com/msgpo/redream-next
//
// Copyright (c) The redream-next Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package register implements the drive's register file: strongly-typed
// wrappers over the six 16-bit registers (plus the alternate-status mirror)
// that carry ATA/SPI protocol state between the host and the drive core.
//
// Each register is re-expressed as a named type with accessor/mutator
// methods built on internal/bits, rather than a bitfield union over a raw
// integer — struct layout in Go is implementation-defined the same way C
// bitfield layout is, so every field here is read and written through an
// explicit bit position and mask (package design note: "never rely on
// implementation-defined layout").
package register

import "github.com/msgpo/redream-next/internal/bits"

// Status register bit positions.
const (
	statusCheckBit = 0
	statusDRQBit   = 3
	statusDRDYBit  = 6
	statusBSYBit   = 7
)

// Status is the device status register.
type Status uint16

// BSY reports whether the drive is busy processing a command.
func (s Status) BSY() bool { v := uint16(s); return bits.Get(&v, statusBSYBit) }

// DRDY reports whether the drive is ready to accept a command.
func (s Status) DRDY() bool { v := uint16(s); return bits.Get(&v, statusDRDYBit) }

// DRQ reports whether the drive has data ready to transfer.
func (s Status) DRQ() bool { v := uint16(s); return bits.Get(&v, statusDRQBit) }

// CHECK reports whether an error is pending in the error register.
func (s Status) CHECK() bool { v := uint16(s); return bits.Get(&v, statusCheckBit) }

// SetBSY sets or clears BSY.
func (s *Status) SetBSY(v bool) { u := uint16(*s); bits.SetTo(&u, statusBSYBit, v); *s = Status(u) }

// SetDRDY sets or clears DRDY.
func (s *Status) SetDRDY(v bool) { u := uint16(*s); bits.SetTo(&u, statusDRDYBit, v); *s = Status(u) }

// SetDRQ sets or clears DRQ.
func (s *Status) SetDRQ(v bool) { u := uint16(*s); bits.SetTo(&u, statusDRQBit, v); *s = Status(u) }

// SetCHECK sets or clears CHECK.
func (s *Status) SetCHECK(v bool) { u := uint16(*s); bits.SetTo(&u, statusCheckBit, v); *s = Status(u) }

// Error register bit positions.
const errorABRTBit = 2

// Error is the error register, valid after a command completes with
// status.CHECK set.
type Error uint16

// ABRT reports whether the last command aborted.
func (e Error) ABRT() bool { v := uint16(e); return bits.Get(&v, errorABRTBit) }

// SetABRT sets or clears ABRT.
func (e *Error) SetABRT(v bool) { u := uint16(*e); bits.SetTo(&u, errorABRTBit, v); *e = Error(u) }

// Features register bit positions.
const featuresDMABit = 0

// Features selects PIO vs DMA for the next CD read.
type Features uint16

// DMA reports whether DMA transfer mode is selected.
func (f Features) DMA() bool { v := uint16(f); return bits.Get(&v, featuresDMABit) }

// SetDMA sets or clears the DMA selection bit.
func (f *Features) SetDMA(v bool) { u := uint16(*f); bits.SetTo(&u, featuresDMABit, v); *f = Features(u) }

// Interrupt reason register bit positions.
const (
	intReasonCoDBit = 0
	intReasonIOBit  = 1
)

// InterruptReason carries the current transfer phase: CoD (content: command
// vs data) and IO (direction: device-to-host vs host-to-device).
type InterruptReason uint16

// CoD reports the content bit: true for command/status, false for data.
func (r InterruptReason) CoD() bool { v := uint16(r); return bits.Get(&v, intReasonCoDBit) }

// IO reports the direction bit: true for device-to-host, false for
// host-to-device.
func (r InterruptReason) IO() bool { v := uint16(r); return bits.Get(&v, intReasonIOBit) }

// SetCoD sets or clears CoD.
func (r *InterruptReason) SetCoD(v bool) {
	u := uint16(*r)
	bits.SetTo(&u, intReasonCoDBit, v)
	*r = InterruptReason(u)
}

// SetIO sets or clears IO.
func (r *InterruptReason) SetIO(v bool) {
	u := uint16(*r)
	bits.SetTo(&u, intReasonIOBit, v)
	*r = InterruptReason(u)
}

// Idle returns the canonical (CoD=1, IO=1) interrupt-reason value asserted
// at idle and on command completion (spec invariant).
func Idle() InterruptReason {
	var r InterruptReason
	r.SetCoD(true)
	r.SetIO(true)
	return r
}

// Drive status codes occupying the sector-number status nibble. Values
// follow the well-known GD-ROM status-code assignment.
const (
	DriveBusy     uint16 = 0x0
	DrivePause    uint16 = 0x1
	DriveStandby  uint16 = 0x2
	DrivePlay     uint16 = 0x3
	DriveSeek     uint16 = 0x4
	DriveScan     uint16 = 0x5
	DriveOpen     uint16 = 0x6
	DriveNoDisc   uint16 = 0x7
	DriveRetry    uint16 = 0x8
	DriveDiscErr  uint16 = 0x9
)

// Disc format codes occupying the sector-number format nibble.
const (
	FormatCDDA       uint16 = 0x0
	FormatCDROM      uint16 = 0x1
	FormatCDROMXA    uint16 = 0x2
	FormatCDROMExtra uint16 = 0x3
	FormatCDI        uint16 = 0x4
	FormatGDROM      uint16 = 0x8
)

// SectorNumber register bit positions.
const (
	sectorStatusPos = 0
	sectorStatusLen = 0xf
	sectorFormatPos = 4
	sectorFormatLen = 0xf
)

// SectorNumber carries the drive status nibble and the disc format nibble.
type SectorNumber uint16

// DriveStatus returns the status nibble.
func (s SectorNumber) DriveStatus() uint16 {
	v := uint16(s)
	return bits.GetN(&v, sectorStatusPos, sectorStatusLen)
}

// Format returns the format nibble.
func (s SectorNumber) Format() uint16 {
	v := uint16(s)
	return bits.GetN(&v, sectorFormatPos, sectorFormatLen)
}

// SetDriveStatus sets the status nibble.
func (s *SectorNumber) SetDriveStatus(v uint16) {
	u := uint16(*s)
	bits.SetN(&u, sectorStatusPos, sectorStatusLen, v)
	*s = SectorNumber(u)
}

// SetFormat sets the format nibble.
func (s *SectorNumber) SetFormat(v uint16) {
	u := uint16(*s)
	bits.SetN(&u, sectorFormatPos, sectorFormatLen, v)
	*s = SectorNumber(u)
}

// ByteCount is the 16-bit transfer byte count, addressed by the host as two
// 8-bit halves through distinct register offsets.
type ByteCount uint16

// Lo returns the low byte.
func (b ByteCount) Lo() uint8 { return uint8(b) }

// Hi returns the high byte.
func (b ByteCount) Hi() uint8 { return uint8(b >> 8) }

// SetLo sets the low byte, preserving the high byte.
func (b *ByteCount) SetLo(v uint8) { *b = ByteCount(uint16(*b)&0xff00 | uint16(v)) }

// SetHi sets the high byte, preserving the low byte.
func (b *ByteCount) SetHi(v uint8) { *b = ByteCount(uint16(*b)&0x00ff | uint16(v)<<8) }

// File is the drive's complete register bank.
type File struct {
	Error     Error
	Features  Features
	IntReason InterruptReason
	Sector    SectorNumber
	ByteCount ByteCount
	Status    Status
	// AltStatus mirrors Status but reading it never clears the interrupt
	// line.
	AltStatus Status
}

// Reset clears the error register and CHECK bit, the way every ATA command
// preamble and soft reset does.
func (f *File) Reset() {
	f.Error = 0
	f.Status.SetCHECK(false)
}
