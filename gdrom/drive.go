// Emulated GD-ROM drive controller core type and register surface.
// https://github.com/msgpo/redream-next
//
// Copyright (c) The redream-next Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package gdrom implements the emulated GD-ROM drive controller: the
// ATA-outer/SPI-inner command state machine, its register file, and its
// PIO/DMA staging buffers.
//
// The package is split one file per concern: drive.go (core type and
// register surface), ata.go (outer command handler), spi.go (inner command
// handler and CD-read streaming loop), cdread.go (CD-read progress record
// and batch budgets) and state.go (transition table).
package gdrom

import (
	"fmt"
	"log"

	"github.com/msgpo/redream-next/bridge"
	"github.com/msgpo/redream-next/buffer"
	"github.com/msgpo/redream-next/disc"
	"github.com/msgpo/redream-next/register"
)

// Register offsets within the drive's MMIO window. Access width is 16-bit,
// presented to the host as 32-bit register slots; this package only models
// the 16-bit semantic value.
const (
	RegAltStatusDevCtrl = 0x0
	RegData             = 0x1
	RegErrorFeatures    = 0x2
	RegIntReason        = 0x3
	RegSectorNumber     = 0x4
	RegByteCountLo      = 0x5
	RegByteCountHi      = 0x6
	RegDriveSelect      = 0x7 // unused
	RegStatusCommand    = 0x8
)

// packetSize is the fixed length of an SPI packet.
const packetSize = 12

// Drive aggregates the register file, state machine, disc handle,
// hardware-info block, CD-read progress, and staging buffers.
type Drive struct {
	regs  register.File
	state State

	d  disc.Disc
	hw HardwareInfo

	progress cdReadProgress

	pio       buffer.Staging
	pioOffset int // SET_MODE destination offset for the in-flight payload
	pioExpect int // bytes expected before PIO_WRITE escalates to SPI_CMD/SPI_DATA

	dma buffer.Staging

	bridge bridge.Bridge
	line   bridge.Line
}

// New constructs a Drive with no disc bound, wired to the given bridge on
// the given interrupt line.
func New(b bridge.Bridge, line bridge.Line) *Drive {
	dr := &Drive{
		bridge: b,
		line:   line,
		hw:     newHardwareInfo(),
	}

	dr.softReset()

	return dr
}

// BindDisc replaces the currently bound disc handle, destroying the
// previous one (single-owner, explicit replace-and-destroy), and performs a
// soft reset.
func (dr *Drive) BindDisc(d disc.Disc) {
	if dr.d != nil {
		dr.d.Destroy()
	}

	dr.d = d
	dr.softReset()
}

// Destroy tears down the drive, releasing any bound disc handle.
func (dr *Drive) Destroy() {
	if dr.d != nil {
		dr.d.Destroy()
		dr.d = nil
	}
}

// softReset clears error, sets DRDY=1/BSY=0, zeroes sector-number, then
// populates status=PAUSE/format=(disc format) if media is present, else
// NODISC.
func (dr *Drive) softReset() {
	dr.regs.Reset()
	dr.regs.Status.SetDRDY(true)
	dr.regs.Status.SetBSY(false)
	dr.regs.Status.SetDRQ(false)
	dr.regs.AltStatus = dr.regs.Status

	dr.regs.Sector = 0

	if dr.d != nil {
		dr.regs.Sector.SetDriveStatus(register.DrivePause)
		dr.regs.Sector.SetFormat(dr.d.GetFormat())
	} else {
		dr.regs.Sector.SetDriveStatus(register.DriveNoDisc)
	}

	dr.regs.IntReason = register.Idle()
	dr.state = ReadATACmd
}

// State returns the current state-machine state, for tests and
// introspection.
func (dr *Drive) State() State { return dr.state }

// transition validates and applies a (state, event) move, faulting the
// emulation on an illegal transition.
func (dr *Drive) transition(next State, event Event) {
	if !legal(dr.state, event) {
		faultIllegalTransition(dr.state, event)
	}
	dr.state = next
}

// syncAltStatus keeps the alternate-status mirror in lockstep with the
// status register; only a read through readStatus clears the interrupt
// line, never a read of the mirror.
func (dr *Drive) syncAltStatus() { dr.regs.AltStatus = dr.regs.Status }

func (dr *Drive) raiseInterrupt() {
	if dr.bridge != nil {
		dr.bridge.RaiseInterrupt(dr.line)
	}
}

func (dr *Drive) clearInterrupt() {
	if dr.bridge != nil {
		dr.bridge.ClearInterrupt(dr.line)
	}
}

// ReadRegister reads the 16-bit register at offset.
func (dr *Drive) ReadRegister(offset int) (uint16, error) {
	switch offset {
	case RegAltStatusDevCtrl:
		return uint16(dr.regs.AltStatus), nil
	case RegData:
		return dr.readData(), nil
	case RegErrorFeatures:
		return uint16(dr.regs.Error), nil
	case RegIntReason:
		return uint16(dr.regs.IntReason), nil
	case RegSectorNumber:
		return uint16(dr.regs.Sector), nil
	case RegByteCountLo:
		return uint16(dr.regs.ByteCount.Lo()), nil
	case RegByteCountHi:
		return uint16(dr.regs.ByteCount.Hi()), nil
	case RegDriveSelect:
		return 0, nil
	case RegStatusCommand:
		return dr.readStatus(), nil
	default:
		return 0, fmt.Errorf("gdrom: read from unknown register offset %#x", offset)
	}
}

// WriteRegister writes the 16-bit register at offset.
func (dr *Drive) WriteRegister(offset int, val uint16) error {
	switch offset {
	case RegAltStatusDevCtrl:
		// device control: no drive-reset/nIEN handling modeled.
		return nil
	case RegData:
		dr.writeData(val)
		return nil
	case RegErrorFeatures:
		dr.regs.Features = register.Features(val)
		return nil
	case RegIntReason:
		panic("gdrom: write to read-only interrupt-reason register")
	case RegSectorNumber:
		panic("gdrom: write to read-only sector-number register")
	case RegByteCountLo:
		dr.regs.ByteCount.SetLo(uint8(val))
		return nil
	case RegByteCountHi:
		dr.regs.ByteCount.SetHi(uint8(val))
		return nil
	case RegDriveSelect:
		return nil
	case RegStatusCommand:
		dr.ataCmd(uint8(val))
		return nil
	default:
		return fmt.Errorf("gdrom: write to unknown register offset %#x", offset)
	}
}

// readStatus implements the status-register read side effect: clearing the
// interrupt line atomically with the read.
func (dr *Drive) readStatus() uint16 {
	dr.clearInterrupt()
	return uint16(dr.regs.Status)
}

// readData implements a data-register read: returns the word at the PIO
// cursor, advances it, and posts PIO_READ.
func (dr *Drive) readData() uint16 {
	w := dr.pio.ReadWord()
	dr.onPIORead()
	return w
}

// writeData implements a data-register write: appends the word at the PIO
// cursor, then posts PIO_WRITE, escalating to SPI_CMD/SPI_DATA once the
// expected threshold is reached.
func (dr *Drive) writeData(w uint16) {
	dr.pio.WriteWord(w)
	dr.onPIOWrite()
}

func warnNoDisc() {
	log.Printf("gdrom: sector read requested with no disc bound")
}
