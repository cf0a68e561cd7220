// Outer ATA command handler for the GD-ROM drive controller.
// https://github.com/msgpo/redream-next
//
// Copyright (c) The redream-next Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package gdrom

import (
	"fmt"

	"github.com/msgpo/redream-next/register"
)

// ATA outer command codes, assigned the way real ATA/ATAPI hosts number
// them.
const (
	ataNOP         uint8 = 0x00
	ataSoftReset   uint8 = 0x08
	ataExecDiag    uint8 = 0x90
	ataPacketCmd   uint8 = 0xa0
	ataIdentifyDev uint8 = 0xa1
	ataSetFeatures uint8 = 0xef
)

// ataCmd decodes and runs the outer command byte written to the command
// register. A fresh ATA command reinitializes the machine from any state.
func (dr *Drive) ataCmd(cmd uint8) {
	if !legal(dr.state, EventATACmd) {
		faultIllegalTransition(dr.state, EventATACmd)
	}

	// preamble: clear DRDY, set BSY; clear error register and CHECK bit.
	dr.regs.Status.SetDRDY(false)
	dr.regs.Status.SetBSY(true)
	dr.regs.Status.SetDRQ(false)
	dr.regs.Reset()
	dr.syncAltStatus()

	switch cmd {
	case ataNOP:
		dr.regs.Error.SetABRT(true)
		dr.regs.Status.SetCHECK(true)
		dr.ataComplete()

	case ataSoftReset:
		dr.softReset()

	case ataPacketCmd:
		dr.pio.Reset(nil)
		dr.pioExpect = packetSize
		dr.regs.IntReason.SetCoD(true)
		dr.regs.IntReason.SetIO(false)
		dr.regs.Status.SetDRQ(true)
		dr.regs.Status.SetBSY(false)
		dr.syncAltStatus()
		dr.state = ReadATAData
		// No interrupt here: the host writes the packet bytes next.

	case ataSetFeatures:
		// Transfer-mode bits are accepted and ignored.
		dr.ataComplete()

	case ataExecDiag, ataIdentifyDev:
		panic(fmt.Sprintf("gdrom: unsupported ATA command %#x", cmd))

	default:
		panic(fmt.Sprintf("gdrom: unknown ATA command %#x", cmd))
	}
}

// ataComplete runs the non-data-command completion sequence: DRDY=1, BSY=0,
// raise interrupt, return to idle.
func (dr *Drive) ataComplete() {
	dr.regs.Status.SetDRDY(true)
	dr.regs.Status.SetBSY(false)
	dr.regs.Status.SetDRQ(false)
	dr.regs.IntReason = register.Idle()
	dr.syncAltStatus()
	dr.raiseInterrupt()
	dr.state = ReadATACmd
}
