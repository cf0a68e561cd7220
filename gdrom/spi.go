// Inner SPI command handler for the GD-ROM drive controller.
// https://github.com/msgpo/redream-next
//
// Copyright (c) The redream-next Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package gdrom

import (
	"fmt"

	"github.com/msgpo/redream-next/disc"
	"github.com/msgpo/redream-next/register"
)

// SPI inner command opcodes, numbered the way the real GD-ROM packet
// interface assigns them.
const (
	spiTestUnit uint8 = 0x00
	spiReqStat  uint8 = 0x10
	spiReqMode  uint8 = 0x11
	spiSetMode  uint8 = 0x12
	spiReqError uint8 = 0x13
	spiGetTOC   uint8 = 0x14
	spiReqSes   uint8 = 0x15
	spiCDOpen   uint8 = 0x16
	spiCDPlay   uint8 = 0x20
	spiCDSeek   uint8 = 0x21
	spiCDScan   uint8 = 0x22
	spiCDRead   uint8 = 0x30
	spiCDRead2  uint8 = 0x31
	spiGetSCD   uint8 = 0x40
	spiChkSecu  uint8 = 0x70
	spiReqSecu  uint8 = 0x71
)

// CD_SEEK parameter nibble values.
const (
	seekFAD   uint8 = 0x0
	seekMSF   uint8 = 0x1
	seekPause uint8 = 0x2
	seekStop  uint8 = 0x3
)

// scdNoStatus is the GET_SCD "no current audio status" subcode value.
const scdNoStatus = 0x15

// tocMaxTracks bounds the GET_TOC entries array to track numbers [1, 99].
const tocMaxTracks = 99

// tocEntrySize is the wire size of one TOC entry/point (adr/ctrl byte plus
// a 24-bit big-endian fad or track number).
const tocEntrySize = 4

// tocReplySize is tocMaxTracks entries plus first/last/leadout points
// (99*4 + 3*4 = 408 bytes).
const tocReplySize = tocMaxTracks*tocEntrySize + 3*tocEntrySize

// spiCmd decodes and runs the 12-byte SPI packet accumulated in the PIO
// buffer, triggered once pio_head reaches 12 in READ_ATA_DATA.
func (dr *Drive) spiCmd() {
	// preamble
	dr.regs.Status.SetDRQ(false)
	dr.regs.Status.SetBSY(true)
	dr.syncAltStatus()

	var pkt [packetSize]byte
	copy(pkt[:], dr.pio.Bytes())

	op := pkt[0]

	switch op {
	case spiTestUnit, spiChkSecu:
		dr.spiEnd()

	case spiReqStat:
		offset, size := reqOffsetSize(pkt)
		reply := dr.statusReply()
		dr.armSPIReply(sliceReply(reply[:], offset, size))

	case spiReqMode:
		offset, size := reqOffsetSize(pkt)
		dr.armSPIReply(append([]byte(nil), dr.hw.Slice(offset, size)...))

	case spiReqError:
		reply := reqErrorReply()
		dr.armSPIReply(reply[:])

	case spiGetTOC:
		area := int(pkt[1] & 0x1)
		_, size := reqOffsetSize(pkt)
		reply := dr.buildTOC(area)
		dr.armSPIReply(sliceReply(reply, 0, size))

	case spiReqSes:
		reply := dr.sessionReply(pkt[1])
		dr.armSPIReply(reply)

	case spiGetSCD:
		reply := scdReply(pkt[1])
		offset, size := reqOffsetSize(pkt)
		dr.armSPIReply(sliceReply(reply, offset, size))

	case spiCDRead:
		dr.beginCDRead(pkt)

	case spiReqSecu:
		dr.armSPIReply(make([]byte, 126))

	case spiSetMode:
		dr.beginSetMode(pkt)

	case spiCDPlay, spiCDScan:
		dr.regs.Sector.SetDriveStatus(register.DrivePause)
		dr.spiEnd()

	case spiCDSeek:
		dr.handleSeek(pkt[1])
		dr.spiEnd()

	default:
		panic(fmt.Sprintf("gdrom: fatal/unsupported SPI opcode %#x", op))
	}
}

// reqOffsetSize parses the offset/size convention shared by the
// device-to-host "request" commands: byte[2] is a 1-byte offset, bytes
// [3:5] are a 16-bit big-endian size.
func reqOffsetSize(pkt [packetSize]byte) (offset, size int) {
	offset = int(pkt[2])
	size = int(pkt[3])<<8 | int(pkt[4])
	return
}

// sliceReply truncates a built reply to the requested [offset, offset+size)
// window, clamping to what was actually built.
func sliceReply(reply []byte, offset, size int) []byte {
	if offset > len(reply) {
		offset = len(reply)
	}
	end := offset + size
	if end > len(reply) {
		end = len(reply)
	}
	return reply[offset:end]
}

// statusReply builds the fixed 10-byte REQ_STAT payload.
func (dr *Drive) statusReply() [10]byte {
	var r [10]byte

	r[0] = byte(dr.regs.Sector.DriveStatus())
	r[1] = 0 // repeat
	r[2] = byte(dr.regs.Sector.Format())
	r[3] = 0x4 // control
	r[4] = 0   // address
	r[5] = 2   // scd_track
	r[6] = 0   // scd_index
	// fad=0 (bytes 7:10 already zero); swapped to 24-bit big-endian here
	// anyway — a no-op for the zero value, kept explicit for consistency
	// with every other FAD field in this file.
	putFAD24(r[7:10], 0)

	return r
}

// reqErrorReply builds the fixed 10-byte REQ_ERROR payload: leading "one"
// nibble 0xf, rest zero — sense key/code reporting is unimplemented.
func reqErrorReply() [10]byte {
	var r [10]byte
	r[0] = 0xf0
	return r
}

// buildTOC enumerates tracks [first, last] of area into entries[track_num-1],
// with unused slots memset to 0xff and every fad swapped to 24-bit
// big-endian.
func (dr *Drive) buildTOC(area int) []byte {
	reply := make([]byte, tocReplySize)
	for i := range reply {
		reply[i] = 0xff
	}

	if dr.d == nil {
		return reply
	}

	first, last, _, leadoutFAD, err := dr.d.GetTOC(area)
	if err != nil {
		return reply
	}

	for n := first; n <= last && n >= 1 && n <= tocMaxTracks; n++ {
		t, err := dr.d.GetTrack(n)
		if err != nil {
			continue
		}
		putTOCEntry(reply[(n-1)*tocEntrySize:n*tocEntrySize], t)
	}

	firstTrack, errF := dr.d.GetTrack(first)
	lastTrack, errL := dr.d.GetTrack(last)

	pointsOff := tocMaxTracks * tocEntrySize
	if errF == nil {
		putTOCPoint(reply[pointsOff:pointsOff+tocEntrySize], firstTrack)
	}
	if errL == nil {
		putTOCPoint(reply[pointsOff+tocEntrySize:pointsOff+2*tocEntrySize], lastTrack)
	}
	putFAD24(reply[pointsOff+2*tocEntrySize+1:pointsOff+3*tocEntrySize], leadoutFAD)

	return reply
}

// putTOCEntry packs {adr, ctrl, fad} into a 4-byte TOC track slot.
func putTOCEntry(dst []byte, t disc.Track) {
	dst[0] = (t.Ctrl << 4) | (t.ADR & 0xf)
	putFAD24(dst[1:4], t.FAD)
}

// putTOCPoint packs {adr, ctrl, track_num} into a 4-byte first/last point.
func putTOCPoint(dst []byte, t disc.Track) {
	dst[0] = (t.Ctrl << 4) | (t.ADR & 0xf)
	dst[1] = 0
	dst[2] = 0
	dst[3] = byte(t.Num)
}

// putFAD24 writes fad as a 24-bit big-endian value.
func putFAD24(dst []byte, fad disc.FAD) {
	dst[0] = byte(fad >> 16)
	dst[1] = byte(fad >> 8)
	dst[2] = byte(fad)
}

// fad24 reads a 24-bit big-endian FAD.
func fad24(b0, b1, b2 byte) disc.FAD {
	return disc.FAD(uint32(b0)<<16 | uint32(b1)<<8 | uint32(b2))
}

// sessionReply builds the REQ_SES payload.
func (dr *Drive) sessionReply(sessionNum uint8) []byte {
	reply := make([]byte, 6)

	if dr.d == nil {
		return reply
	}

	reply[0] = byte(dr.regs.Sector.DriveStatus())

	if sessionNum == 0 {
		n := dr.d.NumSessions()
		sess, err := dr.d.GetSession(n)
		if err != nil {
			return reply
		}
		reply[1] = byte(n)
		putFAD24(reply[3:6], sess.LeadoutFAD)
		return reply
	}

	sess, err := dr.d.GetSession(int(sessionNum))
	if err != nil {
		return reply
	}
	reply[1] = byte(sess.FirstTrack.Num)
	putFAD24(reply[3:6], sess.FirstTrack.FAD)

	return reply
}

// scdReply builds the stubbed GET_SCD subcode payload; real hardware
// contents are unknown, so only the "no current audio status" subcode is
// modeled.
func scdReply(b1 byte) []byte {
	r := make([]byte, 4)
	r[1] = scdNoStatus

	switch b1 & 0xf {
	case 0:
		r[2], r[3] = 0x00, 0x64
	case 1:
		r[2], r[3] = 0x00, 0x0e
	}

	return r
}

// parseCDReadParams decodes the CD_READ submodifier byte: MSF-addressing
// flag, sector format, and sector sub-header mask. The exact bit assignment
// is this emulation's own choice, recorded in DESIGN.md.
func parseCDReadParams(b byte) (msf bool, format, mask uint8) {
	msf = b&0x1 != 0
	format = (b >> 1) & 0x7
	mask = (b >> 4) & 0xf
	return
}

// beginCDRead initializes CD-read progress from the packet and enters the
// streaming loop.
func (dr *Drive) beginCDRead(pkt [packetSize]byte) {
	msf, format, mask := parseCDReadParams(pkt[1])

	var fad disc.FAD
	if msf {
		fad = disc.MSF(pkt[3], pkt[4], pkt[5])
	} else {
		fad = fad24(pkt[3], pkt[4], pkt[5])
	}

	count := int(pkt[8])<<16 | int(pkt[9])<<8 | int(pkt[10])

	dr.progress = cdReadProgress{
		dma:       dr.regs.Features.DMA(),
		format:    format,
		mask:      mask,
		fad:       fad,
		remaining: count,
	}

	dr.enterCDRead()
}

// handleSeek runs CD_SEEK: FAD/MSF/PAUSE parameters move the drive to
// PAUSE, STOP moves it to STANDBY. Seek/scan positioning itself is out of
// scope; only the status-nibble transition is modeled.
func (dr *Drive) handleSeek(param uint8) {
	switch param & 0xf {
	case seekFAD, seekMSF, seekPause:
		dr.regs.Sector.SetDriveStatus(register.DrivePause)
	case seekStop:
		dr.regs.Sector.SetDriveStatus(register.DriveStandby)
	}
}

// beginSetMode arms a host-to-device PIO payload for SET_MODE: the
// destination offset is byte[2] of the packet.
func (dr *Drive) beginSetMode(pkt [packetSize]byte) {
	offset, size := reqOffsetSize(pkt)

	dr.pioOffset = offset
	dr.pio.Reset(nil)
	dr.pioExpect = size

	dr.regs.IntReason.SetCoD(false)
	dr.regs.IntReason.SetIO(false)
	dr.regs.Status.SetDRQ(true)
	dr.regs.Status.SetBSY(false)
	dr.syncAltStatus()
	dr.raiseInterrupt()
	dr.state = ReadSPIData
}

// spiData completes a host-to-device SPI payload transfer: currently only
// reachable for SET_MODE, which copies the received bytes into
// hardware-info at the recorded destination offset.
func (dr *Drive) spiData() {
	data := append([]byte(nil), dr.pio.Bytes()[:dr.pioExpect]...)
	dr.hw.Write(dr.pioOffset, data)
	dr.spiEnd()
}

// armSPIReply copies payload into the PIO buffer and arms a device-to-host
// transfer.
func (dr *Drive) armSPIReply(payload []byte) {
	dr.pio.Reset(payload)
	dr.regs.ByteCount = register.ByteCount(uint16(len(payload)))
	dr.regs.IntReason.SetCoD(false)
	dr.regs.IntReason.SetIO(true)
	dr.regs.Status.SetDRQ(true)
	dr.regs.Status.SetBSY(false)
	dr.syncAltStatus()
	dr.raiseInterrupt()
	dr.state = WriteSPIData
}

// spiEnd is the SPI completion sequence: CoD=1, IO=1, DRDY=1, BSY=0, DRQ=0;
// raise interrupt; return to idle.
func (dr *Drive) spiEnd() {
	dr.regs.IntReason = register.Idle()
	dr.regs.Status.SetDRDY(true)
	dr.regs.Status.SetBSY(false)
	dr.regs.Status.SetDRQ(false)
	dr.syncAltStatus()
	dr.raiseInterrupt()
	dr.state = ReadATACmd
	dr.progress = cdReadProgress{}
}

// enterCDRead runs one iteration of the CD-read streaming loop: refill the
// DMA buffer or arm a PIO batch, depending on the DMA flag captured when
// CD_READ was issued.
func (dr *Drive) enterCDRead() {
	if dr.progress.dma {
		dr.dmaReadBatch()
	} else {
		dr.pioReadBatch()
	}
}

// pioReadBatch reads up to the PIO-sector budget, arms it for PIO readout,
// and raises the interrupt.
func (dr *Drive) pioReadBatch() {
	n := dr.progress.remaining
	if budget := pioSectorBudget(); n > budget {
		n = budget
	}

	out := make([]byte, 0, n*disc.MaxSectorSize)
	produced := dr.readSectors(n, &out)

	if produced == 0 {
		// No sectors came back (no disc bound, or the disc handle refused
		// every sector in the batch): complete the command now rather than
		// arm an empty transfer and have the next data-register read
		// re-enter this same batch forever.
		dr.spiEnd()
		return
	}

	dr.pio.Reset(out)
	dr.regs.ByteCount = register.ByteCount(uint16(produced))
	dr.regs.IntReason.SetCoD(false)
	dr.regs.IntReason.SetIO(true)
	dr.regs.Status.SetDRQ(true)
	dr.regs.Status.SetBSY(false)
	dr.syncAltStatus()
	dr.raiseInterrupt()
	dr.state = WriteSPIData
}

// dmaReadBatch reads up to the DMA-sector budget into the DMA buffer. No
// interrupt is raised: the host initiates DMA explicitly.
func (dr *Drive) dmaReadBatch() {
	n := dr.progress.remaining
	if budget := dmaSectorBudget(); n > budget {
		n = budget
	}

	out := make([]byte, 0, n*disc.MaxSectorSize)
	dr.readSectors(n, &out)

	dr.dma.Reset(out)
	dr.state = WriteDMAData
}

// readSectors loops one sector at a time through the disc handle,
// concatenating results into dst, advancing progress.fad and decrementing
// progress.remaining by the sectors actually produced. It refuses and
// returns 0 if no disc is bound.
func (dr *Drive) readSectors(n int, dst *[]byte) int {
	if dr.d == nil {
		warnNoDisc()
		return 0
	}

	sector := make([]byte, disc.MaxSectorSize)
	total := 0
	read := 0

	for ; read < n; read++ {
		w, err := dr.d.ReadSector(dr.progress.fad, dr.progress.format, dr.progress.mask, sector)
		if err != nil {
			break
		}
		*dst = append(*dst, sector[:w]...)
		total += w
		dr.progress.fad++
	}

	dr.progress.remaining -= read

	return total
}

// DMARead transfers the currently staged DMA buffer to guest memory via the
// bridge, then refills or completes: the buffer is consumed, the next
// batch is staged if sectors remain, and spi_end runs on final drain.
func (dr *Drive) DMARead(space int, dst uint32) (int, error) {
	if dr.state != WriteDMAData {
		return 0, fmt.Errorf("gdrom: DMA read requested outside WRITE_DMA_DATA (state=%s)", dr.state)
	}

	n := dr.bridge.CopySectors(space, dst, dr.dma.Bytes())
	dr.dma.Reset(nil)

	if dr.progress.remaining > 0 {
		dr.enterCDRead()
	} else {
		dr.spiEnd()
	}

	return n, nil
}
