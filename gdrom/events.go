// Data-register read/write event handlers for the GD-ROM drive controller.
// https://github.com/msgpo/redream-next
//
// Copyright (c) The redream-next Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package gdrom

// onPIOWrite runs after a data-register write has appended its word to the
// PIO buffer. A write posts PIO_WRITE; when the cursor reaches the expected
// threshold, the handler escalates to SPI_CMD or SPI_DATA.
func (dr *Drive) onPIOWrite() {
	if !legal(dr.state, EventPIOWrite) {
		faultIllegalTransition(dr.state, EventPIOWrite)
	}

	if dr.pio.Head() < dr.pioExpect {
		return
	}

	switch dr.state {
	case ReadATAData:
		dr.spiCmd()
	case ReadSPIData:
		dr.spiData()
	}
}

// onPIORead runs after a data-register read has advanced the PIO cursor. A
// read posts PIO_READ; if the cursor reaches pio_size, the handler either
// re-enters CD-read or completes.
func (dr *Drive) onPIORead() {
	if !legal(dr.state, EventPIORead) {
		faultIllegalTransition(dr.state, EventPIORead)
	}

	switch dr.state {
	case WriteSPIData:
		if dr.pio.Drained() {
			if dr.progress.active() {
				dr.enterCDRead()
			} else {
				dr.spiEnd()
			}
		}

	case WriteDMAData:
		// The transition table marks PIO_READ legal here, but DMA is
		// drained exclusively through a separate transfer call
		// (DMARead), never the data register. A data register read in
		// this state is therefore accepted, per the table, but carries
		// no protocol effect.
	}
}
