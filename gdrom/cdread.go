// CD-read streaming progress tracking for the GD-ROM drive controller.
// https://github.com/msgpo/redream-next
//
// Copyright (c) The redream-next Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package gdrom

import (
	"github.com/msgpo/redream-next/buffer"
	"github.com/msgpo/redream-next/disc"
)

// cdReadProgress tracks an in-flight CD_READ command across PIO drains or
// DMA refills.
type cdReadProgress struct {
	dma       bool
	format    uint8
	mask      uint8
	fad       disc.FAD
	remaining int
}

// active reports whether a CD_READ is still in flight.
func (p *cdReadProgress) active() bool { return p.remaining > 0 }

// pioSectorBudget is the largest number of sectors a single PIO batch can
// carry without exceeding the 64 KiB staging buffer.
func pioSectorBudget() int { return buffer.Size / disc.MaxSectorSize }

// dmaSectorBudget is floor(64 KiB / MAX_SECTOR_SIZE) sectors per DMA
// refill.
func dmaSectorBudget() int { return buffer.Size / disc.MaxSectorSize }
