// Transition table for the GD-ROM drive controller's state machine.
// https://github.com/msgpo/redream-next
//
// Copyright (c) The redream-next Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package gdrom

import "fmt"

// State is one of the five phases of the drive's command state machine.
type State int

const (
	// ReadATACmd is the idle state: waiting for an ATA command byte.
	ReadATACmd State = iota
	// ReadATAData is receiving the 12-byte SPI packet from the host.
	ReadATAData
	// ReadSPIData is receiving an SPI host-to-device payload (e.g. mode
	// bytes for SET_MODE).
	ReadSPIData
	// WriteSPIData is sending an SPI payload to the host via PIO.
	WriteSPIData
	// WriteDMAData is sending CD-read payload to the host via DMA.
	WriteDMAData
)

func (s State) String() string {
	switch s {
	case ReadATACmd:
		return "READ_ATA_CMD"
	case ReadATAData:
		return "READ_ATA_DATA"
	case ReadSPIData:
		return "READ_SPI_DATA"
	case WriteSPIData:
		return "WRITE_SPI_DATA"
	case WriteDMAData:
		return "WRITE_DMA_DATA"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Event is one of the transitions that can drive the state machine.
type Event int

const (
	// EventATACmd fires when the host writes the command register.
	EventATACmd Event = iota
	// EventPIOWrite fires when the host writes the data register.
	EventPIOWrite
	// EventSPICmd fires once a full 12-byte SPI packet has accumulated.
	EventSPICmd
	// EventPIORead fires when the host reads the data register.
	EventPIORead
	// EventSPIData fires once a host-to-device SPI payload has fully
	// arrived.
	EventSPIData
)

func (e Event) String() string {
	switch e {
	case EventATACmd:
		return "ATA_CMD"
	case EventPIOWrite:
		return "PIO_WRITE"
	case EventSPICmd:
		return "SPI_CMD"
	case EventPIORead:
		return "PIO_READ"
	case EventSPIData:
		return "SPI_DATA"
	default:
		return fmt.Sprintf("Event(%d)", int(e))
	}
}

// transitionKey names the (state, event) pair the transition table is keyed
// on. legal below implements the table as a direct switch and does not
// construct a transitionKey.
type transitionKey struct {
	state State
	event Event
}

// legal reports whether the transition table allows event in state. Event
// handling that reaches an illegal transition is a protocol misuse and must
// be fatal.
func legal(s State, e Event) bool {
	switch s {
	case ReadATACmd:
		return e == EventATACmd
	case ReadATAData:
		return e == EventATACmd || e == EventPIOWrite || e == EventSPICmd
	case ReadSPIData:
		return e == EventATACmd || e == EventPIOWrite || e == EventSPIData
	case WriteSPIData:
		return e == EventATACmd || e == EventPIORead
	case WriteDMAData:
		return e == EventATACmd || e == EventPIORead
	default:
		return false
	}
}

// faultIllegalTransition aborts the emulation on a transition the table
// does not permit.
func faultIllegalTransition(s State, e Event) {
	panic(fmt.Sprintf("gdrom: illegal transition: state=%s event=%s", s, e))
}
