// Demo wiring of a gdrom.Drive against in-memory test doubles.
// https://github.com/msgpo/redream-next
//
// Copyright (c) The redream-next Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Demo wiring of a gdrom.Drive against in-memory test doubles, standing in
// for the real MMIO/interrupt host bridge, which is out of scope.
package main

import (
	"fmt"
	"log"

	"github.com/msgpo/redream-next/bridge/bridgetest"
	"github.com/msgpo/redream-next/disc"
	"github.com/msgpo/redream-next/disc/disctest"
	"github.com/msgpo/redream-next/gdrom"
	"github.com/msgpo/redream-next/register"
)

func main() {
	log.SetFlags(0)

	bus := &bridgetest.Loopback{}
	dr := gdrom.New(bus, 0)

	img := disctest.NewSingleSession(register.FormatGDROM, []disc.Track{
		{Num: 1, ADR: 1, Ctrl: 4, FAD: 150},
	}, 549150)
	dr.BindDisc(img)

	fmt.Printf("drive state: %s\n", dr.State())

	if err := dr.WriteRegister(gdrom.RegStatusCommand, 0xa0); err != nil {
		log.Fatalf("PACKET_CMD: %v", err)
	}

	packet := [12]byte{0x10, 0, 0, 0, 10} // REQ_STAT offset=0 size=10
	for i := 0; i < len(packet); i += 2 {
		w := uint16(packet[i]) | uint16(packet[i+1])<<8
		if err := dr.WriteRegister(gdrom.RegData, w); err != nil {
			log.Fatalf("write packet byte %d: %v", i, err)
		}
	}

	reply := make([]byte, 0, 10)
	for len(reply) < 10 {
		v, err := dr.ReadRegister(gdrom.RegData)
		if err != nil {
			log.Fatalf("read REQ_STAT reply: %v", err)
		}
		reply = append(reply, byte(v), byte(v>>8))
	}

	fmt.Printf("REQ_STAT reply: %x\n", reply[:10])
	fmt.Printf("interrupt raised: %v\n", bus.Raised)
	fmt.Printf("drive state: %s\n", dr.State())
}
