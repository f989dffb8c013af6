package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/Jon-Bright/d1ccu/ccu"
)

const (
	OP_RESET  = "reset"
	OP_FREE   = "free"
	OP_CONFIG = "config"
	OP_SHOW   = "show"
)

type request struct {
	periph string
	index  uint
	op     string
	source ccu.SpiClockSource
	m      uint8
	n      ccu.FactorN
}

func parseRequest(periph string, index uint, op, source string, m uint, n string) (*request, error) {
	req := request{
		periph: strings.ToLower(periph),
		index:  index,
		op:     strings.ToLower(op),
	}
	switch req.periph {
	case "uart":
		if index >= ccu.NumUART {
			return nil, fmt.Errorf("no UART%d, there are %d", index, ccu.NumUART)
		}
	case "spi":
		if index >= ccu.NumSPI {
			return nil, fmt.Errorf("no SPI%d, there are %d", index, ccu.NumSPI)
		}
	default:
		return nil, fmt.Errorf("%q is an invalid peripheral, want uart or spi", periph)
	}
	switch req.op {
	case OP_RESET, OP_FREE, OP_SHOW:
		return &req, nil
	case OP_CONFIG:
	default:
		return nil, fmt.Errorf("%q is an invalid operation", op)
	}
	if req.periph != "spi" {
		return nil, fmt.Errorf("%s has no clock configuration", req.periph)
	}
	var err error
	req.source, err = ccu.ParseSpiClockSource(source)
	if err != nil {
		return nil, fmt.Errorf("couldn't parse clock source: %v", err)
	}
	if m > 15 {
		return nil, fmt.Errorf("factor M %d out of range 0..15", m)
	}
	req.m = uint8(m)
	req.n, err = ccu.ParseFactorN(n)
	if err != nil {
		return nil, fmt.Errorf("couldn't parse factor N: %v", err)
	}
	return &req, nil
}

func (req *request) gate() ccu.ClockGate {
	if req.periph == "uart" {
		return ccu.UART(req.index)
	}
	return ccu.SPI(req.index)
}

// bgr reads the bus gating register of the requested peripheral kind.
func (req *request) bgr(b ccu.Block) fmt.Stringer {
	if req.periph == "uart" {
		return b.UARTBusGating().Read()
	}
	return b.SPIBusGating().Read()
}

func run(req *request, b ccu.Block) {
	g := req.gate()
	switch req.op {
	case OP_RESET:
		before := req.bgr(b)
		g.Reset(b)
		log.Printf("%v reset, bgr %v -> %v", g, before, req.bgr(b))
	case OP_FREE:
		before := req.bgr(b)
		g.Free(b)
		log.Printf("%v freed, bgr %v -> %v", g, before, req.bgr(b))
	case OP_CONFIG:
		spi := ccu.SPI(req.index)
		clk := b.SPIClock(int(req.index))
		before := clk.Read()
		spi.Config(req.source, req.m, req.n, b)
		log.Printf("%v configured, clk %v -> %v", spi, before, clk.Read())
	case OP_SHOW:
		log.Printf("%v bgr %v", g, req.bgr(b))
		if req.periph == "spi" {
			log.Printf("%v clk %v", g, b.SPIClock(int(req.index)).Read())
		}
	}
}
