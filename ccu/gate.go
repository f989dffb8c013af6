package ccu

import "fmt"

const (
	NumUART = 6
	NumSPI  = 2
)

// ClockGate is a peripheral whose bus clock and reset line are controlled by
// the CCU.
//
// Neither method synchronises access to the CCU. The bus gating registers are
// shared by all instances of a peripheral, so callers must make sure no other
// read-modify-write of the same register runs at the same time.
type ClockGate interface {
	// Reset masks the clock and asserts reset, then passes the clock and
	// deasserts reset, leaving the peripheral running from a clean state.
	Reset(b Block)
	// Free masks the clock and holds the peripheral in reset.
	Free(b Block)
}

// ClockConfig is a peripheral with its own module clock register. S is the
// set of clock sources it can select.
//
// Like ClockGate, Config is not synchronised.
type ClockConfig[S any] interface {
	// Config selects source and sets the dividers in one write. factorM
	// must be in 0..15.
	Config(source S, factorM uint8, factorN FactorN, b Block)
}

// UART is the clock gate of UART i.
type UART uint

func (u UART) index() uint {
	if u >= NumUART {
		panic(fmt.Sprintf("ccu: no UART%d", uint(u)))
	}
	return uint(u)
}

func (u UART) Reset(b Block) {
	i := u.index()
	reg := b.UARTBusGating()
	reg.Write(reg.Read().GateMask(i).AssertReset(i))
	reg.Write(reg.Read().GatePass(i).DeassertReset(i))
}

func (u UART) Free(b Block) {
	i := u.index()
	reg := b.UARTBusGating()
	reg.Write(reg.Read().GateMask(i).AssertReset(i))
}

func (u UART) String() string {
	return fmt.Sprintf("UART%d", uint(u))
}

// SPI is the clock gate and module clock of SPI i.
type SPI uint

func (s SPI) index() uint {
	if s >= NumSPI {
		panic(fmt.Sprintf("ccu: no SPI%d", uint(s)))
	}
	return uint(s)
}

func (s SPI) Reset(b Block) {
	i := s.index()
	reg := b.SPIBusGating()
	reg.Write(reg.Read().GateMask(i).AssertReset(i))
	reg.Write(reg.Read().GatePass(i).DeassertReset(i))
}

func (s SPI) Free(b Block) {
	i := s.index()
	reg := b.SPIBusGating()
	reg.Write(reg.Read().GateMask(i).AssertReset(i))
}

func (s SPI) Config(source SpiClockSource, factorM uint8, factorN FactorN, b Block) {
	reg := b.SPIClock(int(s.index()))
	reg.Write(reg.Read().
		SetClockSource(source).
		SetFactorM(factorM).
		SetFactorN(factorN))
}

func (s SPI) String() string {
	return fmt.Sprintf("SPI%d", uint(s))
}

var (
	_ ClockGate                   = UART(0)
	_ ClockGate                   = SPI(0)
	_ ClockConfig[SpiClockSource] = SPI(0)
	_ Block                       = (*RegisterBlock)(nil)
)
