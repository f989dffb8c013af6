package ccu

import (
	"fmt"
	"strings"
)

// Bus gating reset registers pack one gate bit (bit i) and one reset bit
// (bit i+16) per instance of a peripheral.
const (
	BGR_GATE_SHIFT = 0
	BGR_RST_SHIFT  = 16
	BGR_MAX_INST   = 16
)

func gateBit(i uint) uint32 {
	if i >= BGR_MAX_INST {
		panic(fmt.Sprintf("ccu: bus gating index %d out of range", i))
	}
	return 1 << (i + BGR_GATE_SHIFT)
}

func rstBit(i uint) uint32 {
	if i >= BGR_MAX_INST {
		panic(fmt.Sprintf("ccu: bus gating index %d out of range", i))
	}
	return 1 << (i + BGR_RST_SHIFT)
}

func bgrString(v uint32, n uint) string {
	var out []string
	for i := uint(0); i < n; i++ {
		s := fmt.Sprintf("%d:", i)
		if v&gateBit(i) != 0 {
			s += "G"
		} else {
			s += "g"
		}
		if v&rstBit(i) != 0 {
			s += "R"
		} else {
			s += "r"
		}
		out = append(out, s)
	}
	return fmt.Sprintf("%08X[%s]", v, strings.Join(out, " "))
}

// UartBusGating is a value of the UART Bus Gating Reset register.
type UartBusGating uint32

// GateMask stops the clock to UART i.
func (v UartBusGating) GateMask(i uint) UartBusGating {
	return v &^ UartBusGating(gateBit(i))
}

// GatePass lets the clock through to UART i.
func (v UartBusGating) GatePass(i uint) UartBusGating {
	return v | UartBusGating(gateBit(i))
}

// AssertReset holds UART i in reset.
func (v UartBusGating) AssertReset(i uint) UartBusGating {
	return v &^ UartBusGating(rstBit(i))
}

// DeassertReset releases UART i from reset.
func (v UartBusGating) DeassertReset(i uint) UartBusGating {
	return v | UartBusGating(rstBit(i))
}

func (v UartBusGating) GateEnabled(i uint) bool {
	return uint32(v)&gateBit(i) != 0
}

func (v UartBusGating) ResetDeasserted(i uint) bool {
	return uint32(v)&rstBit(i) != 0
}

func (v UartBusGating) String() string {
	return bgrString(uint32(v), NumUART)
}

// SpiBusGating is a value of the SPI Bus Gating Reset register.
type SpiBusGating uint32

// GateMask stops the clock to SPI i.
func (v SpiBusGating) GateMask(i uint) SpiBusGating {
	return v &^ SpiBusGating(gateBit(i))
}

// GatePass lets the clock through to SPI i.
func (v SpiBusGating) GatePass(i uint) SpiBusGating {
	return v | SpiBusGating(gateBit(i))
}

// AssertReset holds SPI i in reset.
func (v SpiBusGating) AssertReset(i uint) SpiBusGating {
	return v &^ SpiBusGating(rstBit(i))
}

// DeassertReset releases SPI i from reset.
func (v SpiBusGating) DeassertReset(i uint) SpiBusGating {
	return v | SpiBusGating(rstBit(i))
}

func (v SpiBusGating) GateEnabled(i uint) bool {
	return uint32(v)&gateBit(i) != 0
}

func (v SpiBusGating) ResetDeasserted(i uint) bool {
	return uint32(v)&rstBit(i) != 0
}

func (v SpiBusGating) String() string {
	return bgrString(uint32(v), NumSPI)
}

// FactorN is the power-of-two pre-divider of a module clock.
type FactorN int

const (
	N1 FactorN = iota // don't divide
	N2
	N4
	N8
)

// Divisor returns the number the source clock is divided by.
func (n FactorN) Divisor() uint32 {
	switch n {
	case N1:
		return 1
	case N2:
		return 2
	case N4:
		return 4
	case N8:
		return 8
	}
	panic(fmt.Sprintf("ccu: invalid factor N %d", int(n)))
}

func (n FactorN) String() string {
	switch n {
	case N1, N2, N4, N8:
		return fmt.Sprintf("N%d", n.Divisor())
	}
	return fmt.Sprintf("FactorN(%d)", int(n))
}

// ParseFactorN accepts the divisor ("1", "2", "4", "8"), optionally with an
// "N" prefix.
func ParseFactorN(s string) (FactorN, error) {
	switch strings.TrimPrefix(strings.ToUpper(s), "N") {
	case "1":
		return N1, nil
	case "2":
		return N2, nil
	case "4":
		return N4, nil
	case "8":
		return N8, nil
	}
	return 0, fmt.Errorf("%q is not a factor N, want one of 1, 2, 4, 8", s)
}

// SpiClockSource selects the source clock of an SPI module.
type SpiClockSource int

const (
	Hosc SpiClockSource = iota
	PllPeri1x
	PllPeri2x
	PllAudio1Div2
	PllAudio1Div5
)

var spiClockSourceNames = map[SpiClockSource]string{
	Hosc:          "HOSC",
	PllPeri1x:     "PLL_PERI(1X)",
	PllPeri2x:     "PLL_PERI(2X)",
	PllAudio1Div2: "PLL_AUDIO1(DIV2)",
	PllAudio1Div5: "PLL_AUDIO1(DIV5)",
}

func (s SpiClockSource) String() string {
	if n, ok := spiClockSourceNames[s]; ok {
		return n
	}
	return fmt.Sprintf("SpiClockSource(%d)", int(s))
}

// ParseSpiClockSource accepts the names String returns, case-insensitively.
func ParseSpiClockSource(s string) (SpiClockSource, error) {
	for src, n := range spiClockSourceNames {
		if strings.EqualFold(s, n) {
			return src, nil
		}
	}
	return 0, fmt.Errorf("%q is not an SPI clock source", s)
}

const (
	SPI_CLK_SRC_SEL_SHIFT  = 24
	SPI_CLK_SRC_SEL        = uint32(0x7 << SPI_CLK_SRC_SEL_SHIFT)
	SPI_CLK_FACTOR_N_SHIFT = 8
	SPI_CLK_FACTOR_N       = uint32(0x3 << SPI_CLK_FACTOR_N_SHIFT)
	SPI_CLK_FACTOR_M_SHIFT = 0
	SPI_CLK_FACTOR_M       = uint32(0xf << SPI_CLK_FACTOR_M_SHIFT)
)

// SpiClock is a value of an SPI Clock register.
type SpiClock uint32

// ClockSource decodes the source selector. It panics on the unassigned
// encodings 5-7, which only a broken register or a bug can produce.
func (v SpiClock) ClockSource() SpiClockSource {
	switch (uint32(v) & SPI_CLK_SRC_SEL) >> SPI_CLK_SRC_SEL_SHIFT {
	case 0:
		return Hosc
	case 1:
		return PllPeri1x
	case 2:
		return PllPeri2x
	case 3:
		return PllAudio1Div2
	case 4:
		return PllAudio1Div5
	}
	panic(fmt.Sprintf("ccu: impossible SPI clock source in %08X", uint32(v)))
}

func (v SpiClock) SetClockSource(src SpiClockSource) SpiClock {
	var val uint32
	switch src {
	case Hosc:
		val = 0
	case PllPeri1x:
		val = 1
	case PllPeri2x:
		val = 2
	case PllAudio1Div2:
		val = 3
	case PllAudio1Div5:
		val = 4
	default:
		panic(fmt.Sprintf("ccu: invalid SPI clock source %d", int(src)))
	}
	return SpiClock(uint32(v)&^SPI_CLK_SRC_SEL | val<<SPI_CLK_SRC_SEL_SHIFT)
}

func (v SpiClock) FactorN() FactorN {
	switch (uint32(v) & SPI_CLK_FACTOR_N) >> SPI_CLK_FACTOR_N_SHIFT {
	case 0:
		return N1
	case 1:
		return N2
	case 2:
		return N4
	default:
		return N8
	}
}

func (v SpiClock) SetFactorN(n FactorN) SpiClock {
	var val uint32
	switch n {
	case N1:
		val = 0
	case N2:
		val = 1
	case N4:
		val = 2
	case N8:
		val = 3
	default:
		panic(fmt.Sprintf("ccu: invalid factor N %d", int(n)))
	}
	return SpiClock(uint32(v)&^SPI_CLK_FACTOR_N | val<<SPI_CLK_FACTOR_N_SHIFT)
}

// FactorM returns the raw divider M field. Whether the hardware divides by M
// or M+1 is the datasheet's business.
func (v SpiClock) FactorM() uint8 {
	return uint8((uint32(v) & SPI_CLK_FACTOR_M) >> SPI_CLK_FACTOR_M_SHIFT)
}

// SetFactorM sets the raw divider M field. m must be in 0..15.
func (v SpiClock) SetFactorM(m uint8) SpiClock {
	if m > 15 {
		panic(fmt.Sprintf("ccu: factor M %d out of range", m))
	}
	return SpiClock(uint32(v)&^SPI_CLK_FACTOR_M | uint32(m)<<SPI_CLK_FACTOR_M_SHIFT)
}

func (v SpiClock) String() string {
	src := "?"
	if (uint32(v)&SPI_CLK_SRC_SEL)>>SPI_CLK_SRC_SEL_SHIFT <= 4 {
		src = v.ClockSource().String()
	}
	return fmt.Sprintf("%08X[src=%s n=%v m=%d]", uint32(v), src, v.FactorN(), v.FactorM())
}
