package main

import (
	"flag"
	"log"

	d1 "github.com/Jon-Bright/d1ccu/d1"
)

var periph = flag.String("periph", "uart", "The peripheral kind whose clock to control: one of uart, spi")
var index = flag.Uint("index", 0, "The instance of the peripheral, e.g. 1 for SPI1")
var op = flag.String("op", OP_SHOW, "What to do: one of reset, free, config, show")
var source = flag.String("source", "HOSC", "The SPI clock source for config: one of HOSC, PLL_PERI(1X), PLL_PERI(2X), PLL_AUDIO1(DIV2), PLL_AUDIO1(DIV5)")
var factorM = flag.Uint("m", 0, "The raw divider factor M for config, 0..15")
var factorN = flag.String("n", "1", "The divider factor N for config: one of 1, 2, 4, 8")
var memBase = flag.Uint64("membase", 0, "Physical address of the CCU. Skips SoC detection if set, 0 means detect the SoC and use its address.")

func main() {
	flag.Parse()
	req, err := parseRequest(*periph, *index, *op, *source, *factorM, *factorN)
	if err != nil {
		log.Fatalf("Invalid request: %v", err)
	}
	soc, err := openSoC(*memBase)
	if err != nil {
		log.Fatalf("Couldn't create D1: %v", err)
	}
	err = soc.InitCCU()
	if err != nil {
		log.Fatalf("Couldn't init CCU: %v", err)
	}
	defer soc.Close() // Ignore error
	run(req, soc.CCU())
}

// openSoC detects the SoC unless the CCU address is given explicitly.
func openSoC(base uint64) (*d1.D1, error) {
	if base != 0 {
		return d1.NewD1At(uintptr(base)), nil
	}
	return d1.NewD1()
}
