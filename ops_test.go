package main

import (
	"testing"

	"github.com/Jon-Bright/d1ccu/ccu"
)

func TestParseRequest(t *testing.T) {
	tests := []struct {
		periph string
		index  uint
		op     string
		source string
		m      uint
		n      string
		err    bool
	}{
		{"uart", 0, "reset", "", 0, "", false},
		{"UART", 5, "Free", "", 0, "", false},
		{"uart", 6, "reset", "", 0, "", true},
		{"spi", 1, "show", "", 0, "", false},
		{"spi", 2, "show", "", 0, "", true},
		{"i2c", 0, "reset", "", 0, "", true},
		{"spi", 0, "explode", "", 0, "", true},
		{"spi", 0, "config", "PLL_PERI(1X)", 4, "4", false},
		{"spi", 0, "config", "PLL_CPU", 4, "4", true},
		{"spi", 0, "config", "HOSC", 16, "4", true},
		{"spi", 0, "config", "HOSC", 4, "3", true},
		{"uart", 0, "config", "HOSC", 4, "4", true},
	}
	for _, test := range tests {
		_, err := parseRequest(test.periph, test.index, test.op, test.source, test.m, test.n)
		if test.err && err == nil {
			t.Errorf("%s%d %s: expected error", test.periph, test.index, test.op)
		} else if !test.err && err != nil {
			t.Errorf("%s%d %s: unexpected error: %v", test.periph, test.index, test.op, err)
		}
	}
}

func TestRun(t *testing.T) {
	var rb ccu.RegisterBlock
	steps := []struct {
		periph, op, source, n string
		index                 uint
		m                     uint
	}{
		{"spi", "reset", "", "", 1, 0},
		{"spi", "config", "PLL_PERI(1X)", "4", 1, 4},
		{"uart", "reset", "", "", 3, 0},
		{"spi", "show", "", "", 1, 0},
	}
	for _, s := range steps {
		req, err := parseRequest(s.periph, s.index, s.op, s.source, s.m, s.n)
		if err != nil {
			t.Fatalf("%s %s: couldn't parse: %v", s.periph, s.op, err)
		}
		run(req, &rb)
	}
	if got := rb.SpiBgr.Read(); got != 0x00020002 {
		t.Errorf("spi_bgr got: %08X, want: 00020002", uint32(got))
	}
	if got := rb.SpiClk[1].Read(); got != 0x01000204 {
		t.Errorf("spi_clk[1] got: %08X, want: 01000204", uint32(got))
	}
	if got := rb.UartBgr.Read(); got != 0x00080008 {
		t.Errorf("uart_bgr got: %08X, want: 00080008", uint32(got))
	}

	req, _ := parseRequest("uart", 3, "free", "", 0, "")
	run(req, &rb)
	if got := rb.UartBgr.Read(); got != 0 {
		t.Errorf("uart_bgr after free got: %08X, want: 00000000", uint32(got))
	}
}

// An explicit CCU address has to work on boards whose device tree isn't
// recognised, so it mustn't go through detection.
func TestOpenSoCWithBase(t *testing.T) {
	soc, err := openSoC(0x02001000)
	if err != nil {
		t.Fatalf("openSoC with base got error: %v", err)
	}
	if got := soc.Name(); got != "unknown SoC" {
		t.Errorf("Name got: %q, want: %q", got, "unknown SoC")
	}
}
