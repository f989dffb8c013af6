package ccu

import (
	"go/parser"
	"go/token"
	"strconv"
	"testing"
	"unsafe"
)

func TestRegisterOffsets(t *testing.T) {
	var rb RegisterBlock
	tests := []struct {
		name string
		got  uintptr
		want uintptr
	}{
		{"uart_bgr", unsafe.Offsetof(rb.UartBgr), 0x90c},
		{"spi_clk", unsafe.Offsetof(rb.SpiClk), 0x940},
		{"spi_clk[1]", unsafe.Offsetof(rb.SpiClk) + unsafe.Sizeof(rb.SpiClk[0]), 0x944},
		{"spi_bgr", unsafe.Offsetof(rb.SpiBgr), 0x96c},
	}
	for _, test := range tests {
		if test.got != test.want {
			t.Errorf("%s offset got: %03X, want: %03X", test.name, test.got, test.want)
		}
	}
	if Size != 0x970 {
		t.Errorf("block size got: %03X, want: 970", Size)
	}
}

func TestFromBytes(t *testing.T) {
	buf := make([]byte, Size)
	rb := FromBytes(buf)
	rb.SpiBgr.Write(0x00010001)
	rb.SpiClk[1].Write(0x01000204)
	le := func(off int) uint32 {
		return uint32(buf[off]) | uint32(buf[off+1])<<8 | uint32(buf[off+2])<<16 | uint32(buf[off+3])<<24
	}
	if got := le(0x96c); got != 0x00010001 {
		t.Errorf("spi_bgr in buffer got: %08X, want: 00010001", got)
	}
	if got := le(0x944); got != 0x01000204 {
		t.Errorf("spi_clk[1] in buffer got: %08X, want: 01000204", got)
	}
	if got := le(0x940); got != 0 {
		t.Errorf("spi_clk[0] in buffer got: %08X, want: 00000000", got)
	}
}

func TestFromBytesTooSmall(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("FromBytes on short buffer didn't panic")
		}
	}()
	FromBytes(make([]byte, Size-4))
}

func TestAt(t *testing.T) {
	rb := new(RegisterBlock)
	got := At(uintptr(unsafe.Pointer(rb)))
	if got != rb {
		t.Errorf("At got: %p, want: %p", got, rb)
	}
}

// RW is used on uncached device memory, where LR/SC and AMO instructions can
// fault, so register access must stay plain loads and stores.
func TestRWNoAtomics(t *testing.T) {
	f, err := parser.ParseFile(token.NewFileSet(), "ccu.go", nil, parser.ImportsOnly)
	if err != nil {
		t.Fatalf("couldn't parse ccu.go: %v", err)
	}
	for _, imp := range f.Imports {
		p, _ := strconv.Unquote(imp.Path.Value)
		if p == "sync/atomic" {
			t.Errorf("ccu.go imports %s", p)
		}
	}
}

func TestRWEveryWriteLands(t *testing.T) {
	buf := make([]byte, Size)
	rb := FromBytes(buf)
	le := func(off int) uint32 {
		return uint32(buf[off]) | uint32(buf[off+1])<<8 | uint32(buf[off+2])<<16 | uint32(buf[off+3])<<24
	}
	for _, v := range []UartBusGating{0x00010001, 0, 0x003f003f, 0x00200020} {
		rb.UartBgr.Write(v)
		if got := le(0x90c); got != uint32(v) {
			t.Errorf("uart_bgr in buffer after write got: %08X, want: %08X", got, uint32(v))
		}
		if got := rb.UartBgr.Read(); got != v {
			t.Errorf("uart_bgr read back got: %08X, want: %08X", uint32(got), uint32(v))
		}
	}
	buf[0x96c] = 0x03
	buf[0x96e] = 0x03
	if got := rb.SpiBgr.Read(); got != 0x00030003 {
		t.Errorf("spi_bgr after changing buffer got: %08X, want: 00030003", uint32(got))
	}
}
