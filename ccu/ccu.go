// Package ccu models the Clock Control Unit of the Allwinner D1 family: the
// layout of its register block, the bitfields of the registers in it and the
// write sequences that gate, reset and configure the clocks of other
// peripherals.
//
// Register details are from the D1 user manual, section 3.2 (CCU).
package ccu

import "unsafe"

// Base is the physical address of the CCU register block on D1, D1s and T113.
const Base = uintptr(0x02001000)

// Register is a single 32-bit hardware register whose contents are read as T.
//
// Implementations are the only code touching the hardware. Nothing here is
// synchronised: two read-modify-write sequences on the same register must not
// run concurrently.
type Register[T ~uint32] interface {
	Read() T
	Write(T)
}

// RW is a memory-mapped read/write register. Every Read and Write is a single
// plain 32-bit load or store. Atomic instructions are avoided since device
// memory on riscv64 doesn't have to support LR/SC or AMOs.
type RW[T ~uint32] struct {
	raw uint32
}

// Not inlined, so the compiler can't merge or drop accesses across calls.
//
//go:noinline
func (r *RW[T]) Read() T {
	return T(r.raw)
}

//go:noinline
func (r *RW[T]) Write(v T) {
	r.raw = uint32(v)
}

// RegisterBlock is the CCU register block. Only the registers used here are
// named, the rest is reserved padding so the named fields sit at their
// hardware offsets.
type RegisterBlock struct {
	_       [579]uint32
	UartBgr RW[UartBusGating] // 0x90c UART Bus Gating Reset
	_       [12]uint32
	SpiClk  [2]RW[SpiClock] // 0x940 SPI0/SPI1 Clock
	_       [9]uint32
	SpiBgr  RW[SpiBusGating] // 0x96c SPI Bus Gating Reset
}

// Size is the number of bytes a RegisterBlock covers.
const Size = int(unsafe.Sizeof(RegisterBlock{}))

// Block gives access to the CCU registers. *RegisterBlock is the hardware
// implementation.
type Block interface {
	UARTBusGating() Register[UartBusGating]
	SPIBusGating() Register[SpiBusGating]
	SPIClock(i int) Register[SpiClock]
}

func (rb *RegisterBlock) UARTBusGating() Register[UartBusGating] {
	return &rb.UartBgr
}

func (rb *RegisterBlock) SPIBusGating() Register[SpiBusGating] {
	return &rb.SpiBgr
}

// SPIClock returns the clock register of SPI i. It panics if there is no such SPI.
func (rb *RegisterBlock) SPIClock(i int) Register[SpiClock] {
	return &rb.SpiClk[i]
}

// At returns the register block at physical address base. It is only usable
// where physical addresses are directly accessible, i.e. without an MMU or
// with an identity mapping.
func At(base uintptr) *RegisterBlock {
	// base is a fixed physical address, not Go memory, so the uintptr
	// conversion vet warns about is intended.
	return (*RegisterBlock)(unsafe.Pointer(base))
}

// FromBytes overlays a register block on buf, which usually comes from
// mapping the CCU out of /dev/mem. buf must be at least Size bytes and 4-byte
// aligned, and must stay alive as long as the register block is used.
func FromBytes(buf []byte) *RegisterBlock {
	if len(buf) < Size {
		panic("ccu: buffer too small for register block")
	}
	p := unsafe.Pointer(&buf[0])
	if uintptr(p)&3 != 0 {
		panic("ccu: register block buffer not 32-bit aligned")
	}
	return (*RegisterBlock)(p)
}
