package d1

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"github.com/Jon-Bright/d1ccu/ccu"
	mmap "github.com/edsrzf/mmap-go"
)

const (
	COMPATIBLE_FILE = "/proc/device-tree/compatible"
)

type D1 struct {
	hw     *hw
	ccuBuf mmap.MMap
	ccu    *ccu.RegisterBlock
}

// NewD1 detects the SoC. The CCU isn't mapped until InitCCU is called.
func NewD1() (*D1, error) {
	hw, err := detectHardware()
	if err != nil {
		return nil, fmt.Errorf("couldn't detect D1 hardware: %v", err)
	}
	log.Printf("Detected %s, CCU at %08X\n", hw.name, hw.ccuBase)
	return &D1{hw: hw}, nil
}

type hw struct {
	socType int
	ccuBase uintptr
	name    string
}

const (
	SOC_TYPE_UNKNOWN = iota
	SOC_TYPE_D1
	SOC_TYPE_D1S
	SOC_TYPE_T113
)

var socVariants = map[string]hw{
	"allwinner,sun20i-d1": {
		socType: SOC_TYPE_D1,
		ccuBase: ccu.Base,
		name:    "Allwinner D1",
	},
	"allwinner,sun20i-d1s": {
		socType: SOC_TYPE_D1S,
		ccuBase: ccu.Base,
		name:    "Allwinner D1s",
	},
	"allwinner,sun8i-t113s": {
		socType: SOC_TYPE_T113,
		ccuBase: ccu.Base,
		name:    "Allwinner T113-S",
	},
}

// Detect which SoC we're running on from the device tree root's compatible
// list, which is a sequence of NUL-terminated strings, most specific first.
// The board entries come first, so the first entry we know wins.
func detectHardware() (*hw, error) {
	b, err := os.ReadFile(COMPATIBLE_FILE)
	if err != nil {
		return nil, fmt.Errorf("couldn't read compatible file: %v", err)
	}
	return lookupHardware(parseCompatible(b))
}

func parseCompatible(b []byte) []string {
	var out []string
	for _, s := range bytes.Split(b, []byte{0}) {
		if len(s) > 0 {
			out = append(out, string(s))
		}
	}
	return out
}

func lookupHardware(compat []string) (*hw, error) {
	for _, c := range compat {
		if h, ok := socVariants[c]; ok {
			return &h, nil
		}
	}
	return nil, fmt.Errorf("couldn't identify SoC from compatible %q", compat)
}

// NewD1At skips detection and uses the CCU at base, for boards whose device
// tree we don't recognise.
func NewD1At(base uintptr) *D1 {
	log.Printf("Using CCU at %08X without SoC detection\n", base)
	return &D1{hw: &hw{
		socType: SOC_TYPE_UNKNOWN,
		ccuBase: base,
		name:    "unknown SoC",
	}}
}

func (d *D1) Name() string {
	return d.hw.name
}

// InitCCU maps the CCU register block.
func (d *D1) InitCCU() error {
	if d.ccu != nil {
		return nil
	}
	var (
		bufOffs uintptr
		err     error
	)
	d.ccuBuf, bufOffs, err = mapMem(d.hw.ccuBase, ccu.Size)
	if err != nil {
		return fmt.Errorf("couldn't map CCU at %08X: %v", d.hw.ccuBase, err)
	}
	log.Printf("Got ccuBuf[%d], offset %d\n", len(d.ccuBuf), bufOffs)
	d.ccu = ccu.FromBytes(d.ccuBuf[bufOffs:])
	return nil
}

// CCU returns the mapped register block, or nil before InitCCU.
func (d *D1) CCU() *ccu.RegisterBlock {
	return d.ccu
}

func (d *D1) Close() error {
	if d.ccuBuf == nil {
		return nil
	}
	d.ccu = nil
	err := d.ccuBuf.Unmap()
	d.ccuBuf = nil
	if err != nil {
		return fmt.Errorf("couldn't unmap CCU: %v", err)
	}
	return nil
}
