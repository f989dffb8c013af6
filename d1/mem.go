package d1

import (
	"fmt"
	"log"
	"os"

	mmap "github.com/edsrzf/mmap-go"
	"golang.org/x/sys/unix"
)

const (
	MEM_FILE = "/dev/mem"
)

// pageAlign splits a physical address into the page-aligned address a mapping
// has to start at and the offset of physAddr within that mapping.
func pageAlign(physAddr uintptr, pageSize int) (uintptr, uintptr) {
	pagemask := ^uintptr(pageSize - 1)
	mapAddr := physAddr & pagemask
	return mapAddr, physAddr - mapAddr
}

// mapMem maps size bytes of physical memory at physAddr out of /dev/mem, uncached.
// pageAlign gives the start of the page holding physAddr, the mapping starts there
// and is grown by the offset. The returned offset is where physAddr lies in the mapping.
func mapMem(physAddr uintptr, size int) (mmap.MMap, uintptr, error) {
	f, err := os.OpenFile(MEM_FILE, os.O_RDWR|unix.O_SYNC, 0)
	if err != nil {
		return nil, 0, fmt.Errorf("couldn't open %s: %v", MEM_FILE, err)
	}
	defer f.Close() // Ignore error, the mapping outlives the file

	mapAddr, offs := pageAlign(physAddr, unix.Getpagesize())
	size += int(offs)
	log.Printf("MapRegion(f, %d, RDWR, 0, %08X), physAddr %08X\n", size, mapAddr, physAddr)
	mm, err := mmap.MapRegion(f, size, mmap.RDWR, 0, int64(mapAddr))
	if err != nil {
		return nil, 0, fmt.Errorf("couldn't map region (%08X, %v): %v", physAddr, size, err)
	}
	return mm, offs, nil
}
