/*
 * Copyright 2025 Adrià Giménez Pastor.
 *
 * This file is part of adriagipas/isoread.
 *
 * adriagipas/isoread is free software: you can redistribute it and/or
 * modify it under the terms of the GNU General Public License as
 * published by the Free Software Foundation, either version 3 of the
 * License, or (at your option) any later version.
 *
 * adriagipas/isoread is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
 * General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with adriagipas/isoread.  If not, see
 * <https://www.gnu.org/licenses/>.
 */

package iso9660

import (
	"encoding/binary"
	"fmt"
)

var errTestIO = fmt.Errorf("test disk failure")

// testDisk serves sectors from memory and counts fetches.
type testDisk struct {
	sectors map[uint32][]byte
	fail    map[uint32]bool
	fetches int
}

func newTestDisk() *testDisk {
	return &testDisk{
		sectors: make(map[uint32][]byte),
		fail:    make(map[uint32]bool),
	}
}

func (d *testDisk) ReadSector(disk uint8, sector uint32, buf []byte) error {
	d.fetches++
	if len(buf) != SectorSize {
		return fmt.Errorf("buffer of %d bytes", len(buf))
	}
	if d.fail[sector] {
		return errTestIO
	}
	for i := range buf {
		buf[i] = 0
	}
	copy(buf, d.sectors[sector])

	return nil
}

// put stores data from sector on, one sector per 2048 bytes.
func (d *testDisk) put(sector uint32, data []byte) {
	for len(data) > 0 {
		n := len(data)
		if n > SectorSize {
			n = SectorSize
		}
		d.sectors[sector] = append([]byte(nil), data[:n]...)
		data = data[n:]
		sector++
	}
}

func putBoth16(b []byte, v uint16) {
	binary.LittleEndian.PutUint16(b[0:2], v)
	binary.BigEndian.PutUint16(b[2:4], v)
}

func putBoth32(b []byte, v uint32) {
	binary.LittleEndian.PutUint32(b[0:4], v)
	binary.BigEndian.PutUint32(b[4:8], v)
}

func descriptor(typ byte) []byte {
	ret := make([]byte, SectorSize)
	ret[0] = typ
	copy(ret[1:6], "CD001")
	ret[6] = 1
	return ret
}

func primary(rootSector, rootSize uint32) []byte {
	ret := descriptor(TypePrimary)
	copy(ret[8:40], padded("TESTSYS", 32))
	copy(ret[40:72], padded("TESTVOL", 32))
	putBoth32(ret[80:88], 100)
	putBoth16(ret[120:124], 1)
	putBoth16(ret[124:128], 1)
	putBoth16(ret[128:132], SectorSize)
	copy(ret[rootRecordOffset:], record([]byte{0}, rootSector, rootSize, FlagDirectory))
	copy(ret[318:446], padded("PUBLISHER", 128))
	copy(ret[813:830], "2024010212304500")
	ret[829] = 4
	ret[881] = 1
	return ret
}

func padded(s string, n int) []byte {
	ret := make([]byte, n)
	for i := range ret {
		ret[i] = ' '
	}
	copy(ret, s)
	return ret
}

// record encodes a directory record, padded to an even length.
func record(name []byte, sector, size uint32, flags byte) []byte {
	n := recordFixedSize + len(name)
	if n%2 == 1 {
		n++
	}
	ret := make([]byte, n)
	ret[0] = byte(n)
	putBoth32(ret[2:10], sector)
	putBoth32(ret[10:18], size)
	copy(ret[18:25], []byte{124, 3, 15, 10, 20, 30, 0})
	ret[25] = flags
	putBoth16(ret[28:32], 1)
	ret[32] = byte(len(name))
	copy(ret[33:], name)
	return ret
}

func dirSector(records ...[]byte) []byte {
	ret := make([]byte, 0, SectorSize)
	for _, r := range records {
		ret = append(ret, r...)
	}
	if len(ret) > SectorSize {
		panic("directory sector overflow")
	}
	return append(ret, make([]byte, SectorSize-len(ret))...)
}

func content(seed byte, n int) []byte {
	ret := make([]byte, n)
	for i := range ret {
		ret[i] = seed + byte(i*7+i/SectorSize)
	}
	return ret
}

const (
	rootSector   = 23
	rootSize     = 2 * SectorSize
	docsSector   = 32
	noteSector   = 33
	readmeSector = 50
	readmeSize   = 5000
	bigSector    = 60
	bigSize      = 3*SectorSize + 100
	noteSize     = 10
)

var (
	readmeData = content(1, readmeSize)
	bigData    = content(2, bigSize)
	noteData   = []byte("note text\n")
)

// newTestVolumeDisk builds:
//
//	/README.TXT;1     5000 bytes
//	/DOCS/NOTE.TXT;1  10 bytes
//	/BIG.BIN;1        3*2048+100 bytes (second root sector)
//	/EMPTY.DAT;1      0 bytes
//	/XATTR.DAT;1      one xattr sector before the data
func newTestVolumeDisk() *testDisk {
	d := newTestDisk()
	d.put(16, primary(rootSector, rootSize))
	d.put(17, descriptor(TypeTerminator))

	d.put(rootSector, dirSector(
		record([]byte{0}, rootSector, rootSize, FlagDirectory),
		record([]byte{1}, rootSector, rootSize, FlagDirectory),
		record([]byte("README.TXT;1"), readmeSector, readmeSize, 0),
		record([]byte("DOCS"), docsSector, SectorSize, FlagDirectory),
	))
	xattr := record([]byte("XATTR.DAT;1"), 70, 4, 0)
	xattr[1] = 1
	d.put(rootSector+1, dirSector(
		record([]byte("BIG.BIN;1"), bigSector, bigSize, 0),
		record([]byte("EMPTY.DAT;1"), 0, 0, 0),
		xattr,
	))
	d.put(docsSector, dirSector(
		record([]byte{0}, docsSector, SectorSize, FlagDirectory),
		record([]byte{1}, rootSector, rootSize, FlagDirectory),
		record([]byte("NOTE.TXT;1"), noteSector, noteSize, 0),
	))
	d.put(noteSector, noteData)
	d.put(readmeSector, readmeData)
	d.put(bigSector, bigData)
	d.put(70, []byte("XXXX"))
	d.put(71, []byte("data"))

	return d
}
