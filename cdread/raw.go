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
/*
 *  raw.go - Imatges de sectors RAW de 2352 bytes (BIN).
 */

package cdread

import (
	"bytes"
	"os"

	"github.com/pkg/errors"
)

/*************/
/* CONSTANTS */
/*************/

var syncPattern = []byte{
	0x00, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x00,
}

const (
	rawModeOffset   = 15
	rawSubHeader    = 0x12 // Submode en CD-XA
	rawMode1Data    = 16
	rawMode2XAData  = 0x18
	rawSubmodeForm2 = 0x20
)

/*****************/
/* SECTOR SOURCE */
/*****************/

type rawSource struct {
	file      *os.File
	offset    int64 // Bytes
	stride    int64 // Bytes per sector, subcanal inclòs
	sectors   int64
	trackType int
}

func (self *rawSource) Format() string {
	return "BIN " + trackTypeName(self.trackType)
} // end Format

func (self *rawSource) Sectors() int64 { return self.sectors }

func (self *rawSource) Close() error { return self.file.Close() }

// Torna les dades d'usuari d'un sector RAW.
func userData(raw []byte) ([]byte, error) {

	if !bytes.Equal(raw[:len(syncPattern)], syncPattern) {
		return nil, errors.New("sync pattern not found")
	}
	switch raw[rawModeOffset] {
	case 1:
		return raw[rawMode1Data : rawMode1Data+SectorSize], nil
	case 2:
		if raw[rawSubHeader]&rawSubmodeForm2 != 0 {
			return nil, errors.New("unexpected CD-XA form 2 sector")
		}
		return raw[rawMode2XAData : rawMode2XAData+SectorSize], nil
	default:
		return nil, errors.Errorf("unsupported sector mode %d",
			raw[rawModeOffset])
	}

} // end userData

func (self *rawSource) ReadSector(disk uint8, sector uint32, buf []byte) error {

	if len(buf) < SectorSize {
		return errors.Errorf("buffer too small (%d bytes)", len(buf))
	}
	if int64(sector) >= self.sectors {
		return errors.Errorf("sector %d out of range (%d sectors)",
			sector, self.sectors)
	}

	// Llig sector
	var raw [RawSectorSize]byte
	if _, err := self.file.ReadAt(raw[:],
		self.offset+int64(sector)*self.stride); err != nil {
		return errors.Wrapf(err, "failed to read sector %d from '%s'",
			sector, self.file.Name())
	}
	data, err := userData(raw[:])
	if err != nil {
		return errors.Wrapf(err, "sector %d of '%s'", sector, self.file.Name())
	}
	copy(buf, data)

	return nil

} // end ReadSector

/**********************/
/* FUNCIONS PÚBLIQUES */
/**********************/

// Amb sectors a 0 el track ocupa la resta del fitxer.
func newRawSource(
	file *os.File,
	offset, stride, sectors int64,
) (*rawSource, error) {

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}
	size := info.Size() - offset
	if sectors == 0 {
		if size%stride != 0 {
			return nil, errors.Errorf("binary file '%s' has a wrong size",
				file.Name())
		}
		sectors = size / stride
	}
	if sectors < 17 || sectors*stride > size {
		return nil, errors.Errorf("binary file '%s' has a wrong size",
			file.Name())
	}

	// El tipus del track es dedueix del primer sector.
	var raw [RawSectorSize]byte
	if _, err := file.ReadAt(raw[:], offset); err != nil {
		return nil, errors.Wrapf(err, "'%s'", file.Name())
	}
	if _, err := userData(raw[:]); err != nil {
		return nil, errors.Wrapf(err, "'%s' is not a raw data track",
			file.Name())
	}
	ret := rawSource{
		file:      file,
		offset:    offset,
		stride:    stride,
		sectors:   sectors,
		trackType: TrackTypeMode1Raw,
	}
	if raw[rawModeOffset] == 2 {
		ret.trackType = TrackTypeMode2Raw
	}

	return &ret, nil

} // end newRawSource

// OpenRaw opens a BIN image of 2352-byte sectors whose first track
// holds data.
func OpenRaw(fileName string) (Source, error) {

	f, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	ret, err := newRawSource(f, 0, RawSectorSize, 0)
	if err != nil {
		f.Close()
		return nil, err
	}

	return ret, nil

} // end OpenRaw

// IsRaw reports whether the file starts with a raw sector header.
func IsRaw(fileName string) bool {

	f, err := os.Open(fileName)
	if err != nil {
		return false
	}
	defer f.Close()
	var head [16]byte
	if _, err := f.ReadAt(head[:], 0); err != nil {
		return false
	}

	return bytes.Equal(head[:len(syncPattern)], syncPattern)

} // end IsRaw
