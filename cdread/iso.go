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
 *  iso.go - Format imatge ISO.
 */

package cdread

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
)

/*****************/
/* SECTOR SOURCE */
/*****************/

type isoSource struct {
	file    *os.File
	offset  int64 // Bytes
	sectors int64
}

func (self *isoSource) Format() string { return "ISO" }

func (self *isoSource) Sectors() int64 { return self.sectors }

func (self *isoSource) Close() error { return self.file.Close() }

func (self *isoSource) ReadSector(disk uint8, sector uint32, buf []byte) error {

	if len(buf) < SectorSize {
		return errors.Errorf("buffer too small (%d bytes)", len(buf))
	}
	if int64(sector) >= self.sectors {
		return errors.Errorf("sector %d out of range (%d sectors)",
			sector, self.sectors)
	}

	// L'últim sector pot estar incomplet.
	n, err := self.file.ReadAt(buf[:SectorSize],
		self.offset+int64(sector)*SectorSize)
	if err == io.EOF && n > 0 {
		clear(buf[n:SectorSize])
		err = nil
	}
	if err != nil {
		return errors.Wrapf(err, "failed to read sector %d from '%s'",
			sector, self.file.Name())
	}

	return nil

} // end ReadSector

/**********************/
/* FUNCIONS PÚBLIQUES */
/**********************/

func newIsoSource(file *os.File, offset int64) (*isoSource, error) {

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}
	size := info.Size() - offset
	if size < 17*SectorSize {
		return nil, errors.Errorf(
			"'%s' size (%d) is not a valid size for a ISO file",
			file.Name(), info.Size())
	}

	return &isoSource{
		file:    file,
		offset:  offset,
		sectors: (size + SectorSize - 1) / SectorSize,
	}, nil

} // end newIsoSource

// OpenISO opens an image made of 2048-byte sectors.
func OpenISO(fileName string) (Source, error) {

	// Intenta obrir el fitxer
	f, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	ret, err := newIsoSource(f, 0)
	if err != nil {
		f.Close()
		return nil, err
	}

	// Llig la signatura del primer descriptor de volum.
	var data [5]byte
	if _, err := f.ReadAt(data[:], 16*SectorSize+1); err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "'%s'", fileName)
	}
	if !bytes.Equal(data[:], []byte("CD001")) {
		f.Close()
		return nil, errors.Errorf("'%s' is not a ISO file", fileName)
	}

	return ret, nil

} // end OpenISO
