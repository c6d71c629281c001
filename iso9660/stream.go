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
 *  stream.go - Lectura seqüencial d'un extent.
 */

package iso9660

import (
	"io"

	"github.com/pkg/errors"
)

// Origin is the reference point of Stream.Seek.
type Origin int

const (
	SeekStart Origin = iota
	SeekCurrent

	// The offset counts backwards from the end of the stream.
	SeekEnd
)

// Stream reads the bytes of one extent. It stays valid as long as its
// Volume does and needs no closing.
type Stream struct {
	vol    *Volume
	id     uint64
	first  uint32 // Primer sector de dades
	length uint32
	pos    uint32
	cache  *sectorCache
}

// Size returns the length in bytes of the stream.
func (self *Stream) Size() uint32 { return self.length }

// Tell returns the current position.
func (self *Stream) Tell() uint32 { return self.pos }

// Extent returns the data extent the stream reads. XattrLength is
// already folded into FirstSector.
func (self *Stream) Extent() Extent {
	return Extent{FirstSector: self.first, Length: self.length}
} // end Extent

func (self *Stream) currentSector() uint32 {
	return self.first + self.pos/SectorSize
} // end currentSector

func (self *Stream) fetch() error {
	return self.cache.fill(self.vol.src, self.vol.disk, self.id,
		self.currentSector())
} // end fetch

// Garanteix que la memòria cau conté el sector de la posició actual.
func (self *Stream) ensureCurrent() error {

	if self.pos%SectorSize == 0 ||
		!self.cache.holds(self.id, self.currentSector()) {
		return self.fetch()
	}

	return nil

} // end ensureCurrent

// Seek moves the position. Targets outside [0, Size()] fail with
// ErrInvalidSeek and leave the position untouched.
func (self *Stream) Seek(origin Origin, offset int64) error {

	var target int64
	switch origin {
	case SeekStart:
		target = offset
	case SeekCurrent:
		target = int64(self.pos) + offset
	case SeekEnd:
		target = int64(self.length) - offset
	default:
		return errors.Wrapf(ErrInvalidSeek, "unknown origin %d", origin)
	}
	if target < 0 || target > int64(self.length) {
		return errors.Wrapf(ErrInvalidSeek,
			"position %d out of range [0,%d]", target, self.length)
	}

	// Si canvia de sector i no cau en una frontera el carrega ara. En
	// la frontera ja el carregarà Read.
	old := self.pos
	self.pos = uint32(target)
	if old/SectorSize != self.pos/SectorSize && self.pos%SectorSize != 0 {
		if err := self.fetch(); err != nil {
			self.pos = old
			return err
		}
	}

	return nil

} // end Seek

// Read copies at most up to the end of the current sector. It returns
// 0, io.EOF once the position reaches Size().
func (self *Stream) Read(buf []byte) (int, error) {

	if len(buf) == 0 {
		return 0, nil
	}
	if self.pos >= self.length {
		return 0, io.EOF
	}
	if err := self.ensureCurrent(); err != nil {
		return 0, err
	}

	off := self.pos % SectorSize
	n := uint32(len(buf))
	if rem := SectorSize - off; n > rem {
		n = rem
	}
	if rem := self.length - self.pos; n > rem {
		n = rem
	}
	copy(buf, self.cache.data[off:off+n])
	self.pos += n

	return int(n), nil

} // end Read

// ReadAt reads len(buf) bytes starting at off, moving the position.
// A short read at the end of the stream returns io.EOF.
func (self *Stream) ReadAt(buf []byte, off int64) (int, error) {

	if err := self.Seek(SeekStart, off); err != nil {
		return 0, err
	}
	n, err := io.ReadFull(self, buf)
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}

	return n, err

} // end ReadAt
