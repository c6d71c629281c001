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
 *  dir.go - Recorregut dels registres d'un directori.
 */

package iso9660

import (
	"github.com/pkg/errors"
)

// Dir enumerates the records of a directory extent in on-disk order.
type Dir struct {
	stream *Stream
}

// Extent returns the directory data extent.
func (self *Dir) Extent() Extent { return self.stream.Extent() }

// Size returns the length in bytes of the directory extent.
func (self *Dir) Size() uint32 { return self.stream.length }

// Rewind moves the cursor back to the first record.
func (self *Dir) Rewind() error {
	return self.stream.Seek(SeekStart, 0)
} // end Rewind

// Next returns the next record, or nil, nil at the end of the
// directory.
func (self *Dir) Next() (*Record, error) {

	s := self.stream
	for s.pos < s.length {

		if err := s.ensureCurrent(); err != nil {
			return nil, err
		}

		// Farciment fins al final del sector.
		off := s.pos % SectorSize
		if s.cache.data[off] == 0 {
			next := (s.pos/SectorSize + 1) * SectorSize
			if next > s.length {
				next = s.length
			}
			s.pos = next
			continue
		}

		rec, err := decodeRecord(s.cache.data[off:])
		if err != nil {
			return nil, errors.Wrapf(err, "sector %d, offset %d",
				s.currentSector(), off)
		}
		next := s.pos + (uint32(rec.Length)+1)&^1
		if next > s.length {
			next = s.length
		}
		s.pos = next

		return rec, nil
	}

	return nil, nil

} // end Next

// Cerca un segment des del principi del directori.
func (self *Dir) find(seg string) (*Record, error) {

	var name []byte
	switch seg {
	case ".":
		name = selfName
	case "..":
		name = parentName
	}

	if err := self.Rewind(); err != nil {
		return nil, err
	}
	for {
		rec, err := self.Next()
		if err != nil {
			return nil, err
		}
		if rec == nil {
			return nil, errors.Wrapf(ErrNotFound, "'%s'", seg)
		}
		if name != nil {
			if string(rec.Name) == string(name) {
				return rec, nil
			}
		} else if !rec.IsSelf() && !rec.IsParent() && rec.matches([]byte(seg)) {
			return rec, nil
		}
	}

} // end find
