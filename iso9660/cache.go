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
 *  cache.go - Memòria cau d'un sector.
 */

package iso9660

import (
	"strings"

	"github.com/pkg/errors"
)

/*************/
/* BUFFERING */
/*************/

// Buffering selects how sector buffers are assigned to streams.
type Buffering int

const (
	// Every Stream owns its own sector buffer.
	BufferPerStream Buffering = iota

	// One buffer per Volume, tagged with the last stream served. Not
	// safe for concurrent use.
	BufferShared
)

func (self Buffering) String() string {

	switch self {
	case BufferPerStream:
		return "per-stream"
	case BufferShared:
		return "shared"
	default:
		return "unknown"
	}

} // end String

// ParseBuffering accepts the names returned by Buffering.String.
func ParseBuffering(name string) (Buffering, error) {

	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "per-stream", "perstream", "stream":
		return BufferPerStream, nil
	case "shared":
		return BufferShared, nil
	default:
		return BufferPerStream, errors.Errorf("unknown buffering mode '%s'", name)
	}

} // end ParseBuffering

/****************/
/* SECTOR CACHE */
/****************/

// El contingut només és vàlid per a (owner, sector) si valid és cert.
type sectorCache struct {
	data   [SectorSize]byte
	owner  uint64
	sector uint32
	valid  bool
}

func (self *sectorCache) holds(owner uint64, sector uint32) bool {
	return self.valid && self.owner == owner && self.sector == sector
} // end holds

func (self *sectorCache) fill(
	src SectorReader,
	disk uint8,
	owner uint64,
	sector uint32,
) error {

	// Llig sector
	if err := src.ReadSector(disk, sector, self.data[:]); err != nil {
		self.valid = false
		return &SectorError{Disk: disk, Sector: sector, Err: err}
	}
	self.owner = owner
	self.sector = sector
	self.valid = true

	return nil

} // end fill
