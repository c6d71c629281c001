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
 *  types.go - Tipus bàsics de les fonts de sectors.
 */

package cdread

import (
	"io"

	"github.com/adriagipas/isoread/iso9660"
)

const (
	SectorSize    = iso9660.SectorSize
	RawSectorSize = 0x930
)

// Tipus de track de dades.
const (
	TrackTypeISO = iota // Sectors de 2048 bytes
	TrackTypeMode1Raw
	TrackTypeMode2Raw // CD-XA Form1
)

// Source reads the 2048-byte user data sectors of one disc image or
// drive.
type Source interface {
	iso9660.SectorReader
	io.Closer

	// Nombre de sectors de dades.
	Sectors() int64

	// Nom del format.
	Format() string
}

func trackTypeName(t int) string {

	switch t {
	case TrackTypeISO:
		return "MODE1/2048"
	case TrackTypeMode1Raw:
		return "MODE1/2352"
	case TrackTypeMode2Raw:
		return "MODE2/2352"
	default:
		return "unknown"
	}

} // end trackTypeName
