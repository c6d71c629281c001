//go:build !iso9660_bigendian

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
 *  decode_le.go - Camps dual llegits per la meitat little-endian.
 */

package iso9660

import "encoding/binary"

// Els camps dobles guarden primer la còpia LSB i després la MSB.

func read16(data []byte) uint16 { return binary.LittleEndian.Uint16(data[0:2]) }

func read32(data []byte) uint32 { return binary.LittleEndian.Uint32(data[0:4]) }
