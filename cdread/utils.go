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
 *  utils.go - Utilitats.
 */

package cdread

import "fmt"

// Position is an absolute disc address in minutes, seconds and
// frames, BCD encoded.
type Position struct {
	Minutes uint8 // BCD, 74, (00h..73h)
	Seconds uint8 // BCD, 60, (00h..59h)
	Sector  uint8 // BCD, 75, (00h..74h)
}

func (self Position) String() string {
	return fmt.Sprintf("%02x:%02x:%02x", self.Minutes, self.Seconds, self.Sector)
} // end String

func BCD(num int) uint8 {
	return uint8((num/10)*0x10 + num%10)
} // end BCD

// Tradueix un índex de sector en una estructura de tipus Position.
func GetPosition(secInd int64) Position {

	// Obté minuts, segons i sectors
	mm := secInd / (60 * 75)
	tmp := secInd % (60 * 75)
	ss := tmp / 75
	sec := tmp % 75

	// Passa a BCD
	return Position{
		Minutes: BCD(int(mm)),
		Seconds: BCD(int(ss)),
		Sector:  BCD(int(sec)),
	}

} // end GetPosition
