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
 *  detect.go - Detecció del sistema de fitxers d'un disc.
 */

package imgs

import (
	"github.com/pkg/errors"

	"github.com/adriagipas/isoread/cdread"
	"github.com/adriagipas/isoread/iso9660"
)

// Detect returns the first registered filesystem, in name order, whose
// probe accepts the disk.
func Detect(src iso9660.SectorReader, disk uint8) (Filesystem, error) {

	for _, name := range Filesystems() {
		fs, _ := Lookup(name)
		if fs.Probe(src, disk) {
			return fs, nil
		}
	}

	return Filesystem{}, errors.Errorf(
		"unable to detect the filesystem of disk %d", disk)

} // end Detect

// DetectFile opens fileName and returns the name of its filesystem.
func DetectFile(fileName string) (string, error) {

	src, err := cdread.Open(fileName)
	if err != nil {
		return "", err
	}
	defer src.Close()
	fs, err := Detect(src, 0)
	if err != nil {
		return "", errors.Wrapf(err, "'%s'", fileName)
	}

	return fs.Name, nil

} // end DetectFile
