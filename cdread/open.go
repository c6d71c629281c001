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
 *  open.go - Obri imatges de CDs.
 */

package cdread

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

/****************/
/* PART PÚBLICA */
/****************/

// Open chooses the source for fileName: a block device, a CUE sheet,
// an MDS descriptor, a raw BIN image or a plain ISO image.
func Open(fileName string) (Source, error) {

	info, err := os.Stat(fileName)
	if err != nil {
		return nil, err
	}

	var src Source
	switch {
	case info.Mode()&os.ModeDevice != 0:
		src, err = OpenDevice(fileName)
	case strings.EqualFold(filepath.Ext(fileName), ".cue"):
		src, err = OpenCue(fileName)
	case strings.EqualFold(filepath.Ext(fileName), ".mds"):
		src, err = OpenMds(fileName)
	case IsRaw(fileName):
		src, err = OpenRaw(fileName)
	default:
		src, err = OpenISO(fileName)
	}
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"file":    fileName,
		"format":  src.Format(),
		"sectors": src.Sectors(),
	}).Debug("image opened")

	return src, nil

} // end Open
