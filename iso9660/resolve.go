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
 *  resolve.go - Resolució de camins.
 */

package iso9660

import (
	"strings"

	"github.com/pkg/errors"
)

type want int

const (
	wantAny want = iota
	wantFile
	wantDir
)

func splitPath(path string) []string {

	ret := make([]string, 0, 4)
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			ret = append(ret, seg)
		}
	}

	return ret

} // end splitPath

// Resol path a partir de start sense moure'l. Torna el flux de
// l'últim element i el seu registre (nil si path no té segments).
func resolve(start *Dir, path string, w want) (*Stream, *Record, error) {

	vol := start.stream.vol
	segs := splitPath(path)
	if len(segs) == 0 {
		if w == wantFile {
			return nil, nil, errors.Wrapf(ErrNotAFile, "'%s'", path)
		}
		return vol.newStream(start.stream.first, start.stream.length), nil, nil
	}

	dir := &Dir{vol.newStream(start.stream.first, start.stream.length)}
	for i, seg := range segs {
		rec, err := dir.find(seg)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "while resolving '%s'", path)
		}
		ext := rec.Extent()
		stream := vol.newStream(ext.DataStart(), ext.Length)

		// Intermedis
		if i < len(segs)-1 {
			if !rec.IsDir() {
				return nil, nil, errors.Wrapf(ErrNotADirectory,
					"'%s' in '%s'", seg, path)
			}
			dir = &Dir{stream}
			continue
		}

		// Últim
		switch {
		case w == wantDir && !rec.IsDir():
			return nil, nil, errors.Wrapf(ErrNotADirectory, "'%s'", path)
		case w == wantFile && rec.IsDir():
			return nil, nil, errors.Wrapf(ErrNotAFile, "'%s'", path)
		}
		return stream, rec, nil
	}

	return nil, nil, nil // No s'arriba

} // end resolve

// Open resolves path, relative to this directory, to a file.
func (self *Dir) Open(path string) (*Stream, error) {

	s, _, err := resolve(self, path, wantFile)
	if err != nil {
		return nil, err
	}

	return s, nil

} // end Open

// OpenDir resolves path, relative to this directory, to a directory.
// An empty path returns a fresh cursor over this directory.
func (self *Dir) OpenDir(path string) (*Dir, error) {

	s, _, err := resolve(self, path, wantDir)
	if err != nil {
		return nil, err
	}

	return &Dir{s}, nil

} // end OpenDir

// Lookup returns the record path names. An empty path returns the
// self record of this directory.
func (self *Dir) Lookup(path string) (*Record, error) {

	if len(splitPath(path)) == 0 {
		path = "."
	}
	_, rec, err := resolve(self, path, wantAny)
	if err != nil {
		return nil, err
	}

	return rec, nil

} // end Lookup
