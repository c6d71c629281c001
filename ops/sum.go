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
 *  sum.go - Implementa l'operació SUM. Calcula el resum BLAKE3 de
 *           fitxers de la imatge.
 */

package ops

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/zeebo/blake3"

	"github.com/adriagipas/isoread/imgs"
)

// Digest returns the BLAKE3-256 digest of the file at p.
func Digest(img *imgs.Image, p string) ([]byte, error) {

	f, err := img.OpenPath(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	h := blake3.New()
	if _, err := io.Copy(h, f); err != nil {
		return nil, errors.Wrapf(err, "reading '%s'", p)
	}

	return h.Sum(nil), nil

} // end Digest

// Sum prints one "digest  path" line per file in paths.
func Sum(w io.Writer, file string, paths []string, cfg *imgs.Config) error {

	if len(paths) == 0 {
		return errors.New("no file paths provided to sum command")
	}

	img, err := imgs.NewImage(file, cfg)
	if err != nil {
		return err
	}
	defer img.Close()

	for _, p := range paths {
		sum, err := Digest(img, p)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s  %s\n", hex.EncodeToString(sum), p); err != nil {
			return err
		}
	}

	return nil

} // end Sum
