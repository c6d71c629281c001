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
 *  cat.go - Implementa l'operació CAT. Concatena fitxers i els
 *           imprimeix per pantalla.
 *
 */

package ops

import (
	"io"

	"github.com/pkg/errors"

	"github.com/adriagipas/isoread/imgs"
)

/************/
/* OPERACIÓ */
/************/

const catBufSize = 16 * 2048

// Cat copies the files in paths, in order, to w.
func Cat(w io.Writer, file string, paths []string, cfg *imgs.Config) error {

	// Comprova que hi han PATHs
	if len(paths) == 0 {
		return errors.New("no file paths provided to cat command")
	}

	// Crea imatge
	img, err := imgs.NewImage(file, cfg)
	if err != nil {
		return err
	}
	defer img.Close()

	// Buffer
	buf := make([]byte, catBufSize)

	// Processa paths
	for _, p := range paths {
		f, err := img.OpenPath(p)
		if err != nil {
			return err
		}
		_, err = io.CopyBuffer(w, f, buf)
		f.Close()
		if err != nil {
			return errors.Wrapf(err, "reading '%s'", p)
		}
	}

	return nil

} // end Cat
