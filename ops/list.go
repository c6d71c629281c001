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
 *  list.go - Implementa l'operació LIST. Mostra per pantalla el
 *            contingut d'un directori o la informació d'un fitxer.
 *
 */

package ops

import (
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/adriagipas/isoread/imgs"
	"github.com/adriagipas/isoread/iso9660"
)

const dateFormat = "02/01/2006  15:04:05"

func listEntry(w io.Writer, e *imgs.DirEntry) error {

	// Flags
	flags := []byte("--")
	if e.IsDir {
		flags[0] = 'd'
	}
	if e.Hidden {
		flags[1] = 'h'
	}

	// Data
	date := "--/--/----  --:--:--"
	if !e.ModTime.IsZero() {
		date = e.ModTime.Format(dateFormat)
	}

	_, err := fmt.Fprintf(w, "%s %10s  %s  %s\n",
		flags, humanize.IBytes(e.Size), date, e.Name)

	return err

} // end listEntry

// Llista un fitxer: busca la seua entrada en el directori pare.
func listFile(w io.Writer, img *imgs.Image, p string, upper bool) error {

	clean := path.Clean("/" + p)
	name := path.Base(clean)
	if i := strings.IndexByte(name, ';'); i != -1 {
		name = name[:i]
	}
	if upper {
		name = strings.ToUpper(name)
	}
	entries, err := img.ListDirectory(path.Dir(clean))
	if err != nil {
		return err
	}
	for i := range entries {
		if entries[i].Name == name {
			return listEntry(w, &entries[i])
		}
	}

	return iso9660.ErrNotFound

} // end listFile

/************/
/* OPERACIÓ */
/************/

// List prints the contents of every directory in paths, or the entry
// of a file. No paths means the root directory.
func List(w io.Writer, file string, paths []string, cfg *imgs.Config) error {

	if cfg == nil {
		cfg = &imgs.Config{}
	}
	if len(paths) == 0 {
		paths = []string{"/"}
	}

	// Crea imatge
	img, err := imgs.NewImage(file, cfg)
	if err != nil {
		return err
	}
	defer img.Close()

	// Processa paths
	for i, p := range paths {
		entries, err := img.ListDirectory(p)
		switch imgs.StatusOf(err) {
		case iso9660.StatusOK:
		case iso9660.StatusNotADirectory:
			if err := listFile(w, img, p, cfg.UppercasePaths); err != nil {
				return err
			}
			continue
		default:
			return err
		}
		if len(paths) > 1 {
			if i > 0 {
				fmt.Fprintln(w, "")
			}
			fmt.Fprintf(w, "%s:\n", p)
		}
		for j := range entries {
			if err := listEntry(w, &entries[j]); err != nil {
				return err
			}
		}
	}

	return nil

} // end List
