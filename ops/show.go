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
 * show.go - Implementa l'operació SHOW. Mostra per pantala la
 *           informació de la imatge.
 */

package ops

import (
	"fmt"
	"io"

	"github.com/adriagipas/isoread/cdread"
	"github.com/adriagipas/isoread/imgs"
)

/**********************/
/* FUNCIONS PÚBLIQUES */
/**********************/

// Show prints the volume information of every image in files.
func Show(w io.Writer, files []string, cfg *imgs.Config) error {

	// Executa operació
	printName := len(files) > 1
	for i, file := range files {
		fmt.Fprintln(w, "")
		if printName {
			fmt.Fprintf(w, "  %d) \"%s\"\n", i, file)
			fmt.Fprintln(w, "")
		}
		if err := showImage(w, file, cfg); err != nil {
			return err
		}
		fmt.Fprintln(w, "")
	}

	return nil

} // end Show

func showImage(w io.Writer, file string, cfg *imgs.Config) error {

	img, err := imgs.NewImage(file, cfg)
	if err != nil {
		return err
	}
	defer img.Close()

	// Font
	src := img.Source()
	fmt.Fprintf(w, "    %-31s%s\n", "Image Format:", src.Format())
	fmt.Fprintf(w, "    %-31s%d (%s)\n", "Sectors:",
		src.Sectors(), cdread.GetPosition(src.Sectors()))
	fmt.Fprintf(w, "    %-31s%s\n", "Filesystem:", img.Filesystem)
	fmt.Fprintln(w, "")

	// Volum
	return img.PrintInfo(w, "    ")

} // end showImage
