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

package ops

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	diskfs "github.com/diskfs/go-diskfs/filesystem/iso9660"
	"github.com/stretchr/testify/require"
	"github.com/zeebo/blake3"

	"github.com/adriagipas/isoread/imgs"
	"github.com/adriagipas/isoread/iso9660"
)

var testFiles = map[string][]byte{
	"/readme.txt":     []byte("read me\n"),
	"/docs/a.txt":     []byte("first\n"),
	"/docs/b.txt":     []byte("second\n"),
	"/docs/large.bin": bytes.Repeat([]byte{1, 2, 3, 4, 5, 6, 7}, 1500),
}

var upper = &imgs.Config{UppercasePaths: true}

func buildImage(t *testing.T) string {
	tmp := t.TempDir()
	ws := filepath.Join(tmp, "ws")
	require.NoError(t, os.Mkdir(ws, 0o755))
	name := filepath.Join(tmp, "ops.iso")
	f, err := os.Create(name)
	require.NoError(t, err)
	defer f.Close()

	fs, err := diskfs.Create(f, 0, 0, iso9660.SectorSize, ws)
	require.NoError(t, err)
	require.NoError(t, fs.Mkdir("/docs"))
	for p, data := range testFiles {
		w, err := fs.OpenFile(p, os.O_CREATE|os.O_RDWR)
		require.NoError(t, err)
		_, err = w.Write(data)
		require.NoError(t, err)
		require.NoError(t, w.Close())
	}
	require.NoError(t, fs.Finalize(diskfs.FinalizeOptions{VolumeIdentifier: "OPS"}))

	return name
}

// Les entrades poden vindre en qualsevol ordre.
func requireLine(t *testing.T, lines []string, re string) {
	t.Helper()
	rx := regexp.MustCompile(re)
	for _, l := range lines {
		if rx.MatchString(l) {
			return
		}
	}
	t.Fatalf("no line matches %q in %q", re, lines)
}

const dateRE = `(\d\d/\d\d/\d{4}  \d\d:\d\d:\d\d|--/--/----  --:--:--)`

func TestList(t *testing.T) {
	name := buildImage(t)

	tests := []struct {
		name  string
		paths []string
		lines []string
	}{
		{
			name: "root",
			lines: []string{
				`^d- +.+  ` + dateRE + `  DOCS$`,
				`^-- +8 B  ` + dateRE + `  README.TXT$`,
			},
		},
		{
			name:  "directory",
			paths: []string{"/docs"},
			lines: []string{
				`^-- +6 B  ` + dateRE + `  A.TXT$`,
				`^-- +7 B  ` + dateRE + `  B.TXT$`,
				`^-- +10 KiB  ` + dateRE + `  LARGE.BIN$`,
			},
		},
		{
			name:  "file",
			paths: []string{"/docs/b.txt"},
			lines: []string{
				`^-- +7 B  ` + dateRE + `  B.TXT$`,
			},
		},
		{
			name:  "several",
			paths: []string{"/", "/readme.txt;1"},
			lines: []string{
				`^/:$`,
				`^d- +.+  ` + dateRE + `  DOCS$`,
				`^-- +8 B  ` + dateRE + `  README.TXT$`,
				`^-- +8 B  ` + dateRE + `  README.TXT$`,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, List(&out, name, tt.paths, upper))
			lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
			require.Len(t, lines, len(tt.lines), out.String())
			for _, re := range tt.lines {
				requireLine(t, lines, re)
			}
		})
	}
}

func TestListErrors(t *testing.T) {
	name := buildImage(t)
	var out bytes.Buffer

	err := List(&out, name, []string{"/missing"}, upper)
	require.Equal(t, iso9660.StatusNotFound, imgs.StatusOf(err))
	err = List(&out, name, []string{"/docs/none.txt"}, upper)
	require.Equal(t, iso9660.StatusNotFound, imgs.StatusOf(err))
	err = List(&out, name, []string{"/readme.txt/x"}, upper)
	require.Equal(t, iso9660.StatusNotADirectory, imgs.StatusOf(err))
	require.Error(t, List(&out, filepath.Join(t.TempDir(), "none.iso"), nil, nil))
}

func TestCat(t *testing.T) {
	name := buildImage(t)

	var out bytes.Buffer
	require.NoError(t, Cat(&out, name,
		[]string{"/docs/a.txt", "/docs/b.txt", "/docs/large.bin"}, upper))
	var exp []byte
	exp = append(exp, testFiles["/docs/a.txt"]...)
	exp = append(exp, testFiles["/docs/b.txt"]...)
	exp = append(exp, testFiles["/docs/large.bin"]...)
	require.Equal(t, exp, out.Bytes())

	require.Error(t, Cat(&out, name, nil, upper))
	err := Cat(&out, name, []string{"/docs"}, upper)
	require.Equal(t, iso9660.StatusNotAFile, imgs.StatusOf(err))
	err = Cat(&out, name, []string{"/docs/a.txt"}, nil)
	require.Equal(t, iso9660.StatusNotFound, imgs.StatusOf(err))
}

func TestSum(t *testing.T) {
	name := buildImage(t)

	var out bytes.Buffer
	paths := []string{"/readme.txt", "/docs/large.bin"}
	require.NoError(t, Sum(&out, name, paths, upper))
	var exp strings.Builder
	for _, p := range paths {
		sum := blake3.Sum256(testFiles[p])
		exp.WriteString(hex.EncodeToString(sum[:]) + "  " + p + "\n")
	}
	require.Equal(t, exp.String(), out.String())

	require.Error(t, Sum(&out, name, nil, upper))
	err := Sum(&out, name, []string{"/nothing"}, upper)
	require.Equal(t, iso9660.StatusNotFound, imgs.StatusOf(err))
}

func TestShow(t *testing.T) {
	name := buildImage(t)

	var out bytes.Buffer
	require.NoError(t, Show(&out, []string{name}, nil))
	text := out.String()
	require.Contains(t, text, "    Image Format:                  ISO\n")
	require.Contains(t, text, "    Filesystem:                    iso9660\n")
	require.Contains(t, text, "    Volume Identifier:             OPS\n")
	require.Contains(t, text, "    Logical Block Size:            2048\n")
	require.NotContains(t, text, "  0) ")

	out.Reset()
	require.NoError(t, Show(&out, []string{name, name}, nil))
	require.Contains(t, out.String(), "  0) \""+name+"\"\n")
	require.Contains(t, out.String(), "  1) \""+name+"\"\n")

	require.Error(t, Show(&out, []string{filepath.Join(t.TempDir(), "x.iso")}, nil))
}
