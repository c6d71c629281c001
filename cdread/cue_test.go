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

package cdread

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProcessTimeCue(t *testing.T) {
	tcs := []struct {
		in     string
		exp    int64
		expErr bool
	}{
		{in: "00:00:00", exp: 0},
		{in: "00:02:00", exp: 150},
		{in: "01:02:03", exp: 60*75 + 2*75 + 3},
		{in: "1:02:03", expErr: true},
		{in: "00:60:00", expErr: true},
		{in: "00:00:75", expErr: true},
		{in: "00-00-00", expErr: true},
		{in: "aa:00:00", expErr: true},
	}
	for _, tc := range tcs {
		got, err := processTimeCue(tc.in)
		if tc.expErr {
			require.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.exp, got, tc.in)
	}
}

func TestCueTokenizer(t *testing.T) {
	tok := newCueTokenizer(`FILE "my disc.bin"   BINARY`)
	var got []string
	for tok.Scan() {
		got = append(got, tok.Text())
	}
	require.NoError(t, tok.Err())
	require.Equal(t, []string{"FILE", "my disc.bin", "BINARY"}, got)

	tok = newCueTokenizer(`FILE "unterminated BINARY`)
	for tok.Scan() {
	}
	require.Error(t, tok.Err())
}

func TestOpenCue(t *testing.T) {
	iso := buildISO(t, testFiles)
	dir := t.TempDir()

	audio := make([]byte, 30*RawSectorSize)
	writeFile(t, dir, "track1.bin", audio)
	writeFile(t, dir, "my data.bin", toRaw(iso, 2))
	writeFile(t, dir, "mixed.bin", append(append([]byte{}, audio...), toRaw(iso, 1)...))
	writeFile(t, dir, "plain.iso", iso)

	tcs := []struct {
		name      string
		sheet     string
		expFormat string
	}{
		{
			name: "single data track",
			sheet: `FILE "my data.bin" BINARY
  TRACK 01 MODE2/2352
    INDEX 01 00:00:00
`,
			expFormat: "CUE/BIN MODE2/2352",
		},
		{
			name: "audio file first",
			sheet: `REM generated
FILE "track1.bin" BINARY
  TRACK 01 AUDIO
    INDEX 01 00:00:00
FILE "my data.bin" BINARY
  TRACK 02 MODE2/2352
    PREGAP 00:02:00
    INDEX 01 00:00:00
`,
			expFormat: "CUE/BIN MODE2/2352",
		},
		{
			name: "single file with offset",
			sheet: `FILE "mixed.bin" BINARY
  TRACK 01 AUDIO
    INDEX 01 00:00:00
  TRACK 02 MODE1/2352
    INDEX 00 00:00:20
    INDEX 01 00:00:30
`,
			expFormat: "CUE/BIN MODE1/2352",
		},
		{
			name: "cooked track",
			sheet: `FILE "plain.iso" BINARY
  TRACK 01 MODE1/2048
    INDEX 01 00:00:00
`,
			expFormat: "CUE/ISO",
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			p := writeFile(t, dir, "disc.cue", []byte(tc.sheet))
			src, err := Open(p)
			require.NoError(t, err)
			defer src.Close()
			require.Equal(t, tc.expFormat, src.Format())
			checkSource(t, src, iso)
		})
	}
}

func TestOpenCueErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "audio.bin", make([]byte, 30*RawSectorSize))

	tcs := []struct {
		name  string
		sheet string
	}{
		{"unknown command", "BOGUS 1\n"},
		{"track before file", "TRACK 01 MODE1/2352\n"},
		{"index before track", "FILE \"audio.bin\" BINARY\nINDEX 01 00:00:00\n"},
		{"bad track number", "FILE \"audio.bin\" BINARY\nTRACK 02 AUDIO\n"},
		{"bad mode", "FILE \"audio.bin\" BINARY\nTRACK 01 MODE3/2352\n"},
		{"not binary", "FILE \"audio.bin\" WAVE\n"},
		{"audio only", "FILE \"audio.bin\" BINARY\nTRACK 01 AUDIO\nINDEX 01 00:00:00\n"},
		{"no index", "FILE \"audio.bin\" BINARY\nTRACK 01 MODE1/2352\n"},
		{"missing file", "FILE \"nope.bin\" BINARY\nTRACK 01 MODE1/2352\nINDEX 01 00:00:00\n"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			p := writeFile(t, dir, "bad.cue", []byte(tc.sheet))
			_, err := OpenCue(p)
			require.Error(t, err)
		})
	}
}
