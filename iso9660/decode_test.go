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

package iso9660

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDecodeRecord(t *testing.T) {
	raw := record([]byte("FILE.TXT;1"), 0x01020304, 0x0a0b0c0d, FlagHidden)
	raw[1] = 2

	rec, err := decodeRecord(raw)
	require.NoError(t, err)
	require.Equal(t, uint8(len(raw)), rec.Length)
	require.Equal(t, uint8(2), rec.XattrLength)
	require.Equal(t, uint32(0x01020304), rec.Sector)
	require.Equal(t, uint32(0x0a0b0c0d), rec.Size)
	require.Equal(t, uint16(1), rec.VolumeSeq)
	require.False(t, rec.IsDir())
	require.Equal(t, "FILE.TXT", rec.Ident())
	require.Equal(t, uint32(0x01020304+2), rec.Extent().DataStart())
	require.True(t, rec.RecordedAt().Equal(
		time.Date(2024, 3, 15, 10, 20, 30, 0, time.UTC)))

	// The record owns its name.
	raw[33] = 'X'
	require.Equal(t, "FILE.TXT;1", string(rec.Name))
}

func TestRecordIdent(t *testing.T) {
	tcs := []struct {
		name string
		exp  string
	}{
		{"\x00", "."},
		{"\x01", ".."},
		{"DIR", "DIR"},
		{"A.B;1", "A.B"},
		{"NOEXT.;1", "NOEXT."},
	}
	for _, tc := range tcs {
		rec := Record{Name: []byte(tc.name)}
		require.Equal(t, tc.exp, rec.Ident(), "name %q", tc.name)
	}
}

func TestRecordMatches(t *testing.T) {
	tcs := []struct {
		stored string
		seg    string
		exp    bool
	}{
		{"README.TXT;1", "README.TXT", true},
		{"README.TXT;1", "README.TXT;1", true},
		{"README.TXT", "README.TXT", true},
		{"README.TXT;1", "README", false},
		{"README.TXT;1", "README.TXT;12", false},
		{"DIR", "DI", false},
		{"DIR", "DIRS", false},
		{"DIR", "dir", false},
	}
	for _, tc := range tcs {
		rec := Record{Name: []byte(tc.stored)}
		require.Equal(t, tc.exp, rec.matches([]byte(tc.seg)),
			"%q against %q", tc.seg, tc.stored)
	}
}

func TestDecodeTimes(t *testing.T) {
	require.True(t, decodeRecordTime(make([]byte, 7)).IsZero())
	require.True(t, decodeRecordTime([]byte{100, 13, 1, 0, 0, 0, 0}).IsZero())

	// GMT-5
	got := decodeRecordTime([]byte{99, 12, 31, 23, 0, 0, 0xec})
	require.True(t, got.Equal(time.Date(2000, 1, 1, 4, 0, 0, 0, time.UTC)))

	vol := make([]byte, 17)
	require.True(t, decodeVolumeTime(vol).IsZero())
	copy(vol, "0000000000000000")
	require.True(t, decodeVolumeTime(vol).IsZero())
	copy(vol, "19991231235959xx")
	require.True(t, decodeVolumeTime(vol).IsZero())
	copy(vol, "2001020304050650")
	require.True(t, decodeVolumeTime(vol).Equal(
		time.Date(2001, 2, 3, 4, 5, 6, 500*int(time.Millisecond), time.UTC)))
}

func TestDecodeDualEndian(t *testing.T) {
	b := make([]byte, 8)
	putBoth32(b, 0xdeadbeef)
	require.Equal(t, uint32(0xdeadbeef), read32(b))
	putBoth16(b, 0xcafe)
	require.Equal(t, uint16(0xcafe), read16(b))
}
