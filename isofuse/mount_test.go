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

package isofuse

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sort"
	"syscall"
	"testing"

	diskfs "github.com/diskfs/go-diskfs/filesystem/iso9660"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/adriagipas/isoread/iso9660"
)

var testFiles = map[string][]byte{
	"/readme.txt":    []byte("hello fuse\n"),
	"/docs/big.bin":  bytes.Repeat([]byte("0123456789abcdef"), 1000),
	"/docs/note.txt": []byte("note"),
}

func fuseAvailable(t *testing.T) {
	t.Helper()
	if _, err := os.Stat("/dev/fuse"); err != nil {
		t.Skip("skipping: /dev/fuse not available")
	}
}

func buildVolume(t *testing.T, buffering iso9660.Buffering) *iso9660.Volume {
	tmp := t.TempDir()
	ws := filepath.Join(tmp, "ws")
	require.NoError(t, os.Mkdir(ws, 0o755))
	f, err := os.Create(filepath.Join(tmp, "test.iso"))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })

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
	require.NoError(t, fs.Finalize(diskfs.FinalizeOptions{VolumeIdentifier: "FUSE"}))

	src := iso9660.SectorReaderFunc(func(disk uint8, sector uint32, buf []byte) error {
		clear(buf)
		_, err := f.ReadAt(buf, int64(sector)*iso9660.SectorSize)
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	})
	vol, err := iso9660.Mount(src, 0, &iso9660.Options{Buffering: buffering})
	require.NoError(t, err)

	return vol
}

func TestErrno(t *testing.T) {
	logger, hook := test.NewNullLogger()
	fsys := &filesys{log: logger}

	tests := []struct {
		err  error
		want syscall.Errno
	}{
		{nil, 0},
		{iso9660.ErrNotFound, syscall.ENOENT},
		{errors.Wrap(iso9660.ErrNotADirectory, "x"), syscall.ENOTDIR},
		{iso9660.ErrNotAFile, syscall.EISDIR},
		{iso9660.ErrInvalidSeek, syscall.EINVAL},
		{iso9660.ErrBadFormat, syscall.EIO},
		{&iso9660.SectorError{Sector: 9, Err: errors.New("boom")}, syscall.EIO},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, fsys.errno("read", "/X", tt.err), "%v", tt.err)
	}
	// Només els errors inesperats es registren.
	require.Len(t, hook.AllEntries(), 2)
	require.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	require.Equal(t, "/X", hook.LastEntry().Data["path"])
}

func TestMountArguments(t *testing.T) {
	_, err := Mount(nil, t.TempDir(), nil)
	require.Error(t, err)
	_, err = Mount(buildVolume(t, iso9660.BufferPerStream), "", nil)
	require.Error(t, err)
}

func TestMountReadOnly(t *testing.T) {
	fuseAvailable(t)

	for _, b := range []iso9660.Buffering{iso9660.BufferPerStream, iso9660.BufferShared} {
		t.Run(b.String(), func(t *testing.T) {
			mnt := filepath.Join(t.TempDir(), "mnt")
			server, err := Mount(buildVolume(t, b), mnt, &Options{FsName: "test"})
			require.NoError(t, err)
			t.Cleanup(func() { require.NoError(t, server.Unmount()) })

			entries, err := os.ReadDir(mnt)
			require.NoError(t, err)
			var names []string
			for _, e := range entries {
				names = append(names, e.Name())
			}
			sort.Strings(names)
			require.Equal(t, []string{"DOCS", "README.TXT"}, names)

			got, err := os.ReadFile(filepath.Join(mnt, "README.TXT"))
			require.NoError(t, err)
			require.Equal(t, testFiles["/readme.txt"], got)

			got, err = os.ReadFile(filepath.Join(mnt, "DOCS", "BIG.BIN"))
			require.NoError(t, err)
			require.Equal(t, testFiles["/docs/big.bin"], got)

			st, err := os.Stat(filepath.Join(mnt, "DOCS", "NOTE.TXT"))
			require.NoError(t, err)
			require.Equal(t, int64(4), st.Size())
			require.False(t, st.IsDir())

			_, err = os.Stat(filepath.Join(mnt, "MISSING"))
			require.True(t, os.IsNotExist(err))

			_, err = os.OpenFile(filepath.Join(mnt, "README.TXT"), os.O_RDWR, 0)
			require.Error(t, err)
		})
	}
}
