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
 *  mount.go - Munta un volum ISO 9660 amb FUSE (només lectura).
 */

package isofuse

import (
	"context"
	"io"
	"os"
	"path"
	"sync"
	"syscall"
	"time"

	gofuse "github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/adriagipas/isoread/iso9660"
)

const DefaultFsName = "isoread"

type Options struct {
	// Permet l'accés a altres usuaris (requereix user_allow_other).
	AllowOther bool

	// Nom del sistema de fitxers que es mostra en /proc/mounts. Buit
	// vol dir DefaultFsName.
	FsName string

	Logger logrus.FieldLogger
}

// filesys és l'estat compartit per tots els nodes.
type filesys struct {
	vol *iso9660.Volume
	log logrus.FieldLogger

	// Amb BufferShared tots els streams comparteixen la memòria
	// intermèdia i cal serialitzar-los.
	shared sync.Mutex
}

func (self *filesys) lock() func() {
	if self.vol.Buffering() != iso9660.BufferShared {
		return func() {}
	}
	self.shared.Lock()
	return self.shared.Unlock
} // end lock

// Tradueix un error del volum a un errno.
func (self *filesys) errno(op, p string, err error) syscall.Errno {

	switch iso9660.StatusOf(err) {
	case iso9660.StatusOK:
		return 0
	case iso9660.StatusNotFound:
		return syscall.ENOENT
	case iso9660.StatusNotADirectory:
		return syscall.ENOTDIR
	case iso9660.StatusNotAFile:
		return syscall.EISDIR
	case iso9660.StatusInvalid:
		return syscall.EINVAL
	}
	self.log.WithFields(logrus.Fields{
		"op":   op,
		"path": p,
	}).WithError(err).Error("iso9660 access failed")

	return syscall.EIO

} // end errno

// Mount exposes vol read-only at mountpoint. The caller serves until
// Unmount or Wait returns.
func Mount(
	vol *iso9660.Volume,
	mountpoint string,
	opts *Options,
) (*fuse.Server, error) {

	if vol == nil {
		return nil, errors.New("volume is required")
	}
	if mountpoint == "" {
		return nil, errors.New("mountpoint is required")
	}
	if opts == nil {
		opts = &Options{}
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	fsName := opts.FsName
	if fsName == "" {
		fsName = DefaultFsName
	}

	if err := os.MkdirAll(mountpoint, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating mountpoint %s", mountpoint)
	}

	fsys := &filesys{vol: vol, log: log}
	rootRec, err := vol.Lookup("/")
	if err != nil {
		return nil, err
	}
	root := &dirNode{fsys: fsys, path: "/", rec: rootRec}

	// El contingut no canvia mai.
	timeout := time.Hour
	server, err := gofuse.Mount(mountpoint, root, &gofuse.Options{
		EntryTimeout:    &timeout,
		AttrTimeout:     &timeout,
		NegativeTimeout: &timeout,
		MountOptions: fuse.MountOptions{
			FsName:     fsName,
			Name:       "isoread",
			AllowOther: opts.AllowOther,
			Options:    []string{"ro"},
		},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "mounting FUSE filesystem at %s", mountpoint)
	}
	log.WithFields(logrus.Fields{
		"mountpoint": mountpoint,
		"volume":     vol.Primary().VolumeIdentifier,
		"buffering":  vol.Buffering().String(),
	}).Debug("iso9660 volume mounted")

	return server, nil

} // end Mount

func fillAttr(rec *iso9660.Record, out *fuse.Attr) {

	if rec.IsDir() {
		out.Mode = syscall.S_IFDIR | 0o555
	} else {
		out.Mode = syscall.S_IFREG | 0o444
	}
	out.Size = uint64(rec.Size)
	out.Blocks = (out.Size + 511) / 512
	out.Blksize = iso9660.SectorSize
	if t := rec.RecordedAt(); !t.IsZero() {
		out.SetTimes(nil, &t, &t)
	}

} // end fillAttr

/*******/
/* DIR */
/*******/

type dirNode struct {
	gofuse.Inode
	fsys *filesys
	path string
	rec  *iso9660.Record
}

var _ gofuse.InodeEmbedder = (*dirNode)(nil)
var _ gofuse.NodeLookuper = (*dirNode)(nil)
var _ gofuse.NodeReaddirer = (*dirNode)(nil)
var _ gofuse.NodeGetattrer = (*dirNode)(nil)

func (self *dirNode) Getattr(
	ctx context.Context,
	f gofuse.FileHandle,
	out *fuse.AttrOut,
) syscall.Errno {
	fillAttr(self.rec, &out.Attr)
	return 0
} // end Getattr

func (self *dirNode) Lookup(
	ctx context.Context,
	name string,
	out *fuse.EntryOut,
) (*gofuse.Inode, syscall.Errno) {

	p := path.Join(self.path, name)
	unlock := self.fsys.lock()
	rec, err := self.fsys.vol.Lookup(p)
	unlock()
	if err != nil {
		return nil, self.fsys.errno("lookup", p, err)
	}
	fillAttr(rec, &out.Attr)

	var node gofuse.InodeEmbedder
	mode := uint32(syscall.S_IFREG)
	if rec.IsDir() {
		node = &dirNode{fsys: self.fsys, path: p, rec: rec}
		mode = syscall.S_IFDIR
	} else {
		node = &fileNode{fsys: self.fsys, path: p, rec: rec}
	}

	return self.NewInode(ctx, node, gofuse.StableAttr{Mode: mode}), 0

} // end Lookup

func (self *dirNode) Readdir(ctx context.Context) (gofuse.DirStream, syscall.Errno) {

	unlock := self.fsys.lock()
	list, err := self.fsys.vol.ReadDir(self.path)
	unlock()
	if err != nil {
		return nil, self.fsys.errno("readdir", self.path, err)
	}
	entries := make([]fuse.DirEntry, 0, len(list))
	for _, e := range list {
		mode := uint32(syscall.S_IFREG)
		if e.IsDir {
			mode = syscall.S_IFDIR
		}
		entries = append(entries, fuse.DirEntry{Name: e.Name, Mode: mode})
	}

	return gofuse.NewListDirStream(entries), 0

} // end Readdir

/********/
/* FILE */
/********/

type fileNode struct {
	gofuse.Inode
	fsys *filesys
	path string
	rec  *iso9660.Record
}

var _ gofuse.InodeEmbedder = (*fileNode)(nil)
var _ gofuse.NodeGetattrer = (*fileNode)(nil)
var _ gofuse.NodeOpener = (*fileNode)(nil)
var _ gofuse.NodeReader = (*fileNode)(nil)

func (self *fileNode) Getattr(
	ctx context.Context,
	f gofuse.FileHandle,
	out *fuse.AttrOut,
) syscall.Errno {
	fillAttr(self.rec, &out.Attr)
	return 0
} // end Getattr

// Cada descriptor obert té el seu stream.
type fileHandle struct {
	mu     sync.Mutex
	stream *iso9660.Stream
}

func (self *fileNode) Open(
	ctx context.Context,
	flags uint32,
) (gofuse.FileHandle, uint32, syscall.Errno) {

	if flags&(syscall.O_WRONLY|syscall.O_RDWR) != 0 {
		return nil, 0, syscall.EROFS
	}
	unlock := self.fsys.lock()
	s, err := self.fsys.vol.Open(self.path)
	unlock()
	if err != nil {
		return nil, 0, self.fsys.errno("open", self.path, err)
	}

	return &fileHandle{stream: s}, fuse.FOPEN_KEEP_CACHE, 0

} // end Open

func (self *fileNode) Read(
	ctx context.Context,
	f gofuse.FileHandle,
	dest []byte,
	off int64,
) (fuse.ReadResult, syscall.Errno) {

	h, ok := f.(*fileHandle)
	if !ok {
		return nil, syscall.EBADF
	}
	if off >= int64(h.stream.Size()) {
		return fuse.ReadResultData(nil), 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	unlock := self.fsys.lock()
	defer unlock()
	n, err := h.stream.ReadAt(dest, off)
	if err != nil && n == 0 && !errors.Is(err, io.EOF) {
		return nil, self.fsys.errno("read", self.path, err)
	}

	return fuse.ReadResultData(dest[:n]), 0

} // end Read
