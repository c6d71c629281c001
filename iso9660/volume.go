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
 *  volume.go - Muntatge d'un volum ISO9660.
 */

package iso9660

import (
	"bytes"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

/***************/
/* SECTOR READ */
/***************/

// SectorReader fetches one 2048-byte sector of a disk. It must fill
// buf completely or return an error.
type SectorReader interface {
	ReadSector(disk uint8, sector uint32, buf []byte) error
}

// SectorReaderFunc adapts a plain function to SectorReader.
type SectorReaderFunc func(disk uint8, sector uint32, buf []byte) error

func (self SectorReaderFunc) ReadSector(
	disk uint8,
	sector uint32,
	buf []byte,
) error {
	return self(disk, sector, buf)
} // end ReadSector

/***********/
/* OPTIONS */
/***********/

type Options struct {
	Buffering Buffering

	// Maximum number of volume descriptors read looking for the
	// primary one. Zero means DefaultScanLimit.
	ScanLimit int

	Logger logrus.FieldLogger
}

/**********/
/* VOLUME */
/**********/

// Volume is a mounted ISO9660 filesystem.
type Volume struct {
	src       SectorReader
	disk      uint8
	pvd       *PrimaryVolume
	buffering Buffering
	shared    *sectorCache
	ids       atomic.Uint64
	log       logrus.FieldLogger
}

// Entry is a directory entry as returned by ReadDir.
type Entry struct {
	Name     string
	IsDir    bool
	Size     uint32
	Recorded time.Time
}

// Probe reports whether sector 16 of the disk holds a primary volume
// descriptor.
func Probe(src SectorReader, disk uint8) bool {

	buf := make([]byte, SectorSize)
	if err := src.ReadSector(disk, FirstDescriptorSector, buf); err != nil {
		return false
	}

	return buf[0] == TypePrimary && bytes.Equal(buf[1:6], magic)

} // end Probe

// Mount scans the volume descriptors and returns the mounted volume.
// opts can be nil.
func Mount(src SectorReader, disk uint8, opts *Options) (*Volume, error) {

	if opts == nil {
		opts = &Options{}
	}
	limit := opts.ScanLimit
	if limit <= 0 {
		limit = DefaultScanLimit
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	// Llig descriptors
	buf := make([]byte, SectorSize)
	var pvd *PrimaryVolume
	for i := 0; pvd == nil; i++ {
		if i == limit {
			return nil, errors.Wrapf(ErrScanLimit, "%d descriptors read", limit)
		}
		sec := uint32(FirstDescriptorSector + i)
		if err := src.ReadSector(disk, sec, buf); err != nil {
			return nil, errors.Wrap(
				&SectorError{Disk: disk, Sector: sec, Err: err},
				"failed to read volume descriptor")
		}
		if !bytes.Equal(buf[1:6], magic) {
			return nil, errors.Wrapf(ErrBadFormat,
				"wrong magic in volume descriptor (sector %d): '%s'",
				sec, buf[1:6])
		}
		log.WithFields(logrus.Fields{
			"sector": sec,
			"type":   buf[0],
		}).Debug("volume descriptor")
		switch buf[0] {
		case TypePrimary:
			var err error
			if pvd, err = decodePrimary(buf); err != nil {
				return nil, errors.Wrapf(err,
					"primary volume descriptor (sector %d)", sec)
			}
		case TypeTerminator:
			return nil, errors.Wrapf(ErrNoPrimary,
				"terminator found at sector %d", sec)
		}
	}
	if pvd.LogicalBlockSize != 0 && pvd.LogicalBlockSize != SectorSize {
		log.Warnf("logical block size is %d, using %d",
			pvd.LogicalBlockSize, SectorSize)
	}

	ret := Volume{
		src:       src,
		disk:      disk,
		pvd:       pvd,
		buffering: opts.Buffering,
		log:       log,
	}
	if ret.buffering == BufferShared {
		ret.shared = &sectorCache{}
	}

	return &ret, nil

} // end Mount

func (self *Volume) newStream(first, length uint32) *Stream {

	cache := self.shared
	if cache == nil {
		cache = &sectorCache{}
	}

	return &Stream{
		vol:    self,
		id:     self.ids.Add(1),
		first:  first,
		length: length,
		cache:  cache,
	}

} // end newStream

func (self *Volume) Buffering() Buffering { return self.buffering }

func (self *Volume) Disk() uint8 { return self.disk }

// Primary returns the primary volume descriptor read at mount time.
func (self *Volume) Primary() *PrimaryVolume { return self.pvd }

// Root returns a cursor positioned at the start of the root directory.
func (self *Volume) Root() *Dir {
	ext := self.pvd.root.Extent()
	return &Dir{self.newStream(ext.DataStart(), ext.Length)}
} // end Root

func (self *Volume) Open(path string) (*Stream, error) {
	return self.Root().Open(path)
} // end Open

func (self *Volume) OpenDir(path string) (*Dir, error) {
	return self.Root().OpenDir(path)
} // end OpenDir

// Lookup returns the record of path. The root path returns the root
// record of the primary volume descriptor.
func (self *Volume) Lookup(path string) (*Record, error) {

	if len(splitPath(path)) == 0 {
		rec := *self.pvd.root
		rec.Name = append([]byte(nil), rec.Name...)
		return &rec, nil
	}

	return self.Root().Lookup(path)

} // end Lookup

// ReadDir lists the directory at path, without the self and parent
// records.
func (self *Volume) ReadDir(path string) ([]Entry, error) {

	dir, err := self.OpenDir(path)
	if err != nil {
		return nil, err
	}
	ret := make([]Entry, 0, 16)
	for {
		rec, err := dir.Next()
		if err != nil {
			return nil, err
		}
		if rec == nil {
			break
		}
		if rec.IsSelf() || rec.IsParent() {
			continue
		}
		ret = append(ret, Entry{
			Name:     rec.Ident(),
			IsDir:    rec.IsDir(),
			Size:     rec.Size,
			Recorded: rec.RecordedAt(),
		})
	}

	return ret, nil

} // end ReadDir
