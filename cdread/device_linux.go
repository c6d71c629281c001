//go:build linux

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
 *  device_linux.go - Lectura directa de dispositius de CD-ROM.
 */

package cdread

import (
	"io"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

type deviceSource struct {
	name    string
	fd      int
	sectors int64
}

func (self *deviceSource) Format() string { return "device" }

func (self *deviceSource) Sectors() int64 { return self.sectors }

func (self *deviceSource) Close() error { return unix.Close(self.fd) }

func (self *deviceSource) ReadSector(disk uint8, sector uint32, buf []byte) error {

	if len(buf) < SectorSize {
		return errors.Errorf("buffer too small (%d bytes)", len(buf))
	}
	if int64(sector) >= self.sectors {
		return errors.Errorf("sector %d out of range (%d sectors)",
			sector, self.sectors)
	}

	// Pread pot tornar menys bytes.
	off := int64(sector) * SectorSize
	for done := 0; done < SectorSize; {
		n, err := unix.Pread(self.fd, buf[done:SectorSize], off+int64(done))
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return errors.Wrapf(err, "failed to read sector %d from '%s'",
				sector, self.name)
		}
		if n == 0 {
			return errors.Errorf("short read of sector %d from '%s'",
				sector, self.name)
		}
		done += n
	}

	return nil

} // end ReadSector

// OpenDevice opens a CD-ROM block device such as /dev/sr0.
func OpenDevice(name string) (Source, error) {

	fd, err := unix.Open(name, unix.O_RDONLY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open device '%s'", name)
	}

	// La grandària d'un dispositiu de blocs s'obté anant al final.
	size, err := unix.Seek(fd, 0, io.SeekEnd)
	if err != nil {
		unix.Close(fd)
		return nil, errors.Wrapf(err, "failed to get size of '%s'", name)
	}

	return &deviceSource{
		name:    name,
		fd:      fd,
		sectors: size / SectorSize,
	}, nil

} // end OpenDevice
