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
 *  errors.go - Errors del controlador i la seua classificació.
 */

package iso9660

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

/*********/
/* ESTAT */
/*********/

// Status is the outcome class of an operation, as seen across the
// filesystem boundary.
type Status int

const (
	StatusOK Status = iota
	StatusIO
	StatusBadFormat
	StatusNotFound
	StatusNotADirectory
	StatusNotAFile
	StatusInvalid
	StatusNotSupported
)

func (self Status) String() string {

	switch self {
	case StatusOK:
		return "ok"
	case StatusIO:
		return "i/o error"
	case StatusBadFormat:
		return "bad format"
	case StatusNotFound:
		return "not found"
	case StatusNotADirectory:
		return "not a directory"
	case StatusNotAFile:
		return "not a file"
	case StatusInvalid:
		return "invalid argument"
	case StatusNotSupported:
		return "not supported"
	default:
		return fmt.Sprintf("status(%d)", int(self))
	}

} // end String

/**********/
/* ERRORS */
/**********/

var (
	ErrIO            = errors.New("i/o error")
	ErrBadFormat     = errors.New("bad ISO9660 format")
	ErrNotFound      = errors.New("not found")
	ErrNotADirectory = errors.New("not a directory")
	ErrNotAFile      = errors.New("not a file")
	ErrInvalidSeek   = errors.New("invalid seek")

	// ErrScanLimit també és ErrNoPrimary. Tots dos són BadFormat.
	ErrNoPrimary error = &classError{"no primary volume descriptor", ErrBadFormat}
	ErrScanLimit error = &classError{"volume descriptor scan limit reached", ErrNoPrimary}
)

type classError struct {
	msg   string
	class error
}

func (self *classError) Error() string { return self.msg }

func (self *classError) Unwrap() error { return self.class }

// SectorError reports a failed fetch from the SectorReader. It is
// always an ErrIO and keeps the reader's error as its cause.
type SectorError struct {
	Disk   uint8
	Sector uint32
	Err    error
}

func (self *SectorError) Error() string {
	return fmt.Sprintf("failed to read sector %d of disk %d: %v",
		self.Sector, self.Disk, self.Err)
} // end Error

func (self *SectorError) Unwrap() error { return self.Err }

func (self *SectorError) Is(target error) bool { return target == ErrIO }

// StatusOf classifies err. A nil error and io.EOF (end of stream) are
// StatusOK.
func StatusOf(err error) Status {

	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, ErrIO):
		return StatusIO
	case errors.Is(err, io.EOF):
		return StatusOK
	case errors.Is(err, ErrBadFormat):
		return StatusBadFormat
	case errors.Is(err, ErrNotFound):
		return StatusNotFound
	case errors.Is(err, ErrNotADirectory):
		return StatusNotADirectory
	case errors.Is(err, ErrNotAFile):
		return StatusNotAFile
	case errors.Is(err, ErrInvalidSeek):
		return StatusInvalid
	default:
		return StatusIO
	}

} // end StatusOf
