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
 *  iso9660.go - Implementa el sistema de fitxers ISO-9660.
 */

package imgs

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"

	"github.com/adriagipas/isoread/iso9660"
)

const FSISO9660 = "iso9660"

func init() {
	Register(Filesystem{
		Name:  FSISO9660,
		Probe: iso9660.Probe,
		Mount: mountISO9660,
	})
}

// Els identificadors són d-characters però molts discos fan servir
// Latin-1.
func decodeName(s string) string {

	ret, err := charmap.ISO8859_1.NewDecoder().String(s)
	if err != nil {
		return s
	}

	return ret

} // end decodeName

/***********/
/* ISO9660 */
/***********/

// ISO9660 adapts an iso9660.Volume to Volume.
type ISO9660 struct {
	vol   *iso9660.Volume
	upper bool
}

func mountISO9660(
	src iso9660.SectorReader,
	disk uint8,
	cfg *Config,
) (Volume, error) {

	if cfg == nil {
		cfg = &Config{}
	}
	vol, err := iso9660.Mount(src, disk, &iso9660.Options{
		Buffering: cfg.Buffering,
		ScanLimit: cfg.ScanLimit,
		Logger:    cfg.logger(),
	})
	if err != nil {
		return nil, err
	}

	return &ISO9660{vol: vol, upper: cfg.UppercasePaths}, nil

} // end mountISO9660

// ISO9660 returns the underlying volume.
func (self *ISO9660) ISO9660() *iso9660.Volume { return self.vol }

func (self *ISO9660) path(p string) string {
	if self.upper {
		return strings.ToUpper(p)
	}
	return p
} // end path

func (self *ISO9660) PrintInfo(file io.Writer, prefix string) error {

	// Preparació
	var err error
	F := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(file, prefix+format, args...)
		}
	}
	S := func(name, value string) {
		if len(value) > 0 {
			F("%-31s%s\n", name+":", decodeName(value))
		}
	}
	T := func(name string, t time.Time) {
		if !t.IsZero() {
			F("%-31s%s\n", name+":", t.Format("02/01/2006 (15:04:05.00 -0700)"))
		}
	}

	// Imprimeix
	pvd := self.vol.Primary()
	F("ISO 9660\n")
	F("\n")
	F("%-31s%d\n", "Version:", pvd.Version)
	S("System Identifier", pvd.SystemIdentifier)
	S("Volume Identifier", pvd.VolumeIdentifier)
	F("%-31s%d (logical blocks, %s)\n", "Volume Space Size:",
		pvd.VolumeSpaceSize,
		humanize.IBytes(uint64(pvd.VolumeSpaceSize)*iso9660.SectorSize))
	F("%-31s%d (disks)\n", "Volume Set Size:", pvd.VolumeSetSize)
	F("%-31s%d\n", "Volume Sequence Number:", pvd.VolumeSequenceNumber)
	F("%-31s%d\n", "Logical Block Size:", pvd.LogicalBlockSize)
	S("Volume Set Identifier", pvd.VolumeSetIdentifier)
	S("Publisher Identifier", pvd.PublisherIdentifier)
	S("Data Preparer Identifier", pvd.DataPreparerIdentifier)
	S("Application Identifier", pvd.ApplicationIdentifier)
	S("Copyright File Identifier", pvd.CopyrightFileIdentifier)
	S("Abstract File Identifier", pvd.AbstractFileIdentifier)
	S("Bibliographic File Identifier", pvd.BiblioFileIdentifier)
	T("Volume Creation", pvd.VolumeCreation)
	T("Volume Modification", pvd.VolumeModification)
	T("Volume Expiration", pvd.VolumeExpiration)
	T("Volume Effective", pvd.VolumeEffective)
	F("%-31s%d\n", "File Structure Version:", pvd.FileStructureVersion)
	F("%-31s%s\n", "Buffering:", self.vol.Buffering())
	F("\n")

	return err

} // end PrintInfo

type isoFile struct {
	*iso9660.Stream
}

func (self isoFile) Close() error { return nil }

func (self *ISO9660) OpenPath(path string) (FileReader, error) {

	s, err := self.vol.Open(self.path(path))
	if err != nil {
		return nil, err
	}

	return isoFile{s}, nil

} // end OpenPath

func (self *ISO9660) ListDirectory(path string) ([]DirEntry, error) {

	dir, err := self.vol.OpenDir(self.path(path))
	if err != nil {
		return nil, err
	}
	ret := make([]DirEntry, 0, 16)
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
		ret = append(ret, DirEntry{
			Name:    decodeName(rec.Ident()),
			IsDir:   rec.IsDir(),
			Size:    uint64(rec.Size),
			ModTime: rec.RecordedAt(),
			Hidden:  rec.Flags&iso9660.FlagHidden != 0,
		})
	}

	return ret, nil

} // end ListDirectory

func (self *ISO9660) CreateFile(path string) (FileWriter, error) {
	return nil, errors.Wrapf(ErrNotSupported,
		"writing file '%s' on an ISO 9660 image", path)
} // end CreateFile

func (self *ISO9660) CreateDir(path string) error {
	return errors.Wrapf(ErrNotSupported,
		"making directory '%s' on an ISO 9660 image", path)
} // end CreateDir

func (self *ISO9660) Remove(path string) error {
	return errors.Wrapf(ErrNotSupported,
		"removing '%s' from an ISO 9660 image", path)
} // end Remove
