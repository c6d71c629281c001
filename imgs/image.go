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
 *  image.go - Capa genèrica de sistemes de fitxers.
 */

package imgs

import (
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/adriagipas/isoread/cdread"
	"github.com/adriagipas/isoread/iso9660"
)

// ErrNotSupported is returned by operations a read-only filesystem
// cannot perform.
var ErrNotSupported = errors.New("operation not supported")

// StatusOf extends iso9660.StatusOf with ErrNotSupported.
func StatusOf(err error) iso9660.Status {

	if errors.Is(err, ErrNotSupported) {
		return iso9660.StatusNotSupported
	}

	return iso9660.StatusOf(err)

} // end StatusOf

/**********/
/* CONFIG */
/**********/

type Config struct {
	Buffering iso9660.Buffering
	ScanLimit int

	// Disc on es munta la imatge.
	Disk uint8

	// Passa els camins a majúscules abans de resoldre'ls.
	UppercasePaths bool

	Logger logrus.FieldLogger
}

func (self *Config) logger() logrus.FieldLogger {
	if self.Logger == nil {
		return logrus.StandardLogger()
	}
	return self.Logger
} // end logger

/***************/
/* FILE READER */
/***************/

type FileReader interface {
	// Llig en el buffer. Torna el nombre de bytes llegits. Quan aplega
	// al final torna 0 i io.EOF.
	Read(buf []byte) (int, error)

	// Tanca el fitxer.
	Close() error
}

type FileWriter interface {
	io.WriteCloser
}

/**********/
/* VOLUME */
/**********/

// DirEntry is one entry of ListDirectory.
type DirEntry struct {
	Name    string
	IsDir   bool
	Size    uint64
	ModTime time.Time // Zero si no se sap
	Hidden  bool
}

// Volume is a mounted filesystem seen through the generic layer.
type Volume interface {
	// Imprimeix la informació del volum. Cada línia s'imprimeix amb el
	// prefix indicat.
	PrintInfo(file io.Writer, prefix string) error

	OpenPath(path string) (FileReader, error)

	// Llista el directori sense les entrades "." i "..".
	ListDirectory(path string) ([]DirEntry, error)

	CreateFile(path string) (FileWriter, error)
	CreateDir(path string) error
	Remove(path string) error
}

/**************/
/* FILESYSTEM */
/**************/

// Filesystem is the capability set a filesystem driver registers.
type Filesystem struct {
	Name  string
	Probe func(src iso9660.SectorReader, disk uint8) bool
	Mount func(src iso9660.SectorReader, disk uint8, cfg *Config) (Volume, error)
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Filesystem)
)

// Register makes fs available to Lookup and Detect. It panics if the
// name is taken.
func Register(fs Filesystem) {

	registryMu.Lock()
	defer registryMu.Unlock()
	name := strings.ToLower(fs.Name)
	if _, ok := registry[name]; ok {
		panic("imgs: filesystem registered twice: " + fs.Name)
	}
	registry[name] = fs

} // end Register

func Lookup(name string) (Filesystem, bool) {

	registryMu.RLock()
	defer registryMu.RUnlock()
	fs, ok := registry[strings.ToLower(name)]

	return fs, ok

} // end Lookup

// Filesystems returns the registered names, sorted.
func Filesystems() []string {

	registryMu.RLock()
	defer registryMu.RUnlock()
	ret := make([]string, 0, len(registry))
	for _, fs := range registry {
		ret = append(ret, fs.Name)
	}
	sort.Strings(ret)

	return ret

} // end Filesystems

/*********/
/* IMAGE */
/*********/

// Image is an image file opened and mounted.
type Image struct {
	Volume
	Filesystem string

	drives *cdread.Drives
	src    cdread.Source
}

// Source returns the sector source of the image.
func (self *Image) Source() cdread.Source { return self.src }

func (self *Image) Close() error { return self.drives.Close() }

// NewImage opens fileName, detects its filesystem and mounts it. cfg
// can be nil.
func NewImage(fileName string, cfg *Config) (*Image, error) {

	if cfg == nil {
		cfg = &Config{}
	}

	// Obri i insereix en la unitat
	src, err := cdread.Open(fileName)
	if err != nil {
		return nil, err
	}
	drives := cdread.NewDrives()
	if err := drives.Attach(cfg.Disk, src); err != nil {
		src.Close()
		return nil, err
	}

	// Munta
	fs, err := Detect(drives, cfg.Disk)
	if err != nil {
		drives.Close()
		return nil, errors.Wrapf(err, "'%s'", fileName)
	}
	vol, err := fs.Mount(drives, cfg.Disk, cfg)
	if err != nil {
		drives.Close()
		return nil, errors.Wrapf(err, "unable to mount '%s'", fileName)
	}
	cfg.logger().WithFields(logrus.Fields{
		"file":       fileName,
		"filesystem": fs.Name,
		"disk":       cfg.Disk,
	}).Debug("image mounted")

	return &Image{
		Volume:     vol,
		Filesystem: fs.Name,
		drives:     drives,
		src:        src,
	}, nil

} // end NewImage
