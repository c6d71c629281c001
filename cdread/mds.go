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
 *  mds.go - Imatges MDS/MDF (Alcohol 120%).
 */

package cdread

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf16"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

/*************/
/* CONSTANTS */
/*************/

var mdsMagic = []byte("MEDIA DESCRIPTOR")

const (
	mdsHeaderSize    = 0x58
	mdsSessionSize   = 0x18
	mdsDataBlockSize = 0x50
	mdsIndexSize     = 0x08
	mdsFileBlockSize = 0x10

	// Nom que vol dir "el MDF amb el mateix nom que el MDS".
	mdsDefaultMdf = "*.mdf"
)

const (
	mdsTrackModeNone       = 0x00
	mdsTrackModeAudio      = 0xa9
	mdsTrackModeMode1      = 0xaa
	mdsTrackModeMode2      = 0xab
	mdsTrackModeMode2Subch = 0xec
)

// Els punts >= 0xa0 són entrades del lead-in, no tracks.
const mdsFirstLeadinPoint = 0xa0

/*********/
/* TIPUS */
/*********/

type mdsTrack struct {
	mode       uint8
	point      uint8
	sectorSize uint16 // Inclou el subcanal
	start      uint32
	offset     int64  // Dins del MDF
	index0     uint32 // Sectors
	index1     uint32 // Sectors
	files      []string
}

type mdsSession struct {
	id     uint16
	tracks []mdsTrack
}

type mdsFile struct {
	name     string
	sessions []mdsSession
}

/***********/
/* LECTURA */
/***********/

func readBlock(r io.ReaderAt, offset uint32, size int, what string) ([]byte, error) {

	buf := make([]byte, size)
	if _, err := r.ReadAt(buf, int64(offset)); err != nil {
		return nil, errors.Wrapf(err, "failed to read %s block at %X",
			what, offset)
	}

	return buf, nil

} // end readBlock

func (self *mdsTrack) readFileName(r io.ReaderAt, offset uint32) error {

	block, err := readBlock(r, offset, mdsFileBlockSize, "file")
	if err != nil {
		return err
	}
	nameOffset := binary.LittleEndian.Uint32(block[0:])
	wide := false
	switch block[4] {
	case 0:
	case 1:
		wide = true
	default:
		return errors.Errorf("failed to read file block in %X: unsupported"+
			" filename format %X", offset, block[4])
	}

	// Llig el nom, acabat en zero.
	var name string
	if wide {
		var units []uint16
		var c [2]byte
		for pos := int64(nameOffset); ; pos += 2 {
			if _, err := r.ReadAt(c[:], pos); err != nil {
				return errors.Wrapf(err, "failed to read file name in %X",
					nameOffset)
			}
			u := binary.LittleEndian.Uint16(c[:])
			if u == 0 {
				break
			}
			units = append(units, u)
		}
		name = string(utf16.Decode(units))
	} else {
		var tmp []byte
		var c [1]byte
		for pos := int64(nameOffset); ; pos++ {
			if _, err := r.ReadAt(c[:], pos); err != nil {
				return errors.Wrapf(err, "failed to read file name in %X",
					nameOffset)
			}
			if c[0] == 0 {
				break
			}
			tmp = append(tmp, c[0])
		}
		name = string(tmp)
	}
	if name == mdsDefaultMdf {
		name = ""
	}
	self.files = append(self.files, name)

	return nil

} // end readFileName

func (self *mdsSession) readTracks(
	r io.ReaderAt,
	offset uint32,
	n int,
) error {

	for i := 0; i < n; i++ {

		block, err := readBlock(r, offset, mdsDataBlockSize, "data")
		if err != nil {
			return err
		}
		offset += mdsDataBlockSize

		t := mdsTrack{mode: block[0], point: block[4]}
		switch t.mode {
		case mdsTrackModeNone, mdsTrackModeAudio, mdsTrackModeMode1,
			mdsTrackModeMode2, mdsTrackModeMode2Subch:
		default:
			return errors.Errorf("failed to read data block %d for session %d:"+
				" unknown trackmode %X", i+1, self.id, t.mode)
		}
		if t.point < mdsFirstLeadinPoint {

			// Índex
			index, err := readBlock(r,
				binary.LittleEndian.Uint32(block[0xc:]), mdsIndexSize, "index")
			if err != nil {
				return err
			}
			t.index0 = binary.LittleEndian.Uint32(index[0:])
			t.index1 = binary.LittleEndian.Uint32(index[4:])

			// Sector
			t.sectorSize = binary.LittleEndian.Uint16(block[0x10:])
			if t.sectorSize < 0x800 || t.sectorSize > 0x990 {
				return errors.Errorf("failed to read data block %d for session %d:"+
					" wrong sector size %d", i+1, self.id, t.sectorSize)
			}
			t.start = binary.LittleEndian.Uint32(block[0x24:])
			t.offset = int64(binary.LittleEndian.Uint64(block[0x28:]))
			if t.offset < 0 {
				return errors.Errorf("failed to read data block %d for session %d:"+
					" negative offset %d", i+1, self.id, t.offset)
			}

			// Fitxers
			nfiles := binary.LittleEndian.Uint32(block[0x30:])
			fileOffset := binary.LittleEndian.Uint32(block[0x34:])
			for j := uint32(0); j < nfiles; j++ {
				if err := t.readFileName(r, fileOffset); err != nil {
					return err
				}
				fileOffset += mdsFileBlockSize
			}

		}
		self.tracks = append(self.tracks, t)

	}

	return nil

} // end readTracks

func readMds(fileName string) (*mdsFile, error) {

	f, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// Capçalera
	head, err := readBlock(f, 0, mdsHeaderSize, "header")
	if err != nil {
		return nil, errors.Wrapf(err, "'%s'", fileName)
	}
	if !bytes.Equal(head[:len(mdsMagic)], mdsMagic) {
		return nil, errors.Errorf("'%s' is not a MDS/MDF file", fileName)
	}
	nsessions := binary.LittleEndian.Uint16(head[0x14:])
	if nsessions == 0 {
		return nil, errors.Errorf("'%s': number of sessions is 0", fileName)
	}

	// Sessions
	ret := mdsFile{
		name:     fileName,
		sessions: make([]mdsSession, nsessions),
	}
	offset := binary.LittleEndian.Uint32(head[0x50:])
	for i := range ret.sessions {
		s := &ret.sessions[i]
		block, err := readBlock(f, offset, mdsSessionSize, "session")
		if err != nil {
			return nil, err
		}
		offset += mdsSessionSize
		s.id = binary.LittleEndian.Uint16(block[8:])
		if s.id != uint16(i+1) {
			return nil, errors.Errorf("failed to read session block %d:"+
				" session number is %d", i+1, s.id)
		}
		first := binary.LittleEndian.Uint16(block[0xc:])
		last := binary.LittleEndian.Uint16(block[0xe:])
		if first < 1 || last > 0x63 || first > last {
			return nil, errors.Errorf("failed to read session block %d:"+
				" wrong track numbers %X..%X", i+1, first, last)
		}
		if err := s.readTracks(f,
			binary.LittleEndian.Uint32(block[0x14:]), int(block[0xa])); err != nil {
			return nil, err
		}
	}

	return &ret, nil

} // end readMds

// Primer track de dades.
func (self *mdsFile) dataTrack() (*mdsTrack, error) {

	for i := range self.sessions {
		for j := range self.sessions[i].tracks {
			t := &self.sessions[i].tracks[j]
			if t.point >= mdsFirstLeadinPoint {
				continue
			}
			switch t.mode {
			case mdsTrackModeMode1, mdsTrackModeMode2, mdsTrackModeMode2Subch:
			default:
				continue
			}
			if len(t.files) == 0 || t.index1 == 0 {
				return nil, errors.Errorf("track %d is empty", t.point)
			}
			if len(t.files) > 1 {
				return nil, errors.Errorf("multiple files (%d) not supported",
					len(t.files))
			}
			return t, nil
		}
	}

	return nil, errors.New("no data track found")

} // end dataTrack

// Nom del MDF del track. Els noms relatius ho són al MDS.
func (self *mdsFile) mdfName(t *mdsTrack) string {

	name := t.files[0]
	if name == "" {
		ext := filepath.Ext(self.name)
		if strings.EqualFold(ext, ".mds") {
			return strings.TrimSuffix(self.name, ext) + ".mdf"
		}
		return self.name + ".mdf"
	}
	if !filepath.IsAbs(name) {
		name = filepath.Join(filepath.Dir(self.name), name)
	}

	return name

} // end mdfName

/**********************/
/* FUNCIONS PÚBLIQUES */
/**********************/

type mdsSource struct {
	Source
}

func (self mdsSource) Format() string {
	return "MDS/" + self.Source.Format()
} // end Format

// OpenMds opens the first data track of an Alcohol 120% MDS/MDF
// image.
func OpenMds(fileName string) (Source, error) {

	mds, err := readMds(fileName)
	if err != nil {
		return nil, err
	}
	track, err := mds.dataTrack()
	if err != nil {
		return nil, errors.Wrapf(err, "'%s'", fileName)
	}
	mdf := mds.mdfName(track)
	logrus.WithFields(logrus.Fields{
		"mds":         fileName,
		"mdf":         mdf,
		"track":       track.point,
		"sector_size": track.sectorSize,
		"start":       GetPosition(int64(track.start)).String(),
	}).Debug("MDS data track")

	// Obri el MDF
	f, err := os.Open(mdf)
	if err != nil {
		return nil, err
	}
	var src Source
	switch {
	case track.sectorSize == SectorSize:
		src, err = newIsoSource(f, track.offset)
	case track.sectorSize >= RawSectorSize:
		src, err = newRawSource(f, track.offset,
			int64(track.sectorSize), int64(track.index1))
	default:
		err = errors.Errorf("'%s': unsupported sector size %d",
			fileName, track.sectorSize)
	}
	if err != nil {
		f.Close()
		return nil, err
	}

	return mdsSource{src}, nil

} // end OpenMds
