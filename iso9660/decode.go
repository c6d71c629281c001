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
 *  decode.go - Descodificació dels camps en disc (descriptors de
 *              volum i registres de directori).
 */

package iso9660

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

/*************/
/* CONSTANTS */
/*************/

const (
	SectorSize            = 2048
	FirstDescriptorSector = 16
	DefaultScanLimit      = 32
)

// Volume descriptor types.
const (
	TypeBootRecord    = 0
	TypePrimary       = 1
	TypeSupplementary = 2
	TypePartition     = 3
	TypeTerminator    = 255
)

// Directory record flags.
const (
	FlagHidden      = 0x01
	FlagDirectory   = 0x02
	FlagAssociated  = 0x04
	FlagRecord      = 0x08
	FlagProtection  = 0x10
	FlagMultiExtent = 0x80
)

var magic = []byte("CD001")

var (
	selfName   = []byte{0x00}
	parentName = []byte{0x01}
)

// Grandària de la part fixa d'un registre de directori (sense nom).
const recordFixedSize = 33

const rootRecordOffset = 156

/**********/
/* EXTENT */
/**********/

// Extent is a contiguous run of sectors holding a file or directory.
type Extent struct {
	FirstSector uint32
	Length      uint32
	XattrLength uint8
}

// DataStart is the first sector holding data, after the extended
// attribute record.
func (self Extent) DataStart() uint32 {
	return self.FirstSector + uint32(self.XattrLength)
} // end DataStart

/**********/
/* RECORD */
/**********/

// Record is one directory record. It is a copy and stays valid after
// the cursor that produced it moves on.
type Record struct {
	Length      uint8
	XattrLength uint8
	Sector      uint32
	Size        uint32
	Flags       uint8
	UnitSize    uint8
	GapSize     uint8
	VolumeSeq   uint16
	Name        []byte

	recorded [7]byte
}

func (self *Record) IsDir() bool { return self.Flags&FlagDirectory != 0 }

func (self *Record) IsSelf() bool { return bytes.Equal(self.Name, selfName) }

func (self *Record) IsParent() bool { return bytes.Equal(self.Name, parentName) }

func (self *Record) Extent() Extent {
	return Extent{
		FirstSector: self.Sector,
		Length:      self.Size,
		XattrLength: self.XattrLength,
	}
} // end Extent

// Ident returns the name as a path segment: "." and ".." for the
// special records, otherwise the stored name without its revision
// tag.
func (self *Record) Ident() string {

	switch {
	case self.IsSelf():
		return "."
	case self.IsParent():
		return ".."
	}
	name := self.Name
	if i := bytes.IndexByte(name, ';'); i != -1 {
		name = name[:i]
	}

	return string(name)

} // end Ident

// RecordedAt returns the recording date, or the zero time when the
// field is empty or malformed.
func (self *Record) RecordedAt() time.Time {
	return decodeRecordTime(self.recorded[:])
} // end RecordedAt

// Compara un segment (ja traduït) amb el nom emmagatzemat. Accepta
// un sufix ";versió".
func (self *Record) matches(seg []byte) bool {

	if len(seg) > len(self.Name) {
		return false
	}
	if !bytes.Equal(self.Name[:len(seg)], seg) {
		return false
	}
	if len(self.Name) > len(seg) && self.Name[len(seg)] != ';' {
		return false
	}

	return true

} // end matches

// data comença en el registre i acaba com a molt al final del sector.
func decodeRecord(data []byte) (*Record, error) {

	if len(data) == 0 {
		return nil, errors.Wrap(ErrBadFormat, "empty directory record")
	}
	length := int(data[0])
	if length < recordFixedSize || length > len(data) {
		return nil, errors.Wrapf(ErrBadFormat,
			"wrong directory record length: LEN-DR = %d", length)
	}
	nameLen := int(data[32])
	if recordFixedSize+nameLen > length {
		return nil, errors.Wrapf(ErrBadFormat,
			"directory record name (%d bytes) overflows record (%d bytes)",
			nameLen, length)
	}

	ret := Record{
		Length:      uint8(length),
		XattrLength: data[1],
		Sector:      read32(data[2:10]),
		Size:        read32(data[10:18]),
		Flags:       data[25],
		UnitSize:    data[26],
		GapSize:     data[27],
		VolumeSeq:   read16(data[28:32]),
		Name:        append([]byte(nil), data[33:33+nameLen]...),
	}
	copy(ret.recorded[:], data[18:25])

	return &ret, nil

} // end decodeRecord

func decodeRecordTime(data []byte) time.Time {

	empty := true
	for _, v := range data {
		if v != 0 {
			empty = false
			break
		}
	}
	if empty {
		return time.Time{}
	}

	month, day := int(data[1]), int(data[2])
	hour, min, sec := int(data[3]), int(data[4]), int(data[5])
	if month < 1 || month > 12 || day < 1 || day > 31 ||
		hour > 23 || min > 59 || sec > 59 {
		return time.Time{}
	}

	return time.Date(1900+int(data[0]), time.Month(month), day,
		hour, min, sec, 0, zone(int8(data[6])))

} // end decodeRecordTime

// Desplaçament GMT en intervals de 15 minuts.
func zone(offset int8) *time.Location {
	if offset == 0 {
		return time.UTC
	}
	return time.FixedZone("", int(offset)*15*60)
} // end zone

/******************/
/* PRIMARY VOLUME */
/******************/

// PrimaryVolume is the Primary Volume Descriptor read at mount time.
type PrimaryVolume struct {
	Version                 uint8
	SystemIdentifier        string
	VolumeIdentifier        string
	VolumeSpaceSize         uint32 // Logical blocks
	VolumeSetSize           uint16
	VolumeSequenceNumber    uint16
	LogicalBlockSize        uint16
	VolumeSetIdentifier     string
	PublisherIdentifier     string
	DataPreparerIdentifier  string
	ApplicationIdentifier   string
	CopyrightFileIdentifier string
	AbstractFileIdentifier  string
	BiblioFileIdentifier    string
	VolumeCreation          time.Time
	VolumeModification      time.Time
	VolumeExpiration        time.Time
	VolumeEffective         time.Time
	FileStructureVersion    uint8

	root *Record
}

// Root returns the root directory record.
func (self *PrimaryVolume) Root() *Record { return self.root }

func identifier(data []byte) string {
	return strings.TrimRight(string(data), " \x00")
} // end identifier

func decodePrimary(data []byte) (*PrimaryVolume, error) {

	root, err := decodeRecord(data[rootRecordOffset : rootRecordOffset+34])
	if err != nil {
		return nil, errors.Wrap(err, "root directory record")
	}

	ret := PrimaryVolume{
		Version:                 data[6],
		SystemIdentifier:        identifier(data[8:40]),
		VolumeIdentifier:        identifier(data[40:72]),
		VolumeSpaceSize:         read32(data[80:88]),
		VolumeSetSize:           read16(data[120:124]),
		VolumeSequenceNumber:    read16(data[124:128]),
		LogicalBlockSize:        read16(data[128:132]),
		VolumeSetIdentifier:     identifier(data[190:318]),
		PublisherIdentifier:     identifier(data[318:446]),
		DataPreparerIdentifier:  identifier(data[446:574]),
		ApplicationIdentifier:   identifier(data[574:702]),
		CopyrightFileIdentifier: identifier(data[702:739]),
		AbstractFileIdentifier:  identifier(data[739:776]),
		BiblioFileIdentifier:    identifier(data[776:813]),
		VolumeCreation:          decodeVolumeTime(data[813:830]),
		VolumeModification:      decodeVolumeTime(data[830:847]),
		VolumeExpiration:        decodeVolumeTime(data[847:864]),
		VolumeEffective:         decodeVolumeTime(data[864:881]),
		FileStructureVersion:    data[881],
		root:                    root,
	}

	return &ret, nil

} // end decodePrimary

// Format "YYYYMMDDHHMMSScc" en ASCII més desplaçament GMT.
func decodeVolumeTime(data []byte) time.Time {

	digits := string(data[:16])
	if strings.Trim(digits, "0\x00 ") == "" {
		return time.Time{}
	}

	var v [7]int
	widths := [7]int{4, 2, 2, 2, 2, 2, 2}
	pos := 0
	for i, w := range widths {
		n, err := strconv.Atoi(digits[pos : pos+w])
		if err != nil {
			return time.Time{}
		}
		v[i] = n
		pos += w
	}
	if v[1] < 1 || v[1] > 12 || v[2] < 1 || v[2] > 31 {
		return time.Time{}
	}

	return time.Date(v[0], time.Month(v[1]), v[2], v[3], v[4], v[5],
		v[6]*10*int(time.Millisecond), zone(int8(data[16])))

} // end decodeVolumeTime
