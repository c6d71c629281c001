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
 *  cue.go - Format CUE/BIN.
 */

package cdread

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

/*********/
/* UTILS */
/*********/

func newCueTokenizer(line string) *bufio.Scanner {

	// Funció que processa text
	splitFunc := func(
		data []byte,
		atEOF bool,
	) (advance int, token []byte, err error) {

		if atEOF && len(data) == 0 {
			return 0, nil, nil
		}

		// Ignora espais
		pos := 0
		for pos < len(data) && unicode.IsSpace(rune(data[pos])) {
			pos++
		}
		if pos == len(data) {
			return pos, nil, nil
		}

		// Processa String
		if data[pos] == '"' {
			i := pos + 1
			for i < len(data) && data[i] != '"' {
				i++
			}
			switch {
			case i == len(data) && atEOF: // No s'ha trobat
				return 0, nil, fmt.Errorf("string not closed: [%s]",
					string(data[pos:]))
			case i == len(data): // Demana més dades
				return pos, nil, nil
			case i == pos+1:
				return 0, nil, errors.New("empty string")
			default:
				return i + 1, data[pos+1 : i], nil
			}
		}

		// Token normal
		i := pos + 1
		for i < len(data) && !unicode.IsSpace(rune(data[i])) {
			i++
		}
		switch {
		case i < len(data):
			return i, data[pos:i], nil
		case atEOF:
			return len(data), data[pos:], nil
		default:
			return pos, nil, nil
		}

	} // end splitFunc

	// Crea scanner
	ret := bufio.NewScanner(strings.NewReader(line))
	ret.Split(splitFunc)

	return ret

} // end newCueTokenizer

// Format mm:ss:ff, torna sectors.
func processTimeCue(str string) (int64, error) {

	parts := strings.Split(str, ":")
	if len(str) != 8 || len(parts) != 3 {
		return -1, fmt.Errorf("wrong time format: %s", str)
	}
	var v [3]int64
	for i, p := range parts {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil || len(p) != 2 || p[0] == '-' || p[0] == '+' {
			return -1, fmt.Errorf("wrong time format: %s", str)
		}
		v[i] = n
	}
	if v[1] >= 60 || v[2] >= 75 {
		return -1, fmt.Errorf("wrong time format: %s", str)
	}

	return v[0]*60*75 + v[1]*75 + v[2], nil

} // end processTimeCue

/*********/
/* SHEET */
/*********/

const trackTypeAudio = -1

type cueTrack struct {
	id        int
	trackType int
	file      string
	index01   int64 // Sectors des del principi del fitxer
}

// Bytes per sector dins del fitxer.
func (self *cueTrack) sectorBytes() int64 {
	if self.trackType == TrackTypeISO {
		return SectorSize
	}
	return RawSectorSize
} // end sectorBytes

type cueSheet struct {
	fileName string
	file     string // FILE actual
	tracks   []cueTrack
}

func (self *cueSheet) readFile(tok *bufio.Scanner) error {

	// Obté nom del fitxer
	if !tok.Scan() {
		return errors.New("wrong file format: unable to read file name")
	}
	fileName := tok.Text()

	// Comprova que el tipus és BINARY
	if !tok.Scan() {
		return errors.New("wrong file format: unable to read token BINARY")
	}
	if aux := tok.Text(); aux != "BINARY" {
		return fmt.Errorf("wrong file format: expected token BINARY, "+
			"instead '%s' was read", aux)
	}

	// Relatiu al fitxer CUE
	if !filepath.IsAbs(fileName) {
		fileName = filepath.Join(filepath.Dir(self.fileName), fileName)
	}
	self.file = fileName

	return nil

} // end readFile

func (self *cueSheet) readTrack(tok *bufio.Scanner) error {

	if self.file == "" {
		return errors.New("track defined before specifying a file")
	}

	// Llig track id
	if !tok.Scan() {
		return errors.New("wrong track format: unable to read track identifier")
	}
	aux := tok.Text()
	id, err := strconv.Atoi(aux)
	if err != nil {
		return fmt.Errorf("unable to parse track index (%s)", aux)
	}
	if id != len(self.tracks)+1 {
		return fmt.Errorf("expecting track %d, instead track %d was read",
			len(self.tracks)+1, id)
	}

	// Obté mode
	if !tok.Scan() {
		return errors.New("wrong track format: unable to read mode")
	}
	track := cueTrack{id: id, file: self.file, index01: -1}
	switch mode := tok.Text(); mode {
	case "AUDIO":
		track.trackType = trackTypeAudio
	case "MODE1/2048":
		track.trackType = TrackTypeISO
	case "MODE1/2352":
		track.trackType = TrackTypeMode1Raw
	case "MODE2/2352":
		track.trackType = TrackTypeMode2Raw
	default:
		return fmt.Errorf("TRACK format unknown: %s", mode)
	}
	self.tracks = append(self.tracks, track)

	return nil

} // end readTrack

func (self *cueSheet) readIndex(tok *bufio.Scanner) error {

	if len(self.tracks) == 0 {
		return errors.New("index defined before specifying a track")
	}
	track := &self.tracks[len(self.tracks)-1]

	// Identificador i temps
	if !tok.Scan() {
		return errors.New("wrong index format: unable to read index identifier")
	}
	id, err := strconv.Atoi(tok.Text())
	if err != nil {
		return fmt.Errorf("unable to parse index identifier (%s)", tok.Text())
	}
	if !tok.Scan() {
		return errors.New("wrong index format: unable to read time")
	}
	pos, err := processTimeCue(tok.Text())
	if err != nil {
		return err
	}
	if id == 1 {
		track.index01 = pos
	}

	return nil

} // end readIndex

func (self *cueSheet) readCommand(line string) error {

	// Crea tokenizer i obté commandament
	tok := newCueTokenizer(line)
	if !tok.Scan() {
		return errors.New("wrong command format: command not found")
	}
	switch cmd := tok.Text(); cmd {
	case "FILE":
		return self.readFile(tok)
	case "TRACK":
		return self.readTrack(tok)
	case "INDEX":
		return self.readIndex(tok)
	case "PREGAP", "POSTGAP", "REM", "CATALOG", "CDTEXTFILE", "FLAGS",
		"ISRC", "PERFORMER", "SONGWRITER", "TITLE":
		// No afecta a la posició dels sectors dins dels fitxers.
		return nil
	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}

} // end readCommand

func readCueSheet(fileName string) (*cueSheet, error) {

	f, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ret := cueSheet{fileName: fileName}
	s := bufio.NewScanner(f)
	for nline := 1; s.Scan(); nline++ {
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		if err := ret.readCommand(line); err != nil {
			return nil, errors.Wrapf(err, "%s:%d", fileName, nline)
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	return &ret, nil

} // end readCueSheet

// Primer track de dades.
func (self *cueSheet) dataTrack() (*cueTrack, error) {

	for i := range self.tracks {
		track := &self.tracks[i]
		if track.trackType == trackTypeAudio {
			continue
		}
		if track.index01 < 0 {
			return nil, fmt.Errorf("track %d has no INDEX 01", track.id)
		}
		return track, nil
	}

	return nil, errors.New("no data track found")

} // end dataTrack

/**********************/
/* FUNCIONS PÚBLIQUES */
/**********************/

type cueSource struct {
	Source
}

func (self cueSource) Format() string {
	return "CUE/" + self.Source.Format()
} // end Format

// OpenCue opens the first data track of a CUE sheet. Tracks sharing
// the data track's file are assumed to use its sector size.
func OpenCue(fileName string) (Source, error) {

	sheet, err := readCueSheet(fileName)
	if err != nil {
		return nil, err
	}
	track, err := sheet.dataTrack()
	if err != nil {
		return nil, errors.Wrapf(err, "'%s'", fileName)
	}
	logrus.WithFields(logrus.Fields{
		"cue":   fileName,
		"track": track.id,
		"file":  track.file,
		"mode":  trackTypeName(track.trackType),
	}).Debug("CUE data track")

	// Obri el fitxer del track
	f, err := os.Open(track.file)
	if err != nil {
		return nil, err
	}
	offset := track.index01 * track.sectorBytes()
	var src Source
	if track.trackType == TrackTypeISO {
		src, err = newIsoSource(f, offset)
	} else {
		src, err = newRawSource(f, offset, RawSectorSize, 0)
	}
	if err != nil {
		f.Close()
		return nil, err
	}

	return cueSource{src}, nil

} // end OpenCue
