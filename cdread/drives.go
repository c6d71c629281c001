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
 *  drives.go - Taula d'unitats indexada per identificador de disc.
 */

package cdread

import (
	"sync"

	"github.com/pkg/errors"
)

var ErrNoDisk = errors.New("no disk in drive")

// Drives routes sector reads to the source attached to each disk
// identifier. It is safe for concurrent use.
type Drives struct {
	mu      sync.RWMutex
	sources map[uint8]Source
}

func NewDrives() *Drives {
	return &Drives{sources: make(map[uint8]Source)}
} // end NewDrives

// Attach inserts src as disk. The identifier must be free.
func (self *Drives) Attach(disk uint8, src Source) error {

	self.mu.Lock()
	defer self.mu.Unlock()
	if _, ok := self.sources[disk]; ok {
		return errors.Errorf("disk %d already attached", disk)
	}
	self.sources[disk] = src

	return nil

} // end Attach

// Detach removes and returns the source of disk without closing it.
func (self *Drives) Detach(disk uint8) (Source, bool) {

	self.mu.Lock()
	defer self.mu.Unlock()
	src, ok := self.sources[disk]
	delete(self.sources, disk)

	return src, ok

} // end Detach

func (self *Drives) Source(disk uint8) (Source, bool) {

	self.mu.RLock()
	defer self.mu.RUnlock()
	src, ok := self.sources[disk]

	return src, ok

} // end Source

func (self *Drives) ReadSector(disk uint8, sector uint32, buf []byte) error {

	src, ok := self.Source(disk)
	if !ok {
		return errors.Wrapf(ErrNoDisk, "disk %d", disk)
	}

	return src.ReadSector(disk, sector, buf)

} // end ReadSector

// Close closes and detaches every source. It returns the first error.
func (self *Drives) Close() error {

	self.mu.Lock()
	defer self.mu.Unlock()
	var ret error
	for disk, src := range self.sources {
		if err := src.Close(); err != nil && ret == nil {
			ret = errors.Wrapf(err, "disk %d", disk)
		}
		delete(self.sources, disk)
	}

	return ret

} // end Close
