//go:build !linux

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
 *  device_other.go - Dispositius no suportats fora de Linux.
 */

package cdread

import (
	"runtime"

	"github.com/pkg/errors"
)

// OpenDevice is only implemented on Linux.
func OpenDevice(name string) (Source, error) {
	return nil, errors.Errorf("reading device '%s' is not supported on %s",
		name, runtime.GOOS)
} // end OpenDevice
