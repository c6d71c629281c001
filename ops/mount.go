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
 *  mount.go - Implementa l'operació MOUNT. Munta la imatge amb FUSE
 *             fins que es rep un senyal.
 */

package ops

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/adriagipas/isoread/imgs"
	"github.com/adriagipas/isoread/isofuse"
)

// Mount exposes the image at mountpoint and serves it until SIGINT or
// SIGTERM.
func Mount(
	file, mountpoint string,
	cfg *imgs.Config,
	fopts *isofuse.Options,
) error {

	img, err := imgs.NewImage(file, cfg)
	if err != nil {
		return err
	}
	defer img.Close()
	iso, ok := img.Volume.(*imgs.ISO9660)
	if !ok {
		return errors.Wrapf(imgs.ErrNotSupported,
			"mounting a %s filesystem", img.Filesystem)
	}

	server, err := isofuse.Mount(iso.ISO9660(), mountpoint, fopts)
	if err != nil {
		return err
	}
	log := logrus.WithFields(logrus.Fields{
		"image":      file,
		"mountpoint": mountpoint,
	})
	log.Info("image mounted")

	// Desmunta amb Ctrl-C
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)
	done := make(chan struct{})
	go func() {
		select {
		case <-sigs:
			if err := server.Unmount(); err != nil {
				log.WithError(err).Warn("unmount failed")
			}
		case <-done:
		}
	}()
	server.Wait()
	close(done)
	log.Info("image unmounted")

	return nil

} // end Mount
