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
 *  cmd.go - Comandaments de la línia d'ordres.
 */

package main

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/adriagipas/isoread/config"
	"github.com/adriagipas/isoread/imgs"
	"github.com/adriagipas/isoread/ops"
	"github.com/adriagipas/isoread/utils"
)

// globalFlags són els flags comuns a tots els comandaments.
type globalFlags struct {
	config    string
	buffering string
	logLevel  string
	disk      uint8
	upper     bool

	cfg *config.Config
}

func (self *globalFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&self.config, "config", "",
		"configuration file, overrides env var "+config.EnvVar)
	fs.StringVar(&self.buffering, "buffering", "",
		"sector buffering: per-stream or shared")
	fs.StringVar(&self.logLevel, "log-level", "",
		"log level: panic, fatal, error, warning, info, debug or trace")
	fs.Uint8Var(&self.disk, "disk", 0, "disk identifier the image is attached as")
	fs.BoolVar(&self.upper, "uppercase", true,
		"convert paths to upper case before resolving them")
} // end register

// Carrega la configuració i hi aplica els flags indicats.
func (self *globalFlags) load(fs *pflag.FlagSet) error {

	cfg, err := config.Load(self.config)
	if err != nil {
		return err
	}
	if fs.Changed("buffering") {
		cfg.Buffering = self.buffering
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = self.logLevel
	}
	if fs.Changed("disk") {
		cfg.Disk = self.disk
	}
	if fs.Changed("uppercase") {
		cfg.UppercasePaths = self.upper
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid options")
	}
	log.SetLevel(cfg.Level())
	self.cfg = cfg

	return nil

} // end load

func (self *globalFlags) image() *imgs.Config {
	return self.cfg.Image(log.StandardLogger())
} // end image

func newCmd() *cobra.Command {

	gf := &globalFlags{}
	cmd := &cobra.Command{
		Use:           "isoread",
		Short:         "read ISO 9660 images",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return gf.load(cmd.Flags())
		},
	}
	gf.register(cmd.PersistentFlags())

	cmd.AddCommand(showCmd(gf))
	cmd.AddCommand(listCmd(gf))
	cmd.AddCommand(catCmd(gf))
	cmd.AddCommand(sumCmd(gf))
	cmd.AddCommand(mountCmd(gf))
	cmd.AddCommand(versionCmd())

	return cmd

} // end newCmd

func showCmd(gf *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show IMAGE...",
		Short: "show the volume information of the images",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ops.Show(cmd.OutOrStdout(), args, gf.image())
		},
	}
} // end showCmd

func listCmd(gf *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "ls IMAGE [PATH...]",
		Aliases: []string{"list"},
		Short:   "list directories, or the entry of a file",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ops.List(cmd.OutOrStdout(), args[0], args[1:], gf.image())
		},
	}
} // end listCmd

func catCmd(gf *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "cat IMAGE PATH...",
		Short: "concatenate files of the image on the standard output",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ops.Cat(cmd.OutOrStdout(), args[0], args[1:], gf.image())
		},
	}
} // end catCmd

func sumCmd(gf *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "sum IMAGE PATH...",
		Short: "print the BLAKE3 digest of files of the image",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ops.Sum(cmd.OutOrStdout(), args[0], args[1:], gf.image())
		},
	}
} // end sumCmd

func mountCmd(gf *globalFlags) *cobra.Command {

	var allowOther bool
	cmd := &cobra.Command{
		Use:   "mount IMAGE MOUNTPOINT",
		Short: "mount the image read-only with FUSE until interrupted",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fopts := gf.cfg.FuseOptions(log.StandardLogger())
			if cmd.Flags().Changed("allow-other") {
				fopts.AllowOther = allowOther
			}
			return ops.Mount(args[0], args[1], gf.image(), fopts)
		},
	}
	cmd.Flags().BoolVar(&allowOther, "allow-other", false,
		"allow access to other users")

	return cmd

} // end mountCmd

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print the version",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			utils.PrintVersion(cmd.OutOrStdout())
		},
	}
} // end versionCmd
