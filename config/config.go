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
 *  config.go - Configuració del programa (YAML).
 */

// Package config loads the isoread configuration file.
//
// The file is chosen with the --config flag or the ISOREAD_CONFIG
// environment variable. There is no search path: without either, the
// defaults are used. Command line flags override the file.
package config

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/adriagipas/isoread/imgs"
	"github.com/adriagipas/isoread/iso9660"
	"github.com/adriagipas/isoread/isofuse"
)

// EnvVar names the environment variable holding the configuration
// path.
const EnvVar = "ISOREAD_CONFIG"

type Config struct {
	// "per-stream" o "shared".
	Buffering string `yaml:"buffering"`

	// Nombre màxim de descriptors de volum que s'examinen.
	ScanLimit int `yaml:"scan_limit"`

	Disk uint8 `yaml:"disk"`

	LogLevel string `yaml:"log_level"`

	// Passa els camins a majúscules.
	UppercasePaths bool `yaml:"uppercase_paths"`

	Fuse FuseConfig `yaml:"fuse"`
}

type FuseConfig struct {
	AllowOther bool   `yaml:"allow_other"`
	FsName     string `yaml:"fs_name"`
}

func Default() *Config {
	return &Config{
		Buffering:      iso9660.BufferPerStream.String(),
		ScanLimit:      iso9660.DefaultScanLimit,
		Disk:           0,
		LogLevel:       logrus.WarnLevel.String(),
		UppercasePaths: true,
		Fuse: FuseConfig{
			FsName: isofuse.DefaultFsName,
		},
	}
} // end Default

// Load reads path, or the file named by ISOREAD_CONFIG when path is
// empty. With neither it returns the defaults.
func Load(path string) (*Config, error) {

	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		return Default(), nil
	}

	return LoadFile(path)

} // end Load

func LoadFile(path string) (*Config, error) {

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading configuration")
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "configuration file %s", path)
	}

	return cfg, nil

} // end LoadFile

// Parse decodes data over the defaults and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil

} // end Parse

func (self *Config) Validate() error {

	if _, err := iso9660.ParseBuffering(self.Buffering); err != nil {
		return err
	}
	if self.ScanLimit < 0 {
		return errors.Errorf("negative scan_limit: %d", self.ScanLimit)
	}
	if _, err := logrus.ParseLevel(self.LogLevel); err != nil {
		return errors.Wrap(err, "log_level")
	}

	return nil

} // end Validate

// Level returns the log level. The configuration must be valid.
func (self *Config) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(self.LogLevel)
	if err != nil {
		return logrus.WarnLevel
	}
	return lvl
} // end Level

// Image returns the options used to open images.
func (self *Config) Image(log logrus.FieldLogger) *imgs.Config {
	b, _ := iso9660.ParseBuffering(self.Buffering)
	return &imgs.Config{
		Buffering:      b,
		ScanLimit:      self.ScanLimit,
		Disk:           self.Disk,
		UppercasePaths: self.UppercasePaths,
		Logger:         log,
	}
} // end Image

// FuseOptions returns the options of the FUSE mount.
func (self *Config) FuseOptions(log logrus.FieldLogger) *isofuse.Options {
	return &isofuse.Options{
		AllowOther: self.Fuse.AllowOther,
		FsName:     self.Fuse.FsName,
		Logger:     log,
	}
} // end FuseOptions
