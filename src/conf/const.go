// Package conf contains the constants that are used across packages for
// configuring versions.
package conf

import (
	"fmt"
	"time"
)

const (
	// SIGVERSION is the version of the sig application.
	SIGVERSION = "sig 0.1.0"
	// SIGVERSIONMAJORN is the major version.
	SIGVERSIONMAJORN = 0
	// SIGVERSIONMINORN is the minor version.
	SIGVERSIONMINORN = 1
	// SIGVERSIONPATCHN is the patch version.
	SIGVERSIONPATCHN = 0
)

// FullVersion returns the version and copyright.
func FullVersion() string {
	return fmt.Sprintf("%v Copyright (C) %v", SIGVERSION, time.Now().Year())
}

// Copyright is the copyright to be written out in the CLI.
func Copyright() string {
	return fmt.Sprintf("Copyright (C) %v", time.Now().Year())
}
