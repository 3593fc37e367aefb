//go:build sqlite_cgo
// +build sqlite_cgo

package storage

// This file is compiled with CGO and the sqlite_cgo tag. The fts5 tag is
// required so the C amalgamation includes the FTS5 extension.
//
// Build command:
//   CGO_ENABLED=1 go build -tags "sqlite_cgo,fts5" ./...
//
// The CGO build provides:
//   - Native C SQLite, faster for large corpora
//   - FTS5 full-text search (via the fts5 tag)
//
// Driver used: github.com/mattn/go-sqlite3

import (
	_ "github.com/mattn/go-sqlite3"
)

const (
	// DriverName is the SQLite driver to use
	DriverName = "sqlite3"

	// BuildMode describes the current build configuration
	BuildMode = "cgo"
)
