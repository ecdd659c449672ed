// Package schemas embeds the JSON Schema documents shipped with tidytex.
package schemas

import "embed"

// Files holds every *.schema.json in this directory.
//
//go:embed *.schema.json
var Files embed.FS

// ConfigSchema is the schema for JSON configuration files.
//
//go:embed config.schema.json
var ConfigSchema string

// DocumentSchema is the schema for the JSON form of an inspected resume.
//
//go:embed document.schema.json
var DocumentSchema string
