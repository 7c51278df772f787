// Package assets embeds the default room library and message catalog.
package assets

import (
	"embed"
	"path"

	"floorforge/pkg/game/template"
)

//go:embed rooms.json
var defaultRooms []byte

// DefaultRooms returns the raw JSON of the built-in room library
func DefaultRooms() []byte {
	return defaultRooms
}

// DefaultLibrary parses the built-in room library
func DefaultLibrary() (*template.Library, error) {
	return template.Parse(defaultRooms)
}

//go:embed locales
var locales embed.FS

// Catalog returns the message catalog for a language, e.g. "en_GB"
func Catalog(lang string) ([]byte, error) {
	return locales.ReadFile(path.Join("locales", lang, "default.po"))
}
