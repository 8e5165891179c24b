package templates

import (
	"embed"
	"io/fs"
)

//go:embed theme/*.html
var builtinTheme embed.FS

// BuiltinDir is the directory of the built-in theme inside BuiltinFS.
const BuiltinDir = "theme"

// BuiltinFS exposes the built-in theme, used by `blogsmith init` to seed a
// content directory.
func BuiltinFS() fs.FS { return builtinTheme }

// Builtin loads the built-in theme.
func Builtin() (*Store, error) {
	return Load(builtinTheme, BuiltinDir)
}
