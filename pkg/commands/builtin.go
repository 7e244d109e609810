package commands

import (
	"embed"
	"io/fs"
)

// Commands shipped with the plugin, shadowed by any installed command with
// the same filename.
//
//go:embed builtin
var builtinFS embed.FS

// Builtins returns the embedded builtin command set.
func Builtins() fs.FS {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		panic(err)
	}
	return sub
}
