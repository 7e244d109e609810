package skills

import (
	"embed"
	"io/fs"
)

// Skills shipped with the plugin itself. They sit at the bottom of the
// panda tier so an installed skill of the same name shadows them.
//
//go:embed builtin
var builtinFS embed.FS

// Builtins returns the embedded builtin skill set.
func Builtins() fs.FS {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		// The embed directive guarantees the directory exists.
		panic(err)
	}
	return sub
}
