package content

import (
	"embed"
	"io/fs"
	"os"
)

//go:embed pages
var embedded embed.FS

// Embedded returns the pages compiled into the binary.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "pages")
	if err != nil {
		panic(err)
	}
	return sub
}

// Source picks where pages are loaded from: dir when set, otherwise the
// embedded pages.
func Source(dir string) fs.FS {
	if dir == "" {
		return Embedded()
	}
	return os.DirFS(dir)
}
