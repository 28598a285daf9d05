package restyutil

import (
	"log/slog"
	"os"
	"path/filepath"

	devenv "github.com/ABGEO/magtifun.abgeo.dev/dev/env"
)

type FilesystemOutput struct {
	directory string
}

// NewFilesystemOutput clears dir (which may be a `<dev_state>/...` path) and
// writes one file per message into it.
func NewFilesystemOutput(dir string) (FilesystemOutput, error) {
	dir, err := devenv.ResolvePath(dir)
	if err != nil {
		return FilesystemOutput{}, err
	}
	err = os.RemoveAll(dir)
	if err != nil {
		return FilesystemOutput{}, err
	}
	err = os.MkdirAll(dir, 0777)
	if err != nil {
		return FilesystemOutput{}, err
	}
	return FilesystemOutput{directory: dir}, nil
}

func (o FilesystemOutput) Write(id string, contents string) {
	err := os.WriteFile(filepath.Join(o.directory, id+".txt"), []byte(contents), 0600)
	if err != nil {
		slog.Warn("failed to write message info file", "id", id, "err", err)
	}
}
