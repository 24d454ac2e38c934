package files

import (
	"os"
)

// FileAPI is the filesystem surface the config validation depends on,
// narrowed so tests can mock existence checks.
type FileAPI interface {
	Exist(path string) (bool, error)
}

type FileSystem struct {
}

func NewFileSystem() *FileSystem {
	return &FileSystem{}
}

// Exist returns a boolean indicating whether a file or directory with a given path exists.
func (f *FileSystem) Exist(path string) (bool, error) {
	_, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
