package grin

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// ErrAssetNotFound is returned when no location of an AssetSource holds the
// requested name.
var ErrAssetNotFound = errors.New("grin: asset not found")

// AssetSource resolves a logical asset name to its bytes.
type AssetSource interface {
	Open(name string) (io.ReadCloser, error)
}

// DirSource searches a list of directories in order.
type DirSource []string

// Open opens name in the first directory that has it.
func (d DirSource) Open(name string) (io.ReadCloser, error) {
	for _, dir := range d {
		f, err := os.Open(filepath.Join(dir, filepath.FromSlash(name)))
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(err, "grin: open asset %q", name)
		}
	}
	return nil, errors.Wrapf(ErrAssetNotFound, "%q in %v", name, []string(d))
}

// FSSource reads assets from an fs.FS, such as an embed.FS.
type FSSource struct {
	FS fs.FS
}

// Open opens name in the file system.
func (s FSSource) Open(name string) (io.ReadCloser, error) {
	f, err := s.FS.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(ErrAssetNotFound, "%q", name)
		}
		return nil, errors.Wrapf(err, "grin: open asset %q", name)
	}
	return f, nil
}
