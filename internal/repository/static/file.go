package static

import (
	"context"
	"os"
	"path/filepath"

	"github.com/dom/alliance-dashboard/internal/domain"
	"github.com/pkg/errors"
)

// FileSource reads documents from a local directory.
type FileSource struct {
	dir string
}

func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

func (s *FileSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrapf(domain.ErrSourceUnavailable, "%s: %v", name, err)
	}

	data, err := os.ReadFile(filepath.Join(s.dir, filepath.Clean("/"+name)))
	if err != nil {
		return nil, errors.Wrapf(domain.ErrSourceUnavailable, "%s: %v", name, err)
	}
	return data, nil
}
