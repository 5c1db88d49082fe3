package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"lodgekeeper/internal/pkg/config"
	"lodgekeeper/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrUnsupportedFileType = errs.New("unsupported file type")

var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".tif":  {},
	".tiff": {},
	".pdf":  {},
}

// LocalImageStore writes uploaded voucher files under a media directory.
// Stored names are generated; the client-supplied filename only contributes
// its extension.
type LocalImageStore struct {
	dir string
}

func NewLocalImageStore(cfg config.MediaConfig) (*LocalImageStore, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	return &LocalImageStore{dir: cfg.Dir}, nil
}

func (s *LocalImageStore) Save(ctx context.Context, filename string, content io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", ErrUnsupportedFileType
	}

	name := fmt.Sprintf("%s_%s%s", time.Now().UTC().Format("20060102"), uuid.NewString(), ext)
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", errs.Wrap(err, "failed to create voucher file")
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		os.Remove(path)
		return "", errs.Wrap(err, "failed to write voucher file")
	}

	return path, nil
}
