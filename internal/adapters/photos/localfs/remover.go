// Package localfs borra fotos de mascotas guardadas como archivos bajo un
// directorio raíz.
package localfs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var ErrOutsideRoot = errors.New("photo ref outside photos dir")

type Remover struct {
	root string
}

func New(root string) (*Remover, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("photos dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("photos dir: %w", err)
	}
	return &Remover{root: abs}, nil
}

// DeleteIfExists acepta rutas relativas a la raíz o absolutas dentro de ella.
// Un archivo inexistente no es error.
func (r *Remover) DeleteIfExists(_ context.Context, ref string) error {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil
	}

	path, err := r.resolve(ref)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete photo: %w", err)
	}
	return nil
}

func (r *Remover) resolve(ref string) (string, error) {
	path := ref
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.root, path)
	}
	path = filepath.Clean(path)

	rel, err := filepath.Rel(r.root, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrOutsideRoot
	}
	return path, nil
}
