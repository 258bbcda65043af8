package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ImageStore writes uploaded employee images to a local directory and hands
// back the generated filename. The rest of the system only ever stores and
// serves that filename, so swapping in a remote blob store stays contained here.
type ImageStore struct {
	Dir string
}

func NewImageStore(dir string) *ImageStore {
	return &ImageStore{Dir: dir}
}

func (s *ImageStore) Save(r io.Reader, originalName string) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	name := fmt.Sprintf("image_%s%s", uuid.NewString(), ext)

	out, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, r); err != nil {
		return "", err
	}
	return name, nil
}

func (s *ImageStore) Remove(name string) error {
	if name == "" {
		return nil
	}
	// Stored names are generated here; reject anything path-like.
	if name != filepath.Base(name) {
		return fmt.Errorf("invalid image name %q", name)
	}
	err := os.Remove(filepath.Join(s.Dir, name))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
