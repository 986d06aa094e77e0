package page

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"time"

	"pagesmith/types"

	"github.com/google/uuid"
)

// GeneratedDir is the folder under the public root holding synthesized pages.
const GeneratedDir = "generated"

const maxNameAttempts = 5

// Store reads pages from and writes generated pages to the public root.
// It never rewrites or removes an existing file.
type Store struct {
	root string
	now  func() time.Time
}

func NewStore(root string) *Store {
	return &Store{
		root: root,
		now:  time.Now,
	}
}

// Load returns the content of a resolved page, or "" when it cannot be read
// or does not name a file inside the root on this OS.
func (s *Store) Load(rel string) string {
	if !filepath.IsLocal(filepath.FromSlash(rel)) {
		return ""
	}
	data, err := os.ReadFile(s.abs(rel))
	if err != nil {
		return ""
	}
	return string(data)
}

// Persist writes html to a freshly named file under GeneratedDir.
func (s *Store) Persist(html string) (*types.GeneratedDocument, error) {
	if err := os.MkdirAll(filepath.Join(s.root, GeneratedDir), 0o755); err != nil {
		return nil, fmt.Errorf("create generated dir: %w", err)
	}

	createdAt := s.now()
	for range maxNameAttempts {
		name := path.Join(GeneratedDir, fmt.Sprintf("page-%d-%s.html", createdAt.UnixMilli(), newToken()))

		f, err := os.OpenFile(s.abs(name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", name, err)
		}

		if _, err := f.WriteString(html); err != nil {
			f.Close()
			os.Remove(s.abs(name))
			return nil, fmt.Errorf("write %s: %w", name, err)
		}
		if err := f.Close(); err != nil {
			os.Remove(s.abs(name))
			return nil, fmt.Errorf("close %s: %w", name, err)
		}

		return &types.GeneratedDocument{
			Filename:  name,
			HTML:      html,
			CreatedAt: createdAt,
		}, nil
	}
	return nil, fmt.Errorf("no free filename after %d attempts", maxNameAttempts)
}

func (s *Store) abs(rel string) string {
	return filepath.Join(s.root, filepath.FromSlash(rel))
}

func newToken() string {
	id := uuid.New()
	return hex.EncodeToString(id[:6])
}
