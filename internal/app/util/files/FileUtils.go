package files

import (
	"os"
	"path/filepath"
	"strings"

	apperrors "meeting-transcriber/internal/app/errors"
)

// TextExtension marks inputs that already hold a transcript.
const TextExtension = ".txt"

// EnhancedSuffix is appended to the input stem for enhanced transcripts.
const EnhancedSuffix = "_enhanced"

// IsTextFile reports whether path ends in .txt, ignoring case.
func IsTextFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), TextExtension)
}

// EnhancedName derives "<stem>_enhanced.txt" from an input path.
func EnhancedName(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return stem + EnhancedSuffix + TextExtension
}

// ReadOutputFile returns the content of filePath exactly as stored.
func ReadOutputFile(filePath string) (string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", apperrors.Wrap(err, apperrors.ErrFileNotFound, filePath)
		}
		return "", apperrors.Wrap(err, apperrors.ErrFileReadFailed, filePath)
	}

	return string(content), nil
}

// OutputStore writes transcripts into a single output directory.
type OutputStore struct {
	dir string
}

// NewOutputStore returns a store rooted at dir. The directory is created on first write.
func NewOutputStore(dir string) *OutputStore {
	return &OutputStore{dir: dir}
}

// Path returns where a file called name would be written. Directory parts of
// name are dropped so every file lands directly in the output directory.
func (s *OutputStore) Path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}

// Save writes text as UTF-8 to name inside the output directory, overwriting
// any existing file, and returns the full path.
func (s *OutputStore) Save(name, text string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", apperrors.Wrapf(err, apperrors.ErrFileWriteFailed, "create %s", s.dir)
	}

	path := s.Path(name)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", apperrors.Wrapf(err, apperrors.ErrFileWriteFailed, "write %s", path)
	}
	return path, nil
}
