package export

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/jonboulle/clockwork"
)

// Store drops snapshots into a directory under time-stamped names.
type Store struct {
	baseDir string
	format  string
	clock   clockwork.Clock
}

// NewStore fails when format is not one SaveToFile can write.
func NewStore(baseDir, format string, clock clockwork.Clock) (*Store, error) {
	ext, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Store{baseDir: baseDir, format: ext, clock: clock}, nil
}

func (s *Store) Init() error {
	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return &ResourceError{Op: "mkdir", Path: s.baseDir, Err: err}
	}
	return nil
}

// Save writes img and returns the path it chose. An existing file is
// never overwritten.
func (s *Store) Save(img image.Image) (string, error) {
	if err := s.Init(); err != nil {
		return "", err
	}
	stamp := s.clock.Now().Format("20060102-150405")
	path := filepath.Join(s.baseDir, "dejong_"+stamp+s.format)
	for n := 1; exists(path); n++ {
		path = filepath.Join(s.baseDir, fmt.Sprintf("dejong_%s_%d%s", stamp, n, s.format))
	}
	if err := SaveToFile(path, img); err != nil {
		return "", err
	}
	return path, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
