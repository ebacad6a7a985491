package osdr

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/astraldata/biograph/errors"
)

// ErrNoData indicates the local data directory holds no usable records.
// The boundary layer maps this to an explicit "no data" result with a
// root-only graph instead of fabricating nodes.
var ErrNoData = errors.New("no OSDR data available")

// File names the fetch pipeline writes into the data directory.
const (
	publicationsFile = "publications.json"
	filesFile        = "files.json"
)

// Store reads cached OSDR payloads from a local data directory and can
// watch it for changes.
type Store struct {
	dir    string
	logger *zap.SugaredLogger
}

// NewStore creates a store over the given data directory.
func NewStore(dir string, logger *zap.SugaredLogger) *Store {
	return &Store{
		dir:    dir,
		logger: logger.Named("osdr.store"),
	}
}

// Dir returns the data directory path.
func (s *Store) Dir() string { return s.dir }

// LoadPublications reads the cached publication list. A missing file yields
// ErrNoData, not a hard failure.
func (s *Store) LoadPublications() ([]Publication, error) {
	path := filepath.Join(s.dir, publicationsFile)
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, ErrNoData
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	publications, err := DecodePublications(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s", path)
	}
	return publications, nil
}

// LoadFiles reads the cached file listing. A missing file yields ErrNoData.
func (s *Store) LoadFiles() ([]FileRecord, error) {
	path := filepath.Join(s.dir, filesFile)
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, ErrNoData
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	records, err := DecodeFiles(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s", path)
	}
	return records, nil
}

// SavePublications writes a publication list into the data directory.
func (s *Store) SavePublications(data []byte) error {
	return s.save(publicationsFile, data)
}

// SaveFiles writes a file listing into the data directory.
func (s *Store) SaveFiles(data []byte) error {
	return s.save(filesFile, data)
}

func (s *Store) save(name string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create data directory %s", s.dir)
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	s.logger.Infow("Saved OSDR payload", "path", path, "bytes", len(data))
	return nil
}

// Watch invokes onChange whenever a data file in the directory is written,
// debounced so one fetch run triggers one rebuild. Blocks until the context
// is cancelled.
func (s *Store) Watch(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create fs watcher")
	}
	defer watcher.Close()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create data directory %s", s.dir)
	}
	if err := watcher.Add(s.dir); err != nil {
		return errors.Wrapf(err, "failed to watch %s", s.dir)
	}

	const debounce = 500 * time.Millisecond
	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			base := filepath.Base(event.Name)
			if base != publicationsFile && base != filesFile {
				continue
			}
			s.logger.Debugw("Data file changed", "file", base)
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warnw("Watcher error", "error", err)
		case <-fire:
			onChange()
		}
	}
}
