package logging

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"
)

const (
	logFileName      = "medusa.log"
	defaultLogSizeMB = 10
	logFilePerm      = 0o600
	generationLayout = "20060102-150405.000"
)

// FileSink writes log lines to medusa.log and rolls it over into
// medusa.log.<stamp>[.gz] generations once it reaches the size limit.
// Log lines carry visited URLs, so an ephemeral sink deletes every
// generation on Close.
type FileSink struct {
	mu    sync.Mutex
	cfg   FileConfig
	limit int64
	now   func() time.Time

	file *os.File
	size int64
}

// OpenFileSink opens medusa.log in cfg.Dir for appending and prunes
// generations past the age and count limits.
func OpenFileSink(cfg FileConfig) (*FileSink, error) {
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = defaultLogSizeMB
	}
	s := &FileSink{
		cfg:   cfg,
		limit: int64(cfg.MaxSizeMB) << 20,
		now:   time.Now,
	}
	if err := s.open(); err != nil {
		return nil, err
	}
	s.prune()
	return s, nil
}

func (s *FileSink) path() string {
	return filepath.Join(s.cfg.Dir, logFileName)
}

func (s *FileSink) open() error {
	f, err := os.OpenFile(s.path(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePerm)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("stat log file: %w", err)
	}
	s.file, s.size = f, info.Size()
	return nil
}

// Write appends p, rolling the file over first when p would overflow it.
// A single line is never split across generations.
func (s *FileSink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return 0, os.ErrClosed
	}
	if s.size > 0 && s.size+int64(len(p)) > s.limit {
		if err := s.rollover(); err != nil {
			return 0, err
		}
	}
	n, err := s.file.Write(p)
	s.size += int64(n)
	return n, err
}

func (s *FileSink) rollover() error {
	if err := s.file.Close(); err != nil {
		return fmt.Errorf("close log file: %w", err)
	}
	s.file = nil

	target := s.generationPath()
	if err := os.Rename(s.path(), target); err != nil {
		return fmt.Errorf("roll log file: %w", err)
	}
	if s.cfg.Compress {
		// A failed compression keeps the plain generation.
		_ = gzipInPlace(target)
	}
	s.prune()
	return s.open()
}

// generationPath picks an unused name for the file being rolled over.
func (s *FileSink) generationPath() string {
	base := filepath.Join(s.cfg.Dir, logFileName+"."+s.now().UTC().Format(generationLayout))
	candidate := base
	for i := 1; ; i++ {
		if !exists(candidate) && !exists(candidate+".gz") {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

type generation struct {
	path    string
	modTime time.Time
}

// generations lists rolled-over files, oldest first.
func (s *FileSink) generations() []generation {
	entries, err := os.ReadDir(s.cfg.Dir)
	if err != nil {
		return nil
	}
	var gens []generation
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), logFileName+".") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		gens = append(gens, generation{path: filepath.Join(s.cfg.Dir, e.Name()), modTime: info.ModTime()})
	}
	slices.SortFunc(gens, func(a, b generation) int { return a.modTime.Compare(b.modTime) })
	return gens
}

func (s *FileSink) prune() {
	gens := s.generations()
	if s.cfg.MaxAgeDays > 0 {
		cutoff := s.now().Add(-time.Duration(s.cfg.MaxAgeDays) * 24 * time.Hour)
		kept := gens[:0]
		for _, g := range gens {
			if g.modTime.Before(cutoff) {
				_ = os.Remove(g.path)
				continue
			}
			kept = append(kept, g)
		}
		gens = kept
	}
	if s.cfg.MaxBackups > 0 && len(gens) > s.cfg.MaxBackups {
		for _, g := range gens[:len(gens)-s.cfg.MaxBackups] {
			_ = os.Remove(g.path)
		}
	}
}

// Close closes the file. An ephemeral sink then removes the current file
// and every generation.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if s.file != nil {
		err = s.file.Close()
		s.file = nil
	}
	if s.cfg.Ephemeral {
		err = errors.Join(err, PurgeLogs(s.cfg.Dir))
	}
	return err
}

// PurgeLogs deletes medusa.log and its generations from dir.
func PurgeLogs(dir string) error {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read log dir: %w", err)
	}
	var errs []error
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || (name != logFileName && !strings.HasPrefix(name, logFileName+".")) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// gzipInPlace replaces path with path.gz.
func gzipInPlace(path string) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.OpenFile(path+".gz", os.O_CREATE|os.O_WRONLY|os.O_TRUNC, logFilePerm)
	if err != nil {
		return err
	}
	zw := gzip.NewWriter(dst)
	_, err = io.Copy(zw, src)
	err = errors.Join(err, zw.Close(), dst.Close())
	if err != nil {
		_ = os.Remove(path + ".gz")
		return err
	}
	return os.Remove(path)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
