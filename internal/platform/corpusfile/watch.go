package corpusfile

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch caches decoded partitions and evicts them when their files change.
// It blocks until ctx is done and clears the cache on return. ready, when
// non-nil, is closed once the directories are being watched.
func (s *Store) Watch(ctx context.Context, ready chan<- struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := watcher.Close(); cerr != nil {
			s.logger.Error("failed to close corpus watcher", slog.String("error", cerr.Error()))
		}
	}()

	for _, dir := range []string{s.dir, filepath.Join(s.dir, dataSubdir)} {
		if info, statErr := os.Stat(dir); statErr != nil || !info.IsDir() {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return err
		}
		s.logger.Debug("watching corpus directory", slog.String("dir", dir))
	}

	s.mu.Lock()
	s.watching = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.watching = false
		clear(s.cache)
		s.mu.Unlock()
	}()

	if ready != nil {
		close(ready)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			s.evict(event.Name)
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("corpus watcher error", slog.String("error", werr.Error()))
		}
	}
}

// evict drops the cached partition for path. A created file can shadow a
// lower-priority one for the same stem, so creations clear everything.
func (s *Store) evict(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cache[path]; ok {
		delete(s.cache, path)
	} else {
		clear(s.cache)
	}
	s.logger.Debug("corpus cache invalidated", slog.String("file", filepath.Base(path)))
}
