package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// FileKV - бэкенд на файлах: один JSON-файл на ключ в общем каталоге.
// Несколько процессов на одной машине делят каталог; изменения соседей
// приходят через fsnotify. Запись атомарна (временный файл + rename),
// чтобы сосед не прочитал полузаписанное значение.
type FileKV struct {
	dir string
	log *logrus.Logger

	mu       sync.Mutex
	fw       *fsnotify.Watcher
	watchers map[string]map[int64]func()
	nextID   int64
}

func NewFileKV(dir string, log *logrus.Logger) (*FileKV, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &FileKV{
		dir:      dir,
		log:      log,
		watchers: make(map[string]map[int64]func()),
	}, nil
}

func (f *FileKV) path(key string) string {
	return filepath.Join(f.dir, fileName(key))
}

// fileName приводит ключ к безопасному имени файла
func fileName(key string) string {
	safe := strings.NewReplacer(":", "_", "/", "_", string(os.PathSeparator), "_").Replace(key)
	return safe + ".json"
}

func (f *FileKV) Get(_ context.Context, key string) ([]byte, error) {
	raw, err := os.ReadFile(f.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}
	return raw, nil
}

func (f *FileKV) Set(_ context.Context, key string, value []byte) error {
	tmp, err := os.CreateTemp(f.dir, fileName(key)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path(key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace key file: %w", err)
	}
	return nil
}

// Watch подписывает fn на изменение ключа. Наблюдатель каталога
// запускается лениво при первой подписке.
func (f *FileKV) Watch(_ context.Context, key string, fn func()) (func(), error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fw == nil {
		fw, err := fsnotify.NewWatcher()
		if err != nil {
			return nil, fmt.Errorf("failed to create fs watcher: %w", err)
		}
		if err := fw.Add(f.dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("failed to watch store directory: %w", err)
		}
		f.fw = fw
		go f.dispatchLoop(fw)
	}

	name := fileName(key)
	if f.watchers[name] == nil {
		f.watchers[name] = make(map[int64]func())
	}
	id := f.nextID
	f.nextID++
	f.watchers[name][id] = fn

	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.watchers[name], id)
	}, nil
}

func (f *FileKV) dispatchLoop(fw *fsnotify.Watcher) {
	for {
		select {
		case ev, ok := <-fw.Events:
			if !ok {
				return
			}
			// Атомарная запись приходит как Create/Rename целевого файла
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Rename) {
				continue
			}
			name := filepath.Base(ev.Name)
			f.mu.Lock()
			fns := make([]func(), 0, len(f.watchers[name]))
			for _, w := range f.watchers[name] {
				fns = append(fns, w)
			}
			f.mu.Unlock()
			for _, w := range fns {
				w()
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			f.log.WithError(err).Warn("File watcher error")
		}
	}
}

func (f *FileKV) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fw != nil {
		err := f.fw.Close()
		f.fw = nil
		return err
	}
	return nil
}
