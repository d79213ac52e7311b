// Package hotplug watches a device directory for node arrival and
// removal. Notifications are filtered by a name prefix specific to the
// device class before the callbacks run, so non-matching nodes are
// never even probed.
package hotplug

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors one directory. Added/Removed run on the watcher's
// goroutine (and Added also during the initial scan on the Start
// caller's goroutine).
type Watcher struct {
	dir    string
	prefix string

	added   func(path string)
	removed func(path string)

	fsw  *fsnotify.Watcher
	done chan struct{}
	wg   sync.WaitGroup
}

// New creates a watcher for dir that reports nodes whose base name
// starts with prefix.
func New(dir, prefix string, added, removed func(path string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		dir:     dir,
		prefix:  prefix,
		added:   added,
		removed: removed,
		fsw:     fsw,
		done:    make(chan struct{}),
	}, nil
}

// Start registers the directory watch, reports already-present nodes
// through the added callback, and launches the event loop.
func (w *Watcher) Start() error {
	if err := w.fsw.Add(w.dir); err != nil {
		w.fsw.Close()
		return err
	}

	entries, err := os.ReadDir(w.dir)
	if err != nil {
		w.fsw.Close()
		return err
	}
	for _, entry := range entries {
		if w.matches(entry.Name()) {
			w.added(filepath.Join(w.dir, entry.Name()))
		}
	}

	w.wg.Add(1)
	go w.loop()
	return nil
}

// Close stops the watcher and joins its goroutine.
func (w *Watcher) Close() error {
	close(w.done)
	err := w.fsw.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.matches(filepath.Base(ev.Name)) {
				continue
			}
			switch {
			case ev.Op.Has(fsnotify.Create):
				w.added(ev.Name)
			case ev.Op.Has(fsnotify.Remove), ev.Op.Has(fsnotify.Rename):
				w.removed(ev.Name)
			}
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *Watcher) matches(name string) bool {
	return strings.HasPrefix(name, w.prefix)
}
