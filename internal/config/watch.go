package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDebounce is the default settle time before a changed
// config file is re-read.
const DefaultWatchDebounce = 500 * time.Millisecond

// Watcher reloads a configuration file when it changes on disk.
// Changes are debounced, and the containing directory rather than the
// file itself is watched so editors that save through an atomic rename
// are handled.
type Watcher struct {
	fsw      *fsnotify.Watcher
	path     string
	debounce time.Duration
	onReload func(Config)
	onError  func(error)

	stopOnce  sync.Once
	stopCh    chan struct{}
	stoppedCh chan struct{}
}

// Watch starts watching path. onReload is called with the freshly
// loaded config after each debounced change that parses and validates;
// onError is called for watch failures and invalid edits, and the
// previous configuration stays in effect. Either callback may be nil.
func Watch(path string, debounce time.Duration, onReload func(Config), onError func(error)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		fsw:       fsw,
		path:      path,
		debounce:  debounce,
		onReload:  onReload,
		onError:   onError,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Stop stops the watcher and waits for its goroutine to finish. It is
// safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
	<-w.stoppedCh
}

func (w *Watcher) loop() {
	defer close(w.stoppedCh)
	defer w.fsw.Close()

	absPath, _ := filepath.Abs(w.path)
	baseName := filepath.Base(w.path)

	var timer *time.Timer
	var settle <-chan time.Time

	for {
		select {
		case <-w.stopCh:
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			evAbs, _ := filepath.Abs(ev.Name)
			if filepath.Base(ev.Name) != baseName && evAbs != absPath {
				continue
			}
			// Write, create and rename all occur during saves,
			// depending on the editor.
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			settle = timer.C

		case <-settle:
			timer = nil
			settle = nil
			cfg, err := Load(w.path)
			if err != nil {
				if w.onError != nil {
					w.onError(err)
				}
				continue
			}
			if w.onReload != nil {
				w.onReload(cfg)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if w.onError != nil {
				w.onError(err)
			}
		}
	}
}
