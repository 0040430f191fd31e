// Package watch reports debounced file changes under a source tree so a
// boundary check can be rerun with a freshly loaded policy.
package watch

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the tree must stay quiet before a change is reported.
const DefaultDebounce = 200 * time.Millisecond

// Change lists the files touched during one quiet period.
type Change struct {
	Files []string
}

// Watcher monitors directories for changes to files with selected extensions.
type Watcher struct {
	Changes <-chan Change // Read-only external channel

	changes  chan Change // Internal write channel
	done     chan struct{}
	watcher  *fsnotify.Watcher
	match    func(string) bool
	debounce time.Duration
}

// New creates a watcher for root and every directory below it that is not
// hidden, vendored or underscore-prefixed. Only paths accepted by match
// are reported; extra paths such as a config file outside root may be
// added with Add.
func New(root string, match func(string) bool) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := addTree(fw, root, nil); err != nil {
		fw.Close()
		return nil, err
	}

	ch := make(chan Change, 4)
	return &Watcher{
		Changes:  ch,
		changes:  ch,
		done:     make(chan struct{}),
		watcher:  fw,
		match:    match,
		debounce: DefaultDebounce,
	}, nil
}

// Add watches one more file or directory.
func (w *Watcher) Add(path string) error {
	return w.watcher.Add(path)
}

// Start begins the event loop.
func (w *Watcher) Start() {
	go w.loop()
}

// Stop closes the watcher and the Changes channel.
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done // Wait for loop to exit
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)

	pending := make(map[string]struct{})
	var last time.Time
	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) && !skipDir(filepath.Base(event.Name)) {
				if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
					// Files written before the directory was watched count too.
					_ = addTree(w.watcher, event.Name, func(p string) {
						if w.match == nil || w.match(p) {
							pending[p] = struct{}{}
							last = time.Now()
						}
					})
					continue
				}
			}
			if w.match != nil && !w.match(event.Name) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				pending[event.Name] = struct{}{}
				last = time.Now()
			}

		case <-ticker.C:
			if len(pending) == 0 || time.Since(last) < w.debounce {
				continue
			}
			files := make([]string, 0, len(pending))
			for f := range pending {
				files = append(files, f)
			}
			pending = make(map[string]struct{})
			select {
			case w.changes <- Change{Files: files}:
			default:
				// A rerun is already queued; it will see these edits too.
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Ignore watch errors; they're non-fatal.
		}
	}
}

// skipDir reports whether a directory name is never watched.
func skipDir(name string) bool {
	return name == "vendor" || name == "node_modules" ||
		strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

// addTree watches root and its non-skipped subdirectories. Files found on
// the way are passed to file when it is non-nil.
func addTree(fw *fsnotify.Watcher, root string, file func(string)) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			if file != nil {
				file(p)
			}
			return nil
		}
		if p != root && skipDir(d.Name()) {
			return filepath.SkipDir
		}
		return fw.Add(p)
	})
}

// HasExt returns a matcher accepting paths with any of exts, plus the
// exact paths in extra.
func HasExt(exts []string, extra ...string) func(string) bool {
	return func(p string) bool {
		for _, e := range extra {
			if filepath.Clean(p) == filepath.Clean(e) {
				return true
			}
		}
		for _, e := range exts {
			if strings.HasSuffix(p, e) {
				return true
			}
		}
		return false
	}
}
