// Package watch revalidates path-valued properties when the filesystem
// changes underneath them.
//
// A FilePath property's validity depends on state outside the property: the
// file can appear or disappear while the stored path stays the same. This
// package bridges that gap by watching the path and scheduling Revalidate,
// so validity listeners fire without anyone calling Set.
package watch

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Revalidator is the property surface the watcher drives; both props.Value
// and props.List satisfy it.
type Revalidator interface {
	Revalidate() error
}

// Path watches the directory containing path and schedules a revalidation
// of v whenever that path is created, removed, renamed, or written.
//
// Filesystem events arrive on a watcher goroutine, but properties are not
// thread-safe, so each revalidation is handed to dispatch, which must run
// the closure on the thread that owns v (an event-loop task queue, for
// example). A nil dispatch runs revalidations directly on the watcher
// goroutine, which is only safe for values confined to tests.
//
// The returned stop closure releases the watcher; it is safe to call more
// than once.
func Path(v Revalidator, path string, dispatch func(func())) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}

	done := make(chan struct{})
	target := filepath.Clean(path)
	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) == target {
					dispatch(func() { _ = v.Revalidate() })
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			close(done)
			watcher.Close()
		})
	}
	return stop, nil
}
