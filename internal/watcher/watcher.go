// Copyright 2026 Dimitrij Drus <dadrus@gmx.de>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package watcher

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/lexv2-bot/validate-bot-config/internal/botcfg"
	"github.com/lexv2-bot/validate-bot-config/internal/x/errorchain"
)

type ChangeListener interface {
	OnChanged(path string)
}

type ChangeListenerFunc func(path string)

func (f ChangeListenerFunc) OnChanged(path string) { f(path) }

// Watcher notifies listeners about modifications of files. The directories of the files are
// watched, not the files themselves, so that files replaced by editors (write to a temporary
// file, then rename) are still tracked.
type Watcher struct {
	w    *fsnotify.Watcher
	m    map[string][]ChangeListener
	dirs map[string]struct{}
	l    zerolog.Logger

	mut sync.Mutex
	wg  sync.WaitGroup
}

func New(logger zerolog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errorchain.
			NewWithMessage(botcfg.ErrInternal, "failed to instantiating new file watcher").
			CausedBy(err)
	}

	return &Watcher{
		w:    fsw,
		m:    make(map[string][]ChangeListener),
		dirs: make(map[string]struct{}),
		l:    logger,
	}, nil
}

func (w *Watcher) Add(path string, cl ChangeListener) error {
	path = filepath.Clean(path)
	dir := filepath.Dir(path)

	w.mut.Lock()
	defer w.mut.Unlock()

	if _, ok := w.dirs[dir]; !ok {
		if err := w.w.Add(dir); err != nil {
			return errorchain.NewWithMessagef(botcfg.ErrInternal,
				"listener registration for file %s failed", path).CausedBy(err)
		}

		w.dirs[dir] = struct{}{}
	}

	w.m[path] = append(w.m[path], cl)

	return nil
}

// Start consumes the file system events in the background until Stop is called or
// the given context is done.
func (w *Watcher) Start(ctx context.Context) {
	w.l.Debug().Msg("Starting watching files for changes")

	w.wg.Add(1)

	go func() {
		defer w.wg.Done()

		w.startWatching(ctx)
	}()
}

func (w *Watcher) Stop() error {
	w.l.Debug().Msg("Stopping watching files for changes")

	err := w.w.Close()

	w.wg.Wait()

	return err
}

func (w *Watcher) startWatching(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-w.w.Events:
			if !ok {
				w.l.Debug().Msg("Watcher events channel closed")

				return
			}

			w.l.Trace().Str("_event", evt.String()).Msg("File system event received")

			if evt.Has(fsnotify.Write) || evt.Has(fsnotify.Create) {
				w.fireOnChange(filepath.Clean(evt.Name))
			}
		case err, ok := <-w.w.Errors:
			if !ok {
				w.l.Debug().Msg("Watcher error channel closed")

				return
			}

			w.l.Warn().Err(err).Msg("Watcher error received")
		}
	}
}

func (w *Watcher) fireOnChange(path string) {
	w.mut.Lock()
	listeners := w.m[path]
	w.mut.Unlock()

	for _, listener := range listeners {
		listener.OnChanged(path)
	}
}
