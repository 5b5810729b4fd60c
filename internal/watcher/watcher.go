// Package watcher converts files dropped into a directory, using fsnotify
// with per-file debouncing.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"go.uber.org/zap"

	docconv "github.com/porticus-lab/go-docconv"
	"github.com/porticus-lab/go-docconv/internal/sniff"
)

const defaultDebounce = 400 * time.Millisecond

// Converter is the subset of [docconv.Dispatcher] used by the watcher.
type Converter interface {
	Convert(ctx context.Context, doc docconv.Document, target docconv.Format) (*docconv.Result, error)
}

// Event describes one finished conversion.
type Event struct {
	JobID  string
	Source string
	Output string
	Err    error
}

// Watcher converts files created or written in an input directory and
// stores the results in an output directory.
type Watcher struct {
	input    string
	output   string
	target   docconv.Format
	conv     Converter
	debounce time.Duration
	logger   *zap.Logger
	onEvent  func(Event)

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	pending map[string]*time.Timer
	ctx     context.Context
	done    chan struct{}
	started bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(w *Watcher) { w.logger = l }
}

// WithDebounce sets how long a file must stay quiet before it is converted.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithEventHandler registers fn to be called after every conversion attempt.
func WithEventHandler(fn func(Event)) Option {
	return func(w *Watcher) { w.onEvent = fn }
}

// New creates a watcher converting files from input into output as target.
func New(input, output string, target docconv.Format, conv Converter, opts ...Option) *Watcher {
	w := &Watcher{
		input:    filepath.Clean(input),
		output:   filepath.Clean(output),
		target:   target,
		conv:     conv,
		debounce: defaultDebounce,
		logger:   zap.NewNop(),
		pending:  make(map[string]*time.Timer),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins watching. It returns once the watch is established; events
// are handled until ctx is cancelled or Stop is called. A stopped watcher
// may be started again.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return nil
	}
	if w.input == w.output {
		return errors.New("watch: input and output directories must differ")
	}
	if err := os.MkdirAll(w.input, 0o755); err != nil {
		return fmt.Errorf("watch: creating input directory: %w", err)
	}
	if err := os.MkdirAll(w.output, 0o755); err != nil {
		return fmt.Errorf("watch: creating output directory: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	if err := fw.Add(w.input); err != nil {
		_ = fw.Close()
		return fmt.Errorf("watch: adding %s: %w", w.input, err)
	}
	done := make(chan struct{})
	w.watcher = fw
	w.ctx = ctx
	w.done = done
	w.started = true
	w.logger.Info("watching directory",
		zap.String("input", w.input),
		zap.String("output", w.output),
		zap.Stringer("target", w.target),
	)
	go w.run(ctx, fw, done)
	return nil
}

func (w *Watcher) run(ctx context.Context, fw *fsnotify.Watcher, done <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			w.stop(done)
			return
		case <-done:
			return
		case ev, ok := <-fw.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	w.logger.Debug("watcher event", zap.String("op", ev.Op.String()), zap.String("path", ev.Name))
	switch {
	case ev.Has(fsnotify.Create), ev.Has(fsnotify.Write):
		if !eligible(ev.Name) {
			return
		}
		if info, err := os.Stat(ev.Name); err != nil || info.IsDir() {
			return
		}
		w.schedule(ev.Name)
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		w.cancel(ev.Name)
	}
}

// eligible skips hidden and editor temporary files.
func eligible(path string) bool {
	base := filepath.Base(path)
	return !strings.HasPrefix(base, ".") && !strings.HasPrefix(base, "~") && !strings.HasSuffix(base, ".tmp")
}

func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.pending[path]; ok {
		t.Stop()
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		ctx := w.ctx
		w.mu.Unlock()
		w.process(ctx, path)
	})
}

func (w *Watcher) cancel(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.pending[path]; ok {
		t.Stop()
		delete(w.pending, path)
	}
}

func (w *Watcher) process(ctx context.Context, path string) {
	ev := Event{JobID: uuid.NewString(), Source: path}
	ev.Output, ev.Err = w.ConvertFile(ctx, path)
	if ev.Err != nil {
		w.logger.Error("conversion failed",
			zap.String("job_id", ev.JobID),
			zap.String("path", path),
			zap.Error(ev.Err),
		)
	} else {
		w.logger.Info("converted",
			zap.String("job_id", ev.JobID),
			zap.String("path", path),
			zap.String("output", ev.Output),
		)
	}
	if w.onEvent != nil {
		w.onEvent(ev)
	}
}

// ConvertFile converts the file at path and writes the result into the
// output directory. It returns the path written.
func (w *Watcher) ConvertFile(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	doc := docconv.Document{
		Data:      data,
		MediaType: sniff.MediaType(path, data),
		FileName:  filepath.Base(path),
	}
	res, err := w.conv.Convert(ctx, doc, w.target)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(w.output, 0o755); err != nil {
		return "", err
	}
	out := filepath.Join(w.output, res.FileName())
	if err := res.WriteToFile(out, 0o644); err != nil {
		return "", err
	}
	return out, nil
}

// ConvertExisting converts every eligible file already in the input
// directory. Call it after Start to process files present at startup.
func (w *Watcher) ConvertExisting(ctx context.Context) error {
	entries, err := os.ReadDir(w.input)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() || !eligible(e.Name()) {
			continue
		}
		w.process(ctx, filepath.Join(w.input, e.Name()))
	}
	return nil
}

// Stop stops the watcher and drops pending conversions.
func (w *Watcher) Stop() {
	w.stop(nil)
}

// stop ends the running session. A non-nil session only matches the run it
// was started with, so a late cancel cannot stop a restarted watcher.
func (w *Watcher) stop(session <-chan struct{}) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.started || (session != nil && session != (<-chan struct{})(w.done)) {
		return
	}
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
	_ = w.watcher.Close()
	close(w.done)
	w.watcher = nil
	w.done = nil
	w.started = false
}
