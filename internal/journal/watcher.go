package journal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/journal-relay/backend/internal/event"
	"github.com/rs/zerolog"
)

// Sink receives decoded events, in line order.
type Sink interface {
	Dispatch(ev event.Event)
}

// Watcher tails the newest journal file in a directory and feeds every
// complete line through the decoder. It is the single line source; Run must
// not be called concurrently.
type Watcher struct {
	log      zerolog.Logger
	dir      string
	interval time.Duration
	replay   bool
	decoder  *Decoder
	sink     Sink

	path   string
	offset int64
	primed bool
}

// NewWatcher builds a watcher over dir. With replay set the file current at
// startup is read from its beginning; otherwise only lines appended after
// startup are delivered. Files that appear later are always read in full.
func NewWatcher(logger zerolog.Logger, dir string, interval time.Duration, replay bool, decoder *Decoder, sink Sink) *Watcher {
	return &Watcher{
		log:      logger.With().Str("component", "watcher").Logger(),
		dir:      dir,
		interval: interval,
		replay:   replay,
		decoder:  decoder,
		sink:     sink,
	}
}

// Run polls until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info().Str("dir", w.dir).Dur("interval", w.interval).Msg("Journal watcher started")
	w.poll()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Journal watcher stopped")
			return nil
		case <-ticker.C:
			w.poll()
		}
	}
}

func (w *Watcher) poll() {
	path, err := newestJournal(w.dir)
	if err != nil {
		if !errors.Is(err, errNoJournal) {
			w.log.Warn().Err(err).Msg("Failed to list journal directory")
		}
		return
	}

	if path != w.path {
		w.switchTo(path)
	}
	w.drain()
}

// drain delivers the complete lines of the current file past the offset.
func (w *Watcher) drain() {
	offset, err := readLines(w.path, w.offset, func(line string) {
		for _, ev := range w.decoder.Decode(line) {
			w.sink.Dispatch(ev)
		}
	})
	if err != nil {
		w.log.Warn().Err(err).Str("file", w.path).Msg("Failed to read journal")
	}
	w.offset = offset
}

// switchTo follows path, first finishing the lines the game wrote to the
// previous file before it moved on.
func (w *Watcher) switchTo(path string) {
	if w.path != "" {
		w.drain()
	}
	w.path = path
	w.offset = 0
	w.decoder.SetFileName(filepath.Base(path))

	if !w.primed {
		w.primed = true
		if !w.replay {
			if info, err := os.Stat(path); err == nil {
				w.offset = info.Size()
			}
		}
	}
	w.log.Info().Str("file", filepath.Base(path)).Int64("offset", w.offset).Msg("Following journal file")
}

var errNoJournal = errors.New("no journal files")

// newestJournal returns the most recently modified Journal.*.log in dir.
func newestJournal(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("reading journal dir %s: %w", dir, err)
	}

	var bestPath string
	var bestTime time.Time
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "Journal.") || !strings.HasSuffix(name, ".log") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		// Names embed a sortable timestamp, which breaks ties on coarse
		// filesystem clocks.
		if bestPath == "" || info.ModTime().After(bestTime) ||
			(info.ModTime().Equal(bestTime) && name > filepath.Base(bestPath)) {
			bestTime = info.ModTime()
			bestPath = filepath.Join(dir, name)
		}
	}
	if bestPath == "" {
		return "", errNoJournal
	}
	return bestPath, nil
}

// readLines calls fn for each complete line after offset and returns the
// offset just past the last complete line. A trailing partial line is left
// for the next read.
func readLines(path string, offset int64, fn func(line string)) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return offset, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return offset, err
	}
	if info.Size() < offset {
		// Truncated or replaced in place.
		offset = 0
	}
	if offset > 0 {
		if _, err := f.Seek(offset, io.SeekStart); err != nil {
			return offset, err
		}
	}

	reader := bufio.NewReader(f)
	for {
		line, err := reader.ReadBytes('\n')
		if len(line) > 0 && line[len(line)-1] == '\n' {
			offset += int64(len(line))
			fn(strings.TrimRight(string(line), "\r\n"))
		}
		if err == io.EOF {
			return offset, nil
		}
		if err != nil {
			return offset, err
		}
	}
}
