package logs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// pollInterval is how often followed files are re-checked for growth.
var pollInterval = 500 * time.Millisecond

// Follow streams data appended to each path to w until ctx is
// cancelled. Reading starts at the current end of file; a file that
// shrinks was truncated and reading restarts from its beginning. With
// more than one path every line is prefixed with the file's base
// name. Follow returns nil once ctx is cancelled.
func Follow(ctx context.Context, w io.Writer, paths ...string) error {
	if len(paths) == 0 {
		return fmt.Errorf("no files to follow")
	}
	if len(paths) == 1 {
		return followFile(ctx, w, paths[0], "")
	}

	shared := &syncWriter{w: w}
	g, gctx := errgroup.WithContext(ctx)
	for _, path := range paths {
		path := path
		g.Go(func() error {
			return followFile(gctx, shared, path, filepath.Base(path)+" | ")
		})
	}
	return g.Wait()
}

func followFile(ctx context.Context, w io.Writer, path, prefix string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	offset, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		return fmt.Errorf("seeking %s: %w", path, err)
	}

	out := &lineWriter{w: w, prefix: prefix}
	buf := make([]byte, 32*1024)
	for {
		n, err := file.Read(buf)
		if n > 0 {
			offset += int64(n)
			if _, werr := out.Write(buf[:n]); werr != nil {
				return fmt.Errorf("writing %s: %w", path, werr)
			}
			continue
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		info, err := file.Stat()
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}
		if info.Size() < offset {
			if _, err := file.Seek(0, io.SeekStart); err != nil {
				return fmt.Errorf("seeking %s: %w", path, err)
			}
			offset = 0
			continue
		}

		if !sleepContext(ctx, pollInterval) {
			return nil
		}
	}
}

// lineWriter inserts a prefix at the start of every forwarded line. A
// write may end mid-line; the next write continues that line without
// a prefix.
type lineWriter struct {
	w       io.Writer
	prefix  string
	midline bool
}

func (lw *lineWriter) Write(p []byte) (int, error) {
	if lw.prefix == "" {
		return lw.w.Write(p)
	}

	total := len(p)
	var buf bytes.Buffer
	for len(p) > 0 {
		if !lw.midline {
			buf.WriteString(lw.prefix)
			lw.midline = true
		}
		i := bytes.IndexByte(p, '\n')
		if i < 0 {
			buf.Write(p)
			break
		}
		buf.Write(p[:i+1])
		lw.midline = false
		p = p[i+1:]
	}
	if _, err := lw.w.Write(buf.Bytes()); err != nil {
		return 0, err
	}
	return total, nil
}

// syncWriter serializes writes from concurrent followers.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (sw *syncWriter) Write(p []byte) (int, error) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return sw.w.Write(p)
}

// sleepContext waits for d and reports whether the wait completed
// before ctx was cancelled.
func sleepContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
