// Package fileio provides the line-level file helpers the vendor store reads
// from and appends to.
package fileio

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// ReadLines returns every line of the file at path, without line endings.
// Lines have no length limit.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		if line != "" || err == nil {
			line = strings.TrimSuffix(line, "\n")
			lines = append(lines, strings.TrimSuffix(line, "\r"))
		}
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}
}

// AppendLine writes line followed by a newline to the end of the file at
// path, creating the file if needed.
func AppendLine(line, path string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s for append: %w", path, err)
	}

	if _, err := f.WriteString(line + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// Source reads vendor rows from a file.
type Source struct {
	Path string
}

// ReadLines implements core.LineSource.
func (s Source) ReadLines(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ReadLines(s.Path)
}

// Sink appends vendor rows to a file. Appends through the same Sink are
// serialized.
type Sink struct {
	Path string

	mu sync.Mutex
}

// NewSink returns a Sink writing to path.
func NewSink(path string) *Sink {
	return &Sink{Path: path}
}

// AppendLine implements core.LineSink.
func (s *Sink) AppendLine(ctx context.Context, line string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return AppendLine(line, s.Path)
}
