package compare

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// LineSink tees comparison output to a primary writer (normally stdout) and
// an optional append-only file. File write failures are dropped so a full
// disk never stalls the message stream.
type LineSink struct {
	mu   sync.Mutex
	out  io.Writer
	file *os.File
}

// NewLineSink wires out as the primary destination and, when path is
// non-empty, opens path in append mode as a secondary one.
func NewLineSink(out io.Writer, path string) (*LineSink, error) {
	s := &LineSink{out: out}
	if path != "" {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open output file %q: %w", path, err)
		}
		s.file = f
	}
	return s, nil
}

// Writeln writes one line to every destination.
func (s *LineSink) Writeln(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.out, line)
	if s.file != nil {
		_, _ = s.file.WriteString(line + "\n")
	}
}

// Close releases the output file, if any.
func (s *LineSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}
