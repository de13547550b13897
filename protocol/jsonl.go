package protocol

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/lixenwraith/particle-morph/gesture"
)

// maxLine bounds one recorded frame
const maxLine = 1 << 20

// Reader reads a JSONL recording, one frame per line
type Reader struct {
	sc   *bufio.Scanner
	line int
}

// NewReader wraps r, blank lines are skipped
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	return &Reader{sc: sc}
}

// Next returns the next frame or io.EOF at the end of input
func (r *Reader) Next() (gesture.Frame, Header, error) {
	for r.sc.Scan() {
		r.line++
		data := bytes.TrimSpace(r.sc.Bytes())
		if len(data) == 0 {
			continue
		}
		f, hdr, err := Decode(data)
		if err != nil {
			return gesture.NoHand, Header{}, fmt.Errorf("line %d: %w", r.line, err)
		}
		return f, hdr, nil
	}
	if err := r.sc.Err(); err != nil {
		return gesture.NoHand, Header{}, fmt.Errorf("protocol: read recording: %w", err)
	}
	return gesture.NoHand, Header{}, io.EOF
}

// Writer appends frames to a JSONL recording
type Writer struct {
	w *bufio.Writer
}

// NewWriter wraps w, call Flush when done
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Write appends one frame followed by a newline
func (w *Writer) Write(f gesture.Frame, hdr Header) error {
	data, err := Encode(f, hdr)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(data); err != nil {
		return fmt.Errorf("protocol: write recording: %w", err)
	}
	return w.w.WriteByte('\n')
}

// Flush writes buffered frames to the underlying writer
func (w *Writer) Flush() error {
	return w.w.Flush()
}
