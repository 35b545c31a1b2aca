package rs274

import (
	"bufio"
	"bytes"
	"io"
)

// LineReader yields successive newline-terminated lines (the newline
// itself stripped) from an underlying transport. It is the external
// collaborator this package consumes but does not implement the
// transport side of: callers own the io.Reader and its lifetime.
//
// NextLine returns io.EOF once the final, possibly unterminated, line
// has been returned; it returns LineTooLong if a line exceeds the
// reader's configured maximum line length.
type LineReader interface {
	NextLine() ([]byte, error)
}

// bufLineReader is the default LineReader, built on bufio.Reader. It
// mirrors the teacher's own scanner-based line framing but exposes the
// EOF-without-trailing-newline behavior spec.md §4.8 requires: a final
// partial line with no '\n' is still returned once, before io.EOF.
type bufLineReader struct {
	r       *bufio.Reader
	maxLine int
	done    bool
}

// NewLineReader wraps r for line-oriented reading. maxLine bounds a
// single line's length; a non-positive value disables the bound.
func NewLineReader(r io.Reader, maxLine int) LineReader {
	return &bufLineReader{r: bufio.NewReader(r), maxLine: maxLine}
}

// NextLine accumulates via ReadSlice rather than ReadBytes: ReadBytes
// grows an internal buffer without bound on a long line, which would
// make a maxLine limit unenforceable. This loop checks the accumulated
// length itself after every fragment (not just on bufio.ErrBufferFull,
// which only fires once bufio's own internal buffer — unrelated to
// maxLine — is exhausted), so LineTooLong fires exactly at maxLine
// regardless of how that compares to bufio's default buffer size.
func (l *bufLineReader) NextLine() ([]byte, error) {
	if l.done {
		return nil, io.EOF
	}
	var line []byte
	for {
		frag, err := l.r.ReadSlice('\n')
		line = append(line, frag...)
		if l.maxLine > 0 && len(line) > l.maxLine {
			return nil, &LineTooLong{}
		}
		switch err {
		case nil:
			return bytes.TrimRight(line, "\r\n"), nil
		case bufio.ErrBufferFull:
			continue
		case io.EOF:
			l.done = true
			if len(line) == 0 {
				return nil, io.EOF
			}
			return bytes.TrimRight(line, "\r\n"), nil
		default:
			return nil, &ReadError{Err: err}
		}
	}
}

// MotionSink receives commands after the interpreter has applied modal
// state and reduced whatever expressions it could. It is the external
// collaborator that would drive real or simulated machine motion; this
// package only calls it, never implements it.
type MotionSink interface {
	// Move is called for G0/G1 once axis expressions are evaluated.
	// rapid distinguishes G0 (rapid) from G1 (feed-rate controlled).
	Move(axes map[byte]float32, rapid bool, feedrate float32)

	// SpindleCommand is called for M3/M4/M5.
	SpindleCommand(on bool, clockwise bool)

	// ToolChange is called for M6.
	ToolChange(tool uint64)

	// CoolantCommand is called for M7/M8/M9.
	CoolantCommand(c Coolant)

	// SpeedCommand is called for S<expr> once evaluated.
	SpeedCommand(rpm float32)

	// ToolSelect is called for T<expr> once evaluated.
	ToolSelect(tool float32)
}
