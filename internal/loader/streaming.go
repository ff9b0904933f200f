package loader

// streaming.go wraps raw file readers before they reach the CSV parser:
//
//   - skipBOM drops the UTF-8 byte order mark that Excel exports prepend
//   - utf8Sanitizer replaces invalid UTF-8 bytes with '?'
//   - countingReader tracks bytes read for the load log line
//
// Files declared as Latin-1 are decoded instead of sanitized.

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// skipBOM returns a reader positioned after a leading UTF-8 BOM, if any.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}

// utf8Sanitizer rewrites invalid UTF-8. A multi-byte sequence cut off at
// the end of a read is held back and completed by the next one.
type utf8Sanitizer struct {
	r    io.Reader
	buf  []byte // sanitized bytes not yet handed out
	tail []byte // incomplete rune held back from the last read
	err  error
	raw  []byte
}

// maxEmptyReads bounds consecutive (0, nil) reads from the source, as bufio does.
const maxEmptyReads = 100

func newUTF8Sanitizer(r io.Reader) *utf8Sanitizer {
	return &utf8Sanitizer{
		r:    r,
		tail: make([]byte, 0, utf8.UTFMax),
		raw:  make([]byte, 4096+utf8.UTFMax),
	}
}

func (s *utf8Sanitizer) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	for empty := 0; len(s.buf) == 0; empty++ {
		if s.err != nil {
			return 0, s.err
		}
		if empty >= maxEmptyReads {
			return 0, io.ErrNoProgress
		}
		s.fill()
	}

	n := copy(p, s.buf)
	s.buf = s.buf[n:]
	return n, nil
}

// fill reads the next chunk behind the held-back tail and sanitizes it into
// buf. At end of input the tail is flushed with its bytes replaced.
func (s *utf8Sanitizer) fill() {
	k := copy(s.raw, s.tail)
	s.tail = s.tail[:0]

	m, err := s.r.Read(s.raw[k:])
	data := s.raw[:k+m]

	if err != nil {
		s.err = err
	} else if t := incompleteTail(data); t > 0 {
		s.tail = append(s.tail, data[len(data)-t:]...)
		data = data[:len(data)-t]
	}
	s.buf = data[:sanitize(data)]
}

// incompleteTail returns how many trailing bytes form the start of a rune
// that is not complete yet.
func incompleteTail(data []byte) int {
	for i := 1; i <= utf8.UTFMax && i <= len(data); i++ {
		b := data[len(data)-i]
		if b&0xC0 == 0x80 {
			continue // continuation byte
		}
		if utf8.FullRune(data[len(data)-i:]) {
			return 0
		}
		return i
	}
	return 0
}

// sanitize replaces invalid bytes with '?' and returns the new length.
func sanitize(data []byte) int {
	if utf8.Valid(data) {
		return len(data)
	}

	w := 0
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			data[w] = '?'
			w++
			i++
			continue
		}
		copy(data[w:], data[i:i+size])
		w += size
		i += size
	}
	return w
}

// countingReader counts the bytes that pass through it.
type countingReader struct {
	r     io.Reader
	bytes int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.bytes += int64(n)
	return n, err
}

// decode wraps r for the named encoding. Unknown names are treated as UTF-8.
func decode(r io.Reader, encoding string) io.Reader {
	switch strings.ToLower(encoding) {
	case "latin1", "latin-1", "iso-8859-1":
		return charmap.ISO8859_1.NewDecoder().Reader(r)
	case "cp1252", "windows-1252":
		return charmap.Windows1252.NewDecoder().Reader(r)
	default:
		return newUTF8Sanitizer(skipBOM(r))
	}
}
