// © 2025 The licensehdr authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package textfile reads and writes line-oriented text files while
// preserving their line terminators.
package textfile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/natefinch/atomic"
)

// ErrNotText indicates that a file's content is not line-oriented text.
var ErrNotText = errors.New("not a text file")

// IsNotText reports whether err indicates non-text file content.
func IsNotText(err error) bool { return errors.Is(err, ErrNotText) }

// File is the decoded content of a single text file. Lines are stored
// without terminators; the terminator style and the presence of a final
// newline are remembered so that [File.Bytes] reproduces them.
type File struct {
	lines          []string
	crlf           bool
	noFinalNewline bool
}

// Read reads and decodes the file at path.
//
// The line terminator is sniffed from the first line, like the
// pre-commit hooks this tool descends from: a leading CRLF makes the
// whole file CRLF on output. Content containing NUL bytes or invalid
// UTF-8 is rejected with an error satisfying [IsNotText].
func Read(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Decode decodes raw file content into a [File].
func Decode(data []byte) (*File, error) {
	if bytes.IndexByte(data, 0) >= 0 || !utf8.Valid(data) {
		return nil, ErrNotText
	}

	f := new(File)
	if i := bytes.IndexByte(data, '\n'); i > 0 && data[i-1] == '\r' {
		f.crlf = true
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		f.noFinalNewline = true
	}

	if len(data) == 0 {
		return f, nil
	}
	lines := strings.Split(string(data), "\n")
	if !f.noFinalNewline {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	f.lines = lines
	return f, nil
}

// Lines returns the file's lines without terminators.
func (f *File) Lines() []string { return f.lines }

// SetLines replaces the file's lines, keeping the terminator style.
func (f *File) SetLines(lines []string) { f.lines = lines }

// CRLF reports whether the file uses CRLF line terminators.
func (f *File) CRLF() bool { return f.crlf }

// Bytes reassembles the file content, reproducing the original line
// terminator style and the missing final newline, if there was one.
func (f *File) Bytes() []byte {
	if len(f.lines) == 0 {
		return nil
	}
	eol := "\n"
	if f.crlf {
		eol = "\r\n"
	}
	var sb strings.Builder
	for i, line := range f.lines {
		sb.WriteString(line)
		if i < len(f.lines)-1 || !f.noFinalNewline {
			sb.WriteString(eol)
		}
	}
	return []byte(sb.String())
}

// Write persists the file to path, replacing it atomically.
func Write(path string, f *File) error {
	if err := atomic.WriteFile(path, bytes.NewReader(f.Bytes())); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
