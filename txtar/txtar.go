// © 2025 The licensehdr authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package txtar implements a trivial text-based file archive format,
// used for test fixtures and configuration.
//
// The format consists of an optional comment followed by a sequence of
// file entries. Each entry begins with a line of the form "-- NAME --"
// and continues until the next such line or the end of the archive.
package txtar

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Archive is a collection of files with an optional leading comment.
type Archive struct {
	Comment []byte
	Files   []File
}

// File is a single file in an [Archive].
type File struct {
	Name string
	Data []byte
}

// Format serializes an Archive back into its textual form.
func Format(a *Archive) []byte {
	var buf bytes.Buffer
	buf.Write(fixEOL(a.Comment))
	for _, f := range a.Files {
		fmt.Fprintf(&buf, "-- %s --\n", f.Name)
		buf.Write(fixEOL(f.Data))
	}
	return buf.Bytes()
}

// ParseFile parses the named file as an archive.
func ParseFile(path string) (*Archive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data), nil
}

// Parse parses the serialized form of an Archive. The returned Archive
// shares storage with data.
func Parse(data []byte) *Archive {
	a := new(Archive)
	var name string
	a.Comment, name, data = findFileMarker(data)
	for name != "" {
		f := File{Name: name}
		f.Data, name, data = findFileMarker(data)
		a.Files = append(a.Files, f)
	}
	return a
}

var (
	markerStart = []byte("-- ")
	markerEnd   = []byte(" --")
)

// findFileMarker finds the next file marker in data, returning the data
// before the marker, the file name and the data after the marker line.
func findFileMarker(data []byte) (before []byte, name string, after []byte) {
	var i int
	for {
		if name, after = markerLine(data[i:]); name != "" {
			return fixEOL(data[:i]), name, after
		}
		j := bytes.IndexByte(data[i:], '\n')
		if j < 0 {
			return fixEOL(data), "", nil
		}
		i += j + 1
	}
}

// markerLine reports whether data begins with a file marker line and, if
// so, returns the file name and the data following the line.
func markerLine(data []byte) (name string, after []byte) {
	if !bytes.HasPrefix(data, markerStart) {
		return "", nil
	}
	var line []byte
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line, after = data[:i], data[i+1:]
	} else {
		line, after = data, nil
	}
	line = bytes.TrimSuffix(line, []byte("\r"))
	if !bytes.HasSuffix(line, markerEnd) || len(line) < len(markerStart)+len(markerEnd) {
		return "", nil
	}
	name = strings.TrimSpace(string(line[len(markerStart) : len(line)-len(markerEnd)]))
	if name == "" {
		return "", nil
	}
	return name, after
}

// fixEOL ensures that non-empty data ends with a newline.
func fixEOL(data []byte) []byte {
	if len(data) > 0 && !bytes.HasSuffix(data, []byte("\n")) {
		return append(data[:len(data):len(data)], '\n')
	}
	return data
}

// Extract writes each file of the archive to the corresponding path
// under dir, creating directories as needed. File names must be local
// paths in slash form.
func Extract(a *Archive, dir string) error {
	for _, f := range a.Files {
		if !filepath.IsLocal(filepath.FromSlash(f.Name)) {
			return fmt.Errorf("txtar: non-local file name %q", f.Name)
		}
		path := filepath.Join(dir, filepath.FromSlash(f.Name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, f.Data, 0o644); err != nil {
			return err
		}
	}
	return nil
}

// FromDir builds an archive from the contents of dir, with file names
// relative to dir in slash form.
func FromDir(dir string) (*Archive, error) {
	a := new(Archive)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		a.Files = append(a.Files, File{Name: filepath.ToSlash(rel), Data: data})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}
