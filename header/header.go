// © 2025 The licensehdr authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package header builds canonical license headers and rewrites the
// leading comment region of files to match them.
package header

import (
	"errors"
	"fmt"
	"strings"
)

// Spec is the canonical header a compliant file must begin with, after
// any keep-before lines. It is built once per run and never mutated.
type Spec struct {
	// Prefix is the literal string marking a line as a comment,
	// for example "#" or "//". An empty prefix is unsupported.
	Prefix string
	// Lines are the header lines in canonical form, each already
	// carrying the comment prefix and no line terminator.
	Lines []string
}

// ErrConfig indicates that a header cannot be built from the supplied
// configuration.
var ErrConfig = errors.New("invalid header configuration")

// Build constructs a [Spec] from the license text and additional lines.
//
// It selects num lines of licenseLines starting at start, trims the
// surrounding whitespace of each and prepends prefix. A selection that
// extends past the end of the license text is clamped, but a start
// position entirely beyond it is an error. Each line of addLines is
// appended after the license-derived lines, prefixed the same way.
//
// A nil licenseLines means no license file is configured; only addLines
// contribute to the header then.
func Build(licenseLines []string, start, num int, addLines []string, prefix string) (Spec, error) {
	if start < 0 || num < 0 {
		return Spec{}, fmt.Errorf("%w: start (%d) and num (%d) must not be negative", ErrConfig, start, num)
	}

	s := Spec{Prefix: prefix}
	if licenseLines != nil && num > 0 {
		if start >= len(licenseLines) {
			return Spec{}, fmt.Errorf("%w: start %d is past the end of the license text (%d lines)", ErrConfig, start, len(licenseLines))
		}
		end := min(start+num, len(licenseLines))
		for _, line := range licenseLines[start:end] {
			s.Lines = append(s.Lines, prefixed(prefix, strings.TrimSpace(line)))
		}
	}
	for _, line := range addLines {
		s.Lines = append(s.Lines, prefixed(prefix, line))
	}
	return s, nil
}

// prefixed prepends the comment prefix to line. Empty lines become the
// bare prefix so that the header contains no trailing whitespace.
func prefixed(prefix, line string) string {
	if line == "" {
		return prefix
	}
	return prefix + " " + line
}
