// © 2025 The licensehdr authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package header

import (
	"slices"
	"strings"
)

// KeepRules designates lines that must survive a rewrite untouched.
type KeepRules struct {
	// Before lists prefixes of lines kept verbatim ahead of the header,
	// for example "#!" for shebang lines.
	Before []string
	// After lists prefixes of lines that end the rewritable region.
	// The first such line and everything following it are kept verbatim,
	// for example "# -*-" coding declarations.
	After []string
}

// Result is the outcome of rewriting a single file.
type Result struct {
	// Changed reports whether the file content needs to change.
	Changed bool
	// Lines is the new file content. It is nil when Changed is false.
	Lines []string
}

// EmptyHeaderStrips controls what happens to a leading comment block
// when the configured header is empty: true means the block is removed,
// false means the file is left untouched. The original fix-license-header
// hook strips, so we do too.
const EmptyHeaderStrips = true

// Scan states for the leading-region classification.
type scanState int

const (
	stateKeepBefore scanState = iota
	stateExistingHeader
	stateRemainder
)

// Rewrite classifies the leading lines of a file into a keep-before
// block, an existing header block and the remainder, then replaces the
// existing header block with spec.Lines unless it already matches
// exactly.
//
// The keep-before block is the run of leading non-empty lines matching
// one of keep.Before; it is never compared against the header. The
// existing header block is the following run of lines starting with
// spec.Prefix and not matching any keep.After prefix. Everything else,
// beginning with the first keep.After line if one ends the header block,
// is the remainder and is copied verbatim.
//
// Rewrite never reorders lines and is total over its inputs: every
// combination of arguments yields a deterministic Result.
func Rewrite(lines []string, spec Spec, keep KeepRules) Result {
	var (
		state     = stateKeepBefore
		keepEnd   int // index just past the keep-before block
		headerEnd int // index just past the existing header block
	)
scan:
	for i, line := range lines {
		switch state {
		case stateKeepBefore:
			if line != "" && hasAnyPrefix(line, keep.Before) {
				keepEnd = i + 1
				headerEnd = i + 1
				continue
			}
			state = stateExistingHeader
			fallthrough
		case stateExistingHeader:
			if strings.HasPrefix(line, spec.Prefix) && !hasAnyPrefix(line, keep.After) {
				headerEnd = i + 1
				continue
			}
			state = stateRemainder
			break scan
		}
	}

	if len(spec.Lines) == 0 && !EmptyHeaderStrips {
		return Result{}
	}

	existing := lines[keepEnd:headerEnd]
	if slices.Equal(existing, spec.Lines) {
		return Result{}
	}

	out := make([]string, 0, keepEnd+len(spec.Lines)+len(lines)-headerEnd)
	out = append(out, lines[:keepEnd]...)
	out = append(out, spec.Lines...)
	out = append(out, lines[headerEnd:]...)
	return Result{Changed: true, Lines: out}
}

func hasAnyPrefix(line string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}
