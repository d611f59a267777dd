// © 2025 The licensehdr authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package version provides information about the current binary.
package version

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"

	"licensehdr/syncx"
)

// Info describes the build of the current binary.
type Info struct {
	Name      string
	Version   string
	Commit    string
	GoVersion string
}

// String implements [fmt.Stringer].
func (i Info) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s", i.Name, i.Version)
	if i.Commit != "" {
		fmt.Fprintf(&sb, " (commit %s)", i.Commit)
	}
	fmt.Fprintf(&sb, "\nbuilt with %s\n", i.GoVersion)
	return sb.String()
}

var cmdName syncx.Lazy[string]

// CmdName returns the base name of the current binary.
func CmdName() string {
	return cmdName.Get(func() string {
		exe, err := os.Executable()
		if err != nil {
			return "licensehdr"
		}
		return strings.TrimSuffix(filepath.Base(exe), ".exe")
	})
}

var info syncx.Lazy[Info]

// Version returns information about the current binary, derived from
// the build info embedded by the Go toolchain.
func Version() Info {
	return info.Get(func() Info {
		i := Info{
			Name:      CmdName(),
			Version:   "devel",
			GoVersion: runtime.Version(),
		}
		bi, ok := debug.ReadBuildInfo()
		if !ok {
			return i
		}
		if bi.Main.Version != "" {
			i.Version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				i.Commit = s.Value
			}
		}
		return i
	})
}
