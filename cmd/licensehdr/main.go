// © 2025 The licensehdr authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"licensehdr/batch"
	"licensehdr/cli"
	"licensehdr/header"
	"licensehdr/logger"
	"licensehdr/textfile"

	"github.com/BurntSushi/toml"
)

func main() { cli.Main(new(app)) }

// multiFlag collects the values of a repeatable string flag.
type multiFlag []string

func (f *multiFlag) String() string { return strings.Join(*f, ", ") }

func (f *multiFlag) Set(s string) error {
	*f = append(*f, s)
	return nil
}

type app struct {
	licenseFile   string
	start         int
	num           int
	add           multiFlag
	keepBefore    multiFlag
	keepAfter     multiFlag
	commentPrefix string
	configPath    string
	ignore        multiFlag
	dryRun        bool
	workers       int
	verbose       bool

	flags *flag.FlagSet
}

func (a *app) Flags(fs *flag.FlagSet) {
	a.flags = fs
	fs.StringVar(&a.licenseFile, "license-file", "", "License `file` to read the header from.")
	fs.IntVar(&a.start, "start", 0, "Number of license lines to skip.")
	fs.IntVar(&a.num, "num", 1, "Number of license lines to read.")
	fs.Var(&a.add, "add", "`line` to add after the license text (can be repeated).")
	fs.Var(&a.keepBefore, "keep-before", "Keep lines starting with this `prefix` before the header (can be repeated).")
	fs.Var(&a.keepAfter, "keep-after", "Keep lines starting with this `prefix` after the header (can be repeated).")
	fs.StringVar(&a.commentPrefix, "comment-prefix", "#", "Comment `prefix`.")
	fs.StringVar(&a.configPath, "config", "", "Read default settings from this TOML `file`.")
	fs.Var(&a.ignore, "ignore", "Skip files matching this `pattern` (can be repeated).")
	fs.BoolVar(&a.dryRun, "dry", false, "Report files that would change without rewriting them.")
	fs.IntVar(&a.workers, "j", 0, "Number of files to process in parallel (0 means GOMAXPROCS).")
	fs.BoolVar(&a.verbose, "verbose", false, "Enable debug logging.")
}

func (a *app) Run(ctx context.Context) error {
	env := cli.GetEnv(ctx)

	lg := logger.New(nil)
	if a.verbose {
		lg.Level.Set(slog.LevelDebug)
	}
	lg.Attach(logger.Handler(env.Stderr, lg.Level))
	ctx = logger.Put(ctx, lg)

	if a.configPath != "" {
		if err := a.applyConfig(a.configPath); err != nil {
			return &cli.ExitError{Code: 2, Err: err}
		}
	}

	var licenseLines []string
	if a.licenseFile != "" {
		lf, err := textfile.Read(a.licenseFile)
		if err != nil {
			return &cli.ExitError{Code: 2, Err: fmt.Errorf("reading license file: %w", err)}
		}
		licenseLines = lf.Lines()
		if licenseLines == nil {
			licenseLines = []string{}
		}
	}

	spec, err := header.Build(licenseLines, a.start, a.num, a.add, a.commentPrefix)
	if err != nil {
		return &cli.ExitError{Code: 2, Err: fmt.Errorf("%w: %w", cli.ErrInvalidArgs, err)}
	}

	var progress io.Writer
	if f, ok := env.Stderr.(*os.File); ok && cli.IsTerminal(int(f.Fd())) {
		progress = f
	}

	p := &batch.Processor{
		Header:   spec,
		Keep:     header.KeepRules{Before: a.keepBefore, After: a.keepAfter},
		Ignore:   a.ignore,
		Workers:  a.workers,
		DryRun:   a.dryRun,
		Progress: progress,
	}
	sum := p.Process(ctx, env.Args)

	for _, path := range sum.Updated() {
		if a.dryRun {
			env.Logf("Would update license header in %s", path)
		} else {
			fmt.Fprintf(env.Stdout, "Updated license header in %s\n", path)
		}
	}

	if code := sum.ExitCode(); code != 0 {
		return &cli.ExitError{Code: code}
	}
	return nil
}

// config mirrors the app's flags in a TOML file.
type config struct {
	LicenseFile   string   `toml:"license_file"`
	Start         int      `toml:"start"`
	Num           int      `toml:"num"`
	Add           []string `toml:"add"`
	KeepBefore    []string `toml:"keep_before"`
	KeepAfter     []string `toml:"keep_after"`
	CommentPrefix string   `toml:"comment_prefix"`
	Ignore        []string `toml:"ignore"`
}

// applyConfig fills in settings from a TOML config file. Flags passed
// explicitly on the command line win; list-valued settings combine, with
// config values first.
func (a *app) applyConfig(path string) error {
	var cfg config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	set := make(map[string]bool)
	if a.flags != nil {
		a.flags.Visit(func(f *flag.Flag) { set[f.Name] = true })
	}

	if md.IsDefined("license_file") && !set["license-file"] {
		a.licenseFile = cfg.LicenseFile
	}
	if md.IsDefined("start") && !set["start"] {
		a.start = cfg.Start
	}
	if md.IsDefined("num") && !set["num"] {
		a.num = cfg.Num
	}
	if md.IsDefined("comment_prefix") && !set["comment-prefix"] {
		a.commentPrefix = cfg.CommentPrefix
	}
	a.add = append(slices.Clone(cfg.Add), a.add...)
	a.keepBefore = append(slices.Clone(cfg.KeepBefore), a.keepBefore...)
	a.keepAfter = append(slices.Clone(cfg.KeepAfter), a.keepAfter...)
	a.ignore = append(slices.Clone(cfg.Ignore), a.ignore...)

	return nil
}
