// © 2025 The licensehdr authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Licensehdr enforces a canonical license header in text files.

It is designed to run as a pre-commit hook. The header is built from the
first lines of a license file (when -license-file is given) and any -add
lines, each prefixed with the comment marker. For every file named on
the command line, licensehdr checks whether the leading comment block
matches the header and rewrites it when it does not. Lines matching a
-keep-before prefix (such as "#!" shebangs) stay untouched ahead of the
header; the first line matching a -keep-after prefix (such as "# -*-"
coding declarations) ends the rewritable region.

Licensehdr exits with status 0 when every file is already compliant,
1 when it updated at least one file, and 2 when a file could not be
processed or the configuration is invalid.

Default settings can be kept in a TOML file passed via -config:

	license_file = "LICENSE"
	num = 2
	comment_prefix = "#"
	keep_before = ["#!"]
	keep_after = ["# -*-"]
	ignore = ["vendor/**"]

Explicitly passed flags override the config file; list-valued settings
are combined.
*/
package main

import (
	_ "embed"

	"licensehdr/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
