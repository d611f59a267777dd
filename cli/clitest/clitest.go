// © 2025 The licensehdr authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package clitest provides a harness for table-driven tests of
// [cli.App] implementations.
package clitest

import (
	"bytes"
	"context"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	"licensehdr/cli"
)

// Case describes a single invocation of an application under test.
type Case[A cli.App] struct {
	// Args are the command-line arguments passed to the app.
	Args []string
	// Stdin is the standard input of the app. Defaults to an empty reader.
	Stdin io.Reader
	// Env contains environment variables visible to the app.
	Env map[string]string
	// WantErr, if non-nil, asserts via [errors.Is] that the app returns
	// an error matching it.
	WantErr error
	// WantErrType, if non-nil, asserts via [errors.As] that the app
	// returns an error of the same type. It must be a value of the
	// error type to match, for example &MyError{}.
	WantErrType any
	// WantInStdout asserts that standard output contains this string.
	WantInStdout string
	// WantInStderr asserts that standard error contains this string.
	WantInStderr string
	// WantNothingPrinted asserts that nothing was written to standard
	// output or standard error.
	WantNothingPrinted bool
	// CheckFunc runs after the app, for assertions on the app state or
	// on the filesystem.
	CheckFunc func(t *testing.T, app A)
}

// Run runs each case as a subtest. The setup function constructs a fresh
// app for every case.
func Run[A cli.App](t *testing.T, setup func(t *testing.T) A, cases map[string]Case[A]) {
	t.Helper()
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			app := setup(t)

			stdin := tc.Stdin
			if stdin == nil {
				stdin = strings.NewReader("")
			}

			var stdout, stderr bytes.Buffer
			env := &cli.Env{
				Args:   tc.Args,
				Stdin:  stdin,
				Stdout: &stdout,
				Stderr: &stderr,
				Getenv: func(key string) string { return tc.Env[key] },
			}

			err := cli.Run(cli.WithEnv(context.Background(), env), app)
			checkErr(t, err, tc.WantErr, tc.WantErrType)

			if tc.WantNothingPrinted {
				if stdout.Len() > 0 {
					t.Errorf("nothing should be printed to stdout, got: %q", stdout.String())
				}
				if stderr.Len() > 0 {
					t.Errorf("nothing should be printed to stderr, got: %q", stderr.String())
				}
			}

			if tc.WantInStdout != "" && !strings.Contains(stdout.String(), tc.WantInStdout) {
				t.Errorf("stdout must contain %q, got: %q", tc.WantInStdout, stdout.String())
			}
			if tc.WantInStderr != "" && !strings.Contains(stderr.String(), tc.WantInStderr) {
				t.Errorf("stderr must contain %q, got: %q", tc.WantInStderr, stderr.String())
			}

			if tc.CheckFunc != nil {
				tc.CheckFunc(t, app)
			}
		})
	}
}

func checkErr(t *testing.T, err, wantErr error, wantErrType any) {
	t.Helper()
	switch {
	case wantErr != nil:
		if !errors.Is(err, wantErr) {
			t.Fatalf("want error matching %v, got %v", wantErr, err)
		}
	case wantErrType != nil:
		target := reflect.New(reflect.TypeOf(wantErrType))
		if !errors.As(err, target.Interface()) {
			t.Fatalf("want error of type %T, got %v", wantErrType, err)
		}
	default:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
}
