// © 2025 The licensehdr authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package logger

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"licensehdr/testutil"
)

func TestLogfWriter(t *testing.T) {
	var (
		logged  bool
		message string
	)
	logf := Logf(func(format string, args ...any) {
		logged = true
		message = fmt.Sprintf(format, args...)
	})
	logf.Write([]byte("hello"))
	testutil.AssertEqual(t, logged, true)
	testutil.AssertEqual(t, message, "hello")
}

func TestContextLogger(t *testing.T) {
	var buf bytes.Buffer

	l := New(nil)
	l.Attach(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: l.Level}))
	ctx := Put(context.Background(), l)

	Info(ctx, "header updated", slog.String("path", "a.py"))
	if got := buf.String(); !strings.Contains(got, "header updated") || !strings.Contains(got, "a.py") {
		t.Fatalf("log output missing message or attribute: %q", got)
	}

	buf.Reset()
	Debug(ctx, "below level")
	testutil.AssertEqual(t, buf.String(), "")

	l.Level.Set(slog.LevelDebug)
	Debug(ctx, "now visible")
	if got := buf.String(); !strings.Contains(got, "now visible") {
		t.Fatalf("debug message not logged after lowering level: %q", got)
	}
}

func TestGetReturnsDefaultLogger(t *testing.T) {
	l := Get(context.Background())
	if l == nil {
		t.Fatal("Get returned nil")
	}
	// Must not panic, and must discard.
	Info(context.Background(), "discarded")
}

func TestHandlerNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	h := Handler(&buf, slog.LevelInfo)

	l := New(nil)
	l.Attach(h)
	Info(Put(context.Background(), l), "plain text")
	if got := buf.String(); !strings.Contains(got, "plain text") {
		t.Fatalf("handler did not write message: %q", got)
	}
}

func TestDetach(t *testing.T) {
	var buf bytes.Buffer

	l := New(nil)
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: l.Level})
	l.Attach(h)
	ctx := Put(context.Background(), l)

	Info(ctx, "before detach")
	l.Detach(h)
	buf.Reset()
	Info(ctx, "after detach")
	testutil.AssertEqual(t, buf.String(), "")
}
