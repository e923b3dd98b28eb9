// SPDX-License-Identifier: MIT

package log

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"
)

// Configure latches on the first call, so the whole package shares one sink.
var logBuf bytes.Buffer

func TestMain(m *testing.M) {
	Configure(Config{Level: "debug", Output: &logBuf, Service: "propkit-test"})
	os.Exit(m.Run())
}

func TestWithComponent_AnnotatesEntries(t *testing.T) {
	logBuf.Reset()

	l := WithComponent("runner")
	l.Info().Msg("hello")

	out := logBuf.String()
	if !strings.Contains(out, `"component":"runner"`) {
		t.Errorf("missing component field: %s", out)
	}
	if !strings.Contains(out, `"service":"propkit-test"`) {
		t.Errorf("missing service field: %s", out)
	}
}

func TestRunIDRoundTrip(t *testing.T) {
	ctx := ContextWithRunID(context.Background(), "abc-123")
	if got := RunIDFromContext(ctx); got != "abc-123" {
		t.Fatalf("RunIDFromContext = %q, want abc-123", got)
	}
	if got := RunIDFromContext(context.Background()); got != "" {
		t.Fatalf("RunIDFromContext on empty ctx = %q, want empty", got)
	}

	logBuf.Reset()
	l := WithComponentFromContext(ctx, "runner")
	l.Info().Msg("tick")
	if out := logBuf.String(); !strings.Contains(out, `"run_id":"abc-123"`) {
		t.Errorf("missing run_id field: %s", out)
	}
}
