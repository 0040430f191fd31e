package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/papapumpkin/phase0/internal/boundary"
)

func TestPrinter_Debug(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := NewWithWriter(&buf)
	p.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("Debug should be silent when not verbose, got %q", buf.String())
	}

	p.SetVerbose(true)
	p.Debug("shown")
	if !strings.Contains(buf.String(), "debug: shown") {
		t.Errorf("expected debug line, got %q", buf.String())
	}
}

func TestPrinter_PlainOutputHasNoEscapes(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := NewWithWriter(&buf)
	p.Info("info")
	p.Error("boom")
	p.Success("done")

	if strings.Contains(buf.String(), "\033[") {
		t.Errorf("plain printer emitted ANSI codes: %q", buf.String())
	}
	for _, s := range []string{"info", "error: boom", "✓ done"} {
		if !strings.Contains(buf.String(), s) {
			t.Errorf("expected output to contain %q, got:\n%s", s, buf.String())
		}
	}
}

func TestPrinter_FindingAndSummary(t *testing.T) {
	t.Parallel()

	findings := []boundary.Finding{
		{
			Edge:     boundary.Edge{From: "packages/shared/a.ts", To: "apps/web/b.tsx"},
			FromType: "shared",
			ToType:   "web",
			Kind:     boundary.FindingDenied,
		},
		{
			Edge:     boundary.Edge{From: "tools/x.ts", To: "apps/web/b.tsx"},
			ToType:   "web",
			Kind:     boundary.FindingUnclassified,
		},
	}

	var buf bytes.Buffer
	p := NewWithWriter(&buf)
	for _, f := range findings {
		p.Finding(f)
	}
	p.CheckSummary(5, findings)

	checks := []struct {
		name   string
		substr string
	}{
		{"denied marker", "✗ packages/shared/a.ts -> apps/web/b.tsx: shared may not import web"},
		{"gap marker", "? tools/x.ts -> apps/web/b.tsx: unclassified (? -> web)"},
		{"totals", "5 import(s) checked: 1 denied, 1 unclassified"},
	}
	for _, c := range checks {
		if !strings.Contains(buf.String(), c.substr) {
			t.Errorf("expected output to contain %s (%q), got:\n%s", c.name, c.substr, buf.String())
		}
	}
}

func TestPrinter_CleanSummary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	NewWithWriter(&buf).CheckSummary(3, nil)
	if !strings.Contains(buf.String(), "3 import(s) checked, no boundary violations") {
		t.Errorf("unexpected summary: %q", buf.String())
	}
}

func TestPrinter_PolicySummary(t *testing.T) {
	t.Parallel()

	pol, err := boundary.Compile(boundary.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	NewWithWriter(&buf).PolicySummary("boundaries.toml", pol)
	want := "boundaries.toml: 4 module type(s) [web, mobile, api, shared], default disallow"
	if !strings.Contains(buf.String(), want) {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}
