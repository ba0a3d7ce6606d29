package main

import (
	"strings"
	"testing"
)

func TestCompilePipeline(t *testing.T) {
	ir, err := compile("function main() -> i32 { return 2 + 2; }", "demo", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(ir, "; ModuleID = 'demo'\nsource_filename = \"demo\"\n") {
		t.Fatalf("unexpected module header: %q", ir)
	}
	if !strings.Contains(ir, "ret i32 4") {
		t.Fatalf("expected constant-folded return, got: %s", ir)
	}
}

func TestCompileReportsDiagnostics(t *testing.T) {
	_, err := compile("function main() -> i32 { return unknown; }", "demo", nil)
	if err == nil {
		t.Fatalf("expected an error for an unknown identifier")
	}
	if !strings.Contains(err.Error(), "LOWER_UNKNOWN_NAME") {
		t.Fatalf("expected the diagnostic code in the error message, got: %v", err)
	}
}

func TestCompileResolvesConfiguredConstants(t *testing.T) {
	constants := constantsFromConfig(config{Constants: map[string]float64{"pi": 3.14}})
	ir, err := compile("function main() -> f64 { return pi; }", "demo", constants)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(ir, "ret double") {
		t.Fatalf("expected the named constant to fold straight to a return, got: %s", ir)
	}
}

func TestRunLintReportsEveryError(t *testing.T) {
	root := newRootCommand()
	var stdout, stderr strings.Builder
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := runLint(root, "function main() -> i32 { return 1 }")
	if err == nil {
		t.Fatalf("expected lint to report an error")
	}
	if stderr.Len() == 0 {
		t.Fatalf("expected the error to be printed to stderr")
	}
}

func TestRunLintCleanSourceReportsNoIssues(t *testing.T) {
	root := newRootCommand()
	var stdout strings.Builder
	root.SetOut(&stdout)
	if err := runLint(root, "function main() -> i32 { return 1; }"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout.String(), "no issues found") {
		t.Fatalf("expected a no-issues message, got: %q", stdout.String())
	}
}
