package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "absent.yaml")}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestGenerate_Interactive(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "2025\n2\n", "--out", dir)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if !strings.Contains(out, yearPrompt) || !strings.Contains(out, monthPrompt) {
		t.Errorf("output missing prompts:\n%s", out)
	}
	want := filepath.Join(dir, "BBYCAL_February_2025.docx")
	if !strings.Contains(out, "Calendar saved as "+want) {
		t.Errorf("output = %q, want saved message for %s", out, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("Stat() error = %v", err)
	}
}

func TestGenerate_Args(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "", "generate", "2024", "12", "--out", dir, "--format", "png")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.Contains(out, yearPrompt) {
		t.Errorf("prompted although year was given:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "BBYCAL_December_2024.png")); err != nil {
		t.Errorf("Stat() error = %v", err)
	}
}

func TestGenerate_InvalidInputExitsNormally(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"month out of range", "2025\n13\n", nil, msgInvalidMonth},
		{"month zero via flag", "", []string{"--year", "2025", "--month", "0"}, msgInvalidMonth},
		{"non-numeric year", "twenty\n", nil, msgInvalidNumbers},
		{"non-numeric month", "2025\nfeb\n", nil, msgInvalidNumbers},
		{"no input", "", nil, msgInvalidNumbers},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			args := append([]string{"--out", dir}, tt.args...)

			out, err := execute(t, tt.stdin, args...)
			if err != nil {
				t.Fatalf("Execute() error = %v, want normal exit", err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output = %q, want %q", out, tt.want)
			}

			entries, _ := os.ReadDir(dir)
			if len(entries) != 0 {
				t.Errorf("document produced for invalid input")
			}
		})
	}
}

func TestGenerate_BadFormatFails(t *testing.T) {
	if _, err := execute(t, "", "generate", "2025", "1", "--format", "pdf", "--out", t.TempDir()); err == nil {
		t.Fatal("Execute() error = nil, want invalid format error")
	}
}

func TestPreview(t *testing.T) {
	out, err := execute(t, "", "preview", "--year", "2025", "--month", "2")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, want := range []string{"February 2025", "JAN-SUN", "MAR-1"} {
		if !strings.Contains(out, want) {
			t.Errorf("preview missing %q", want)
		}
	}
}

func TestResolveYearMonth(t *testing.T) {
	var out bytes.Buffer

	year, month, err := resolveYearMonth(strings.NewReader(" 7\n"), &out, []string{"2026"}, &generateOptions{})
	if err != nil {
		t.Fatalf("resolveYearMonth() error = %v", err)
	}
	if year != 2026 || month != time.July {
		t.Errorf("resolveYearMonth() = %d, %v, want 2026, July", year, month)
	}
	if strings.Contains(out.String(), yearPrompt) {
		t.Error("prompted for year although it was given")
	}

	_, _, err = resolveYearMonth(strings.NewReader(""), &out, nil, &generateOptions{year: "2025", month: "x"})
	var inputErr *InputError
	if !errors.As(err, &inputErr) || inputErr.Message != msgInvalidNumbers {
		t.Errorf("resolveYearMonth() error = %v, want InputError(%q)", err, msgInvalidNumbers)
	}
}
