package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSectionsCommand(t *testing.T) {
	out, err := run(t, "sections")
	if err != nil {
		t.Fatalf("sections: %v", err)
	}
	for _, name := range []string{"home", "about", "skills", "projects", "contact"} {
		if !strings.Contains(out, "#"+name) {
			t.Errorf("missing %s in output:\n%s", name, out)
		}
	}
}

func TestExportCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	cfg := filepath.Join(t.TempDir(), "none.yml")

	out, err := run(t, "--config", cfg, "export", "--out", dir, "--theme", "light")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(out, "index.html") {
		t.Errorf("unexpected output: %s", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "index.html")); err != nil {
		t.Errorf("index.html not written: %v", err)
	}

	if _, err := run(t, "--config", cfg, "export", "--out", dir, "--theme", "sepia"); err == nil {
		t.Error("expected error for unknown theme")
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "portfolio ") {
		t.Errorf("unexpected output %q", out)
	}
}
