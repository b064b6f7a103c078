package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"simsiac/internal/catalog"
	"simsiac/internal/config"
	"simsiac/internal/menu"
)

func TestSplitKeys(t *testing.T) {
	got := splitKeys(" down, ,up,q ")
	want := []string{"down", "up", "q"}
	if len(got) != len(want) {
		t.Fatalf("splitKeys = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("splitKeys[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if splitKeys("") != nil {
		t.Error("expected nil for empty input")
	}
}

func TestLoadConfigFlags(t *testing.T) {
	t.Setenv("SIMSIAC_SCROLL_MODE", "")

	cmd := &cobra.Command{}
	cmd.Flags().String("mode", "", "")
	cmd.Flags().String("catalog", "", "")
	cmd.Flags().String("log-file", "", "")
	cmd.Flags().String("log-level", "", "")
	cmd.Flags().Set("mode", "step")
	cmd.Flags().Set("log-level", "debug")

	cfg, err := loadConfig(cmd)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Mode() != menu.ScrollStep {
		t.Errorf("expected step mode from flag, got %s", cfg.ScrollMode)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected debug level, got %s", cfg.LogLevel)
	}
	if cfg.LogFile == "" {
		t.Error("unset log-file flag must keep the default")
	}

	cmd.Flags().Set("mode", "sideways")
	if _, err := loadConfig(cmd); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestRunPrint(t *testing.T) {
	entries := []catalog.Entry{
		{Label: "alpha", Height: 3},
		{Label: "beta", Height: 5},
		{Label: "gamma", Height: 7},
		{Label: "delta", Height: 5},
		{Label: "omega", Height: 3},
	}

	var buf bytes.Buffer
	err := runPrint(context.Background(), &buf, config.Default(), entries, 40, 10, []string{"down"}, false)
	if err != nil {
		t.Fatalf("runPrint failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "gamma") || strings.Contains(out, "alpha") || strings.Contains(out, "delta") {
		t.Errorf("expected only gamma after page down:\n%s", out)
	}

	buf.Reset()
	if err := runPrint(context.Background(), &buf, config.Default(), entries, 40, 0, nil, false); err == nil {
		t.Error("expected error for zero height")
	}
}

func TestWriteEntries(t *testing.T) {
	entries := catalog.Demo()[:2]

	var buf bytes.Buffer
	if err := writeEntries(&buf, entries, "json"); err != nil {
		t.Fatalf("json: %v", err)
	}
	var f catalog.File
	if err := json.Unmarshal(buf.Bytes(), &f); err != nil {
		t.Fatalf("output is not json: %v", err)
	}
	if len(f.Items) != 2 || f.Items[0].Label != entries[0].Label {
		t.Errorf("unexpected items %+v", f.Items)
	}

	buf.Reset()
	if err := writeEntries(&buf, entries, "yaml"); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	parsed, err := catalog.ParseYAML(buf.Bytes())
	if err != nil || len(parsed) != 2 {
		t.Errorf("yaml round trip failed: %v %+v", err, parsed)
	}

	buf.Reset()
	if err := writeEntries(&buf, entries, "text"); err != nil {
		t.Fatalf("text: %v", err)
	}
	if strings.Count(buf.String(), "\n") != 2 {
		t.Errorf("expected 2 lines, got %q", buf.String())
	}

	if err := writeEntries(&buf, entries, "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestCatalogImportAndList(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "menu.db")
	logFile := filepath.Join(dir, "simsiac.log")
	src := filepath.Join(dir, "menu.yaml")
	doc := "items:\n  - label: One\n    height: 2\n  - label: Two\n    shortcut: t\n    height: 3\n    action: cpu\n"
	if err := os.WriteFile(src, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	defer rootCmd.SetOut(nil)

	rootCmd.SetArgs([]string{"catalog", "import", "--catalog", db, "--log-file", logFile, src})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if !strings.Contains(out.String(), "Imported 2 entries") {
		t.Errorf("unexpected import output %q", out.String())
	}

	out.Reset()
	rootCmd.SetArgs([]string{"catalog", "list", "--catalog", db, "--log-file", logFile, "--format", "json"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	var f catalog.File
	if err := json.Unmarshal(out.Bytes(), &f); err != nil {
		t.Fatalf("list output is not json: %v\n%s", err, out.String())
	}
	if len(f.Items) != 2 || f.Items[1].Label != "Two" || f.Items[1].Action != "cpu" {
		t.Errorf("unexpected catalog %+v", f.Items)
	}
}
