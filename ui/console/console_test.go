package console

import (
	"bytes"
	"strings"
	"testing"

	"simsiac/internal/engine"
	"simsiac/internal/menu"
)

func TestColorFor(t *testing.T) {
	tests := []struct {
		status   string
		expected string
	}{
		{"WARN", colorYellow},
		{"CRIT", colorRed},
		{"OK", colorGreen},
		{"", colorGreen},
		{"UNKNOWN", colorGreen},
	}

	for _, tt := range tests {
		result := colorFor(tt.status)
		if result != tt.expected {
			t.Errorf("colorFor(%q) = %q; want %q", tt.status, result, tt.expected)
		}
	}
}

func TestBoxHeight(t *testing.T) {
	for _, h := range []int{1, 2, 3, 7} {
		lines := box(menu.NewItem("Item", h, menu.WithShortcut("i")), 30)
		if len(lines) != h {
			t.Errorf("height %d: got %d lines", h, len(lines))
		}
		if !strings.Contains(lines[0], "[i] Item") {
			t.Errorf("height %d: label missing from %q", h, lines[0])
		}
	}

	lines := box(menu.NewItem("A very long label that will not fit", 2), 10)
	if got := len([]rune(lines[0])); got > 10 {
		t.Errorf("label not truncated, line is %d runes: %q", got, lines[0])
	}
}

func TestPrint(t *testing.T) {
	var items []menu.Item
	for i, h := range []int{3, 5, 7, 5, 3} {
		items = append(items, menu.NewItem("item"+string(rune('A'+i)), h))
	}
	m, err := menu.New(30, 10, menu.WithItems(items))
	if err != nil {
		t.Fatalf("menu.New failed: %v", err)
	}

	var buf bytes.Buffer
	Print(&buf, m)
	out := buf.String()

	if !strings.Contains(out, "itemA") || !strings.Contains(out, "itemB") {
		t.Errorf("visible items missing:\n%s", out)
	}
	if strings.Contains(out, "itemC") {
		t.Errorf("hidden item printed:\n%s", out)
	}
	if !strings.Contains(out, "↓ 3 more") {
		t.Errorf("pending count missing:\n%s", out)
	}
	if !strings.Contains(out, "8/10 rows, 5 items") {
		t.Errorf("summary missing:\n%s", out)
	}

	// header + 8 body lines + pending + summary
	if n := strings.Count(out, "\n"); n != 11 {
		t.Errorf("expected 11 lines, got %d:\n%s", n, out)
	}
}

func TestPrintChecks(t *testing.T) {
	var buf bytes.Buffer
	PrintChecks(&buf, []engine.CheckResult{
		{Name: "cpu", Value: 12, Status: engine.StatusHealthy},
		{Name: "disk", Value: 95, Status: engine.StatusCritical},
	})
	out := buf.String()
	if !strings.Contains(out, "cpu") || !strings.Contains(out, "95.0") || !strings.Contains(out, "X") {
		t.Errorf("unexpected output:\n%s", out)
	}
}
