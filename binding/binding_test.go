package binding

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/gesturekit/gesture"
)

func TestParse(t *testing.T) {
	data := []byte(`
bindings:
  single-tap: select
  double-tap: open
  long-press: context-menu
  scroll: pan
  scale: zoom
`)
	m, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}

	if m.Len() != 5 {
		t.Errorf("Len = %d, want 5", m.Len())
	}

	tests := []struct {
		kind gesture.Kind
		want string
	}{
		{gesture.KindSingleTap, "select"},
		{gesture.KindDoubleTap, "open"},
		{gesture.KindLongPress, "context-menu"},
		{gesture.KindScroll, "pan"},
		{gesture.KindScale, "zoom"},
	}
	for _, tt := range tests {
		got, ok := m.Resolve(tt.kind)
		if !ok {
			t.Errorf("Resolve(%v) not bound", tt.kind)
			continue
		}
		if got != tt.want {
			t.Errorf("Resolve(%v) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestParseUnknownKind(t *testing.T) {
	_, err := Parse([]byte("bindings:\n  triple-tap: select\n"))
	if err == nil {
		t.Fatal("Parse with unknown kind: expected error")
	}
	if !strings.Contains(err.Error(), "triple-tap") {
		t.Errorf("error = %v, want it to name the bad key", err)
	}
}

func TestParseEmptyAction(t *testing.T) {
	_, err := Parse([]byte("bindings:\n  single-tap: \"\"\n"))
	if err == nil {
		t.Fatal("Parse with empty action: expected error")
	}
}

func TestParseInvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("bindings: [broken")); err == nil {
		t.Fatal("Parse invalid YAML: expected error")
	}
}

func TestParseEmptyDocument(t *testing.T) {
	m, err := Parse([]byte(""))
	if err != nil {
		t.Fatalf("Parse empty document error = %v", err)
	}
	if m.Len() != 0 {
		t.Errorf("Len = %d, want 0", m.Len())
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bindings.yaml")
	if err := os.WriteFile(path, []byte("bindings:\n  fling: momentum\n"), 0o644); err != nil {
		t.Fatalf("WriteFile error = %v", err)
	}

	m, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error = %v", err)
	}
	if action, ok := m.Resolve(gesture.KindFling); !ok || action != "momentum" {
		t.Errorf("Resolve(fling) = %q, %v, want momentum, true", action, ok)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("LoadFile missing file: expected error")
	}
}

func TestBindAndResolve(t *testing.T) {
	m := New()
	if _, ok := m.Resolve(gesture.KindRotate); ok {
		t.Error("Resolve on empty map reported a binding")
	}

	m.Bind(gesture.KindRotate, "rotate-view")
	if action, ok := m.Resolve(gesture.KindRotate); !ok || action != "rotate-view" {
		t.Errorf("Resolve = %q, %v, want rotate-view, true", action, ok)
	}

	m.Bind(gesture.KindRotate, "spin")
	if action, _ := m.Resolve(gesture.KindRotate); action != "spin" {
		t.Errorf("rebind: Resolve = %q, want spin", action)
	}
}

func TestKindsOrdered(t *testing.T) {
	m := New()
	m.Bind(gesture.KindRotate, "a")
	m.Bind(gesture.KindDown, "b")
	m.Bind(gesture.KindScroll, "c")

	got := m.Kinds()
	want := []gesture.Kind{gesture.KindDown, gesture.KindScroll, gesture.KindRotate}
	if len(got) != len(want) {
		t.Fatalf("Kinds len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Kinds[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
