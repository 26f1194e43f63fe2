package remember

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveLoadForget(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "credentials.txt"))

	if _, ok, err := f.Load(); ok || err != nil {
		t.Fatalf("expected nothing remembered, ok=%v err=%v", ok, err)
	}

	if err := f.Save("alice", true); err != nil {
		t.Fatal(err)
	}
	name, ok, err := f.Load()
	if err != nil || !ok || name != "alice" {
		t.Fatalf("Load = %q, %v, %v", name, ok, err)
	}

	raw, _ := os.ReadFile(f.Path)
	if string(raw) != "alice" {
		t.Errorf("file should hold only the username, got %q", raw)
	}

	if err := f.Save("alice", false); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(f.Path); !os.IsNotExist(err) {
		t.Errorf("expected file to be removed, stat err=%v", err)
	}

	// forgetting twice is fine
	if err := f.Save("", false); err != nil {
		t.Errorf("second forget: %v", err)
	}
}
