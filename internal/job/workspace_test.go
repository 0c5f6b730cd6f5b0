package job

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWorkspaceLifecycle(t *testing.T) {
	ws, err := NewWorkspace()
	if err != nil {
		t.Fatalf("NewWorkspace failed: %v", err)
	}

	if ws.ID == "" {
		t.Error("missing workspace id")
	}
	if info, err := os.Stat(ws.Dir); err != nil || !info.IsDir() {
		t.Fatalf("workspace dir not created: %v", err)
	}

	inner := ws.Path("captions.srt")
	if filepath.Dir(inner) != ws.Dir {
		t.Errorf("Path resolved outside workspace: %s", inner)
	}
	if err := os.WriteFile(inner, []byte("x"), 0644); err != nil {
		t.Fatalf("write into workspace: %v", err)
	}

	ws.Cleanup()
	if _, err := os.Stat(ws.Dir); !os.IsNotExist(err) {
		t.Error("workspace not removed by Cleanup")
	}
}

func TestWorkspacesAreDistinct(t *testing.T) {
	a, err := NewWorkspace()
	if err != nil {
		t.Fatalf("NewWorkspace failed: %v", err)
	}
	defer a.Cleanup()

	b, err := NewWorkspace()
	if err != nil {
		t.Fatalf("NewWorkspace failed: %v", err)
	}
	defer b.Cleanup()

	if a.Dir == b.Dir || a.ID == b.ID {
		t.Error("two runs must not share a workspace")
	}
}
