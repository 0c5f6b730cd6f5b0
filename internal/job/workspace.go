package job

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Workspace is the scoped temporary directory owning every intermediate
// file of a single run: the downloaded video, caption tracks, the palette
// and the staged GIF. It is removed on every exit path.
type Workspace struct {
	ID  string
	Dir string
}

func NewWorkspace() (*Workspace, error) {
	id := uuid.New().String()
	dir, err := os.MkdirTemp("", "gifclip-"+id[:8]+"-*")
	if err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	return &Workspace{ID: id, Dir: dir}, nil
}

// Path resolves name inside the workspace.
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.Dir, name)
}

// Cleanup removes the workspace and everything in it.
func (w *Workspace) Cleanup() {
	_ = os.RemoveAll(w.Dir)
}
