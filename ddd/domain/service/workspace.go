package service

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"video-edit-service/pkg/logger"
)

// Workspace owns the transient local files of one pipeline run. The
// directory name carries a fresh UUID so concurrent runs never share a
// path, and Cleanup removes everything exactly once on both the
// success and failure paths.
type Workspace struct {
	dir  string
	once sync.Once
}

// NewWorkspace 创建本次运行的临时工作目录
func NewWorkspace(baseDir string) (*Workspace, error) {
	dir := filepath.Join(baseDir, "run-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create workspace dir: %w", err)
	}
	return &Workspace{dir: dir}, nil
}

// Dir 获取工作目录路径
func (w *Workspace) Dir() string {
	return w.dir
}

// Path 获取工作目录内的文件路径
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.dir, name)
}

// Cleanup removes the run directory and every artifact in it. Safe to
// call more than once; only the first call does work.
func (w *Workspace) Cleanup() {
	w.once.Do(func() {
		if err := os.RemoveAll(w.dir); err != nil {
			logger.Error("Failed to clean up workspace", map[string]interface{}{
				"dir":   w.dir,
				"error": err.Error(),
			})
		}
	})
}
