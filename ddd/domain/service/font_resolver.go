package service

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"video-edit-service/ddd/domain/gateway"
	"video-edit-service/ddd/domain/vo"
	"video-edit-service/pkg/config"
	"video-edit-service/pkg/errno"
	"video-edit-service/pkg/logger"
)

var fontExtensions = []string{".ttf", ".otf", ".ttc"}

// FontResolver maps logical font names to local files cached from the
// fonts/ storage prefix. Resolution happens before any overlay
// invocation is built; what happens on a miss is the configured
// missing-font policy, never a silent substitution.
type FontResolver struct {
	store       gateway.ArtifactStore
	cacheDir    string
	policy      string
	defaultFont string

	mu    sync.RWMutex
	paths map[string]string // logical name -> local path
}

// NewFontResolver 创建字体解析器
func NewFontResolver(store gateway.ArtifactStore, cfg config.SubtitleConfig) *FontResolver {
	return &FontResolver{
		store:       store,
		cacheDir:    cfg.FontCacheDir,
		policy:      cfg.MissingFontPolicy,
		defaultFont: cfg.DefaultFont,
		paths:       make(map[string]string),
	}
}

// Sync downloads fonts under the fonts/ prefix that are not cached yet
// and refreshes the name index from the cache directory.
func (r *FontResolver) Sync(ctx context.Context) error {
	if err := os.MkdirAll(r.cacheDir, 0o755); err != nil {
		return err
	}

	keys, err := r.store.List(ctx, gateway.KeyPrefixFonts)
	if err != nil {
		return errno.ErrStorageFailed.Wrapf("list fonts: %v", err)
	}
	for _, key := range keys {
		base := filepath.Base(key)
		if base == "" || base == "." {
			continue
		}
		local := filepath.Join(r.cacheDir, base)
		if _, err := os.Stat(local); err == nil {
			continue
		}
		if err := r.store.Download(ctx, key, local); err != nil {
			logger.Warn("Font download failed", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
			continue
		}
	}

	return r.reindex()
}

func (r *FontResolver) reindex() error {
	entries, err := os.ReadDir(r.cacheDir)
	if err != nil {
		return err
	}

	paths := make(map[string]string, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := strings.ToLower(filepath.Ext(name))
		for _, known := range fontExtensions {
			if ext == known {
				logical := strings.TrimSuffix(name, filepath.Ext(name))
				paths[logical] = filepath.Join(r.cacheDir, name)
				break
			}
		}
	}

	r.mu.Lock()
	r.paths = paths
	r.mu.Unlock()
	return nil
}

// Names 返回当前可用的字体逻辑名
func (r *FontResolver) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.paths))
	for name := range r.paths {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve 将逻辑字体名解析为本地文件路径
func (r *FontResolver) Resolve(name string) (string, error) {
	r.mu.RLock()
	path, ok := r.paths[name]
	fallback, fallbackOK := r.paths[r.defaultFont]
	r.mu.RUnlock()

	if ok {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	if r.policy == "fallback" && fallbackOK {
		logger.Warn("Font missing, substituting default", map[string]interface{}{
			"requested": name,
			"default":   r.defaultFont,
		})
		return fallback, nil
	}
	return "", errno.ErrFontNotResolved.Wrapf("%q", name)
}

// ResolveTrack sets each cue's FontFile from its own font name or the
// track default. Any unresolved font fails the whole track.
func (r *FontResolver) ResolveTrack(track *vo.SubtitleTrack) error {
	for i := range track.Cues {
		name := track.Cues[i].Style.FontName
		if name == "" {
			name = track.Default.FontName
		}
		if name == "" {
			name = r.defaultFont
		}
		if name == "" {
			return errno.ErrFontNotResolved.Wrapf("cue %d names no font and no default is configured", i)
		}
		path, err := r.Resolve(name)
		if err != nil {
			return err
		}
		track.Cues[i].FontFile = path
	}
	return nil
}
