package catalog

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"sync"

	_ "embed"

	"golang.org/x/sync/singleflight"

	"moodring/internal/domain"
)

//go:embed data/profiles.csv
var embeddedProfiles []byte

// Provider hands out the mood-profile catalog. Implementations cache the
// parsed catalog for the process lifetime; ClearCache forces a reload on
// the next Profiles call.
type Provider interface {
	Profiles(ctx context.Context) []domain.MoodProfile
	ClearCache()
}

// FileProvider loads profiles from a CSV file, falling back to the
// embedded default catalog when no path is configured. Loading is
// coalesced: concurrent first calls share one parse, after which the
// cached slice is returned synchronously and treated as read-only.
//
// A missing or corrupt source never fails the provider; it logs a warning
// and caches an empty catalog so the classifier can still fall back.
type FileProvider struct {
	path   string
	logger *slog.Logger

	group singleflight.Group

	mu     sync.RWMutex
	cached []domain.MoodProfile
	loaded bool
}

func NewFileProvider(path string, logger *slog.Logger) *FileProvider {
	return &FileProvider{path: path, logger: logger}
}

func (p *FileProvider) Profiles(ctx context.Context) []domain.MoodProfile {
	p.mu.RLock()
	if p.loaded {
		cached := p.cached
		p.mu.RUnlock()
		return cached
	}
	p.mu.RUnlock()

	out, _, _ := p.group.Do("load", func() (any, error) {
		p.mu.RLock()
		if p.loaded {
			cached := p.cached
			p.mu.RUnlock()
			return cached, nil
		}
		p.mu.RUnlock()

		profiles := p.load()
		p.mu.Lock()
		p.cached = profiles
		p.loaded = true
		p.mu.Unlock()
		return profiles, nil
	})
	return out.([]domain.MoodProfile)
}

func (p *FileProvider) ClearCache() {
	p.mu.Lock()
	p.cached = nil
	p.loaded = false
	p.mu.Unlock()
	p.group.Forget("load")
}

func (p *FileProvider) load() []domain.MoodProfile {
	data := embeddedProfiles
	source := "embedded"
	if p.path != "" {
		fileData, err := os.ReadFile(p.path)
		if err != nil {
			p.logger.Warn("catalog file unreadable, serving empty catalog", "path", p.path, "error", err)
			return []domain.MoodProfile{}
		}
		data = fileData
		source = p.path
	}

	profiles := parseProfiles(bytes.NewReader(data), func(line int, err error) {
		p.logger.Warn("skip malformed profile row", "source", source, "line", line, "error", err)
	})
	p.logger.Info("mood catalog loaded", "source", source, "profiles", len(profiles))
	return profiles
}
