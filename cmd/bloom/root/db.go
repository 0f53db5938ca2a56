package root

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"skillbloom/internal/config"
	"skillbloom/internal/engine"
	"skillbloom/internal/generate"
	"skillbloom/internal/roadmap"
	"skillbloom/internal/storage"
)

func loadConfig() (config.Config, error) {
	return config.Load("")
}

func openDB(ctx context.Context, cfg config.Config) (*sql.DB, func(), error) {
	path := cfg.DBPath
	if path == "" {
		var err error
		path, err = storage.ResolveDBPath()
		if err != nil {
			return nil, nil, err
		}
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}

	// One-shot legacy import; a no-op on every run after the first.
	if legacyPath, err := storage.DefaultLegacyPath(); err == nil {
		if _, err := storage.MigrateLegacy(ctx, db, legacyPath, time.Now()); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
	}

	cleanup := func() {
		_ = db.Close()
	}
	return db, cleanup, nil
}

func openService(ctx context.Context) (*engine.Service, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	db, cleanup, err := openDB(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return engine.NewService(db), cleanup, nil
}

// newGenerator picks the backend: the real API when a key is configured,
// the mock otherwise (or always with forceMock). The bool reports whether
// mock data is in play so callers can say so.
func newGenerator(cfg config.Config, forceMock bool) (generate.Generator, bool) {
	if forceMock || cfg.APIKey == "" {
		return generate.Mock{}, true
	}
	return generate.NewAnthropic(cfg.APIKey, cfg.Model), false
}

// resolveRoadmap finds a roadmap by exact id, unique id prefix, or
// case-insensitive title. An empty ref means the active roadmap.
func resolveRoadmap(ctx context.Context, svc *engine.Service, ref string) (*roadmap.Roadmap, error) {
	if ref == "" {
		rm, err := svc.ActiveRoadmap(ctx)
		if err != nil {
			return nil, err
		}
		if rm == nil {
			return nil, fmt.Errorf("no active roadmap; run `bloom grow` or `bloom use`")
		}
		return rm, nil
	}

	all, err := svc.RoadmapRepo().ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var byPrefix, byTitle []*roadmap.Roadmap
	for i := range all {
		rm := &all[i]
		if rm.ID == ref {
			return rm, nil
		}
		if strings.HasPrefix(rm.ID, ref) {
			byPrefix = append(byPrefix, rm)
		}
		if strings.EqualFold(rm.Title, ref) {
			byTitle = append(byTitle, rm)
		}
	}

	if len(byPrefix) == 1 {
		return byPrefix[0], nil
	}
	if len(byTitle) == 1 {
		return byTitle[0], nil
	}
	if len(byPrefix) > 1 || len(byTitle) > 1 {
		return nil, fmt.Errorf("%q matches multiple roadmaps; use a longer id", ref)
	}
	return nil, fmt.Errorf("no roadmap matches %q", ref)
}
