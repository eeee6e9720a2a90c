package source

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/JonMunkholm/utiming/internal/core"
)

// Source kinds accepted by the RACES_SOURCE setting.
const (
	KindFS       = "fs"
	KindHTTP     = "http"
	KindPostgres = "postgres"
)

func init() {
	core.RegisterSource(core.SourceDriver{
		Kind:  KindFS,
		Label: "filesystem",
		Open: func(ctx context.Context, cfg core.SourceConfig) (core.Source, error) {
			if cfg.Dir == "" {
				return nil, errors.New("races directory is required")
			}
			info, err := os.Stat(cfg.Dir)
			if err != nil {
				return nil, err
			}
			if !info.IsDir() {
				return nil, fmt.Errorf("%s is not a directory", cfg.Dir)
			}
			return NewFS(os.DirFS(cfg.Dir), cfg.IndexName, cfg.MaxBytes), nil
		},
	})

	core.RegisterSource(core.SourceDriver{
		Kind:  KindHTTP,
		Label: "HTTP",
		Open: func(ctx context.Context, cfg core.SourceConfig) (core.Source, error) {
			src, err := NewHTTP(cfg.BaseURL, cfg.IndexName, cfg.FetchTimeout, cfg.MaxBytes)
			if err != nil {
				return nil, err
			}
			return src, nil
		},
	})

	core.RegisterSource(core.SourceDriver{
		Kind:  KindPostgres,
		Label: "PostgreSQL",
		Open: func(ctx context.Context, cfg core.SourceConfig) (core.Source, error) {
			src, err := OpenPostgres(ctx, cfg.DatabaseURL, cfg.MaxConns, cfg.MinConns)
			if err != nil {
				return nil, err
			}
			return src, nil
		},
	})
}
