// internal/bench/command.go
package bench

import (
	"context"
	"errors"

	"github.com/kaist-cp/rv6-tools/internal/appconfig"
	"github.com/kaist-cp/rv6-tools/internal/buildsys"
)

// RunBench is the CLI entry point for the benchmark runner.
func RunBench(ctx context.Context, cfg *appconfig.Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	return New(cfg, buildsys.NewMake(cfg.Dir)).Run(ctx)
}
