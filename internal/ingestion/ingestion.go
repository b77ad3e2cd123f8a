package ingestion

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/salespulse/internal/logger"
	"github.com/guttosm/salespulse/internal/storage"
)

const (
	filePattern      = "*.csv"
	maxParallel      = 7
	defaultBatchSize = 5000
)

// Options tunes a directory import.
type Options struct {
	Parallel  int  // concurrent files, clamped to 1..7; 0 means min(7, NumCPU)
	BatchSize int  // rows per COPY batch; 0 means 5000
	Force     bool // re-import files already present in the import log
}

// ProcessDirectory imports every "*.csv" file found in dir.
//
// Behavior:
//   - Files are processed concurrently with a bounded semaphore.
//   - Each file is validated and persisted in batches (parseAndPersistFile).
//   - A file listed in the import log is skipped unless opts.Force is set.
//   - If any file returns error, cancels the rest and returns that error.
//
// Returns:
//   - error: first error encountered (if any).
func ProcessDirectory(ctx context.Context, dir string, clients storage.ClientsRepository, sales storage.SalesRepository, opts Options) error {
	files, err := filepath.Glob(filepath.Join(dir, filePattern))
	if err != nil {
		return fmt.Errorf("list %s: %w", dir, err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no %s files found in %s", filePattern, dir)
	}
	sort.Strings(files)

	limit := parallelism(opts.Parallel)
	batch := opts.BatchSize
	if batch <= 0 {
		batch = defaultBatchSize
	}

	logger.L().Info().Int("files", len(files)).Str("dir", dir).Int("max_parallel", limit).Int("batch", batch).Msg("import start")

	resolver := newEmailResolver(clients)

	// errgroup will cancel siblings on first error.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			return importFile(gctx, f, i+1, len(files), resolver, sales, batch, opts.Force)
		})
	}

	return g.Wait()
}

func importFile(ctx context.Context, path string, idx, total int, resolver *emailResolver, sales storage.SalesRepository, batch int, force bool) error {
	start := time.Now()
	base := filepath.Base(path)
	log := logger.L().With().Str("file", base).Int("idx", idx).Int("total", total).Logger()

	log.Info().Msg("file start")

	exists, err := sales.HasImport(ctx, base)
	if err != nil {
		log.Error().Err(err).Msg("check import log failed")
		return fmt.Errorf("file %s: check import log: %w", path, err)
	}
	if exists && !force {
		log.Info().Bool("skipped", true).Msg("already imported")
		return nil
	}

	rows, err := parseAndPersistFile(ctx, path, resolver, sales, batch)
	if err != nil {
		log.Error().Dur("elapsed", time.Since(start)).Err(err).Msg("file failed")
		return fmt.Errorf("file %s: %w", path, err)
	}
	if err := sales.RecordImport(ctx, base, rows); err != nil {
		log.Error().Err(err).Msg("update import log failed")
		return fmt.Errorf("file %s: record import: %w", path, err)
	}

	log.Info().Int("rows", rows).Dur("elapsed", time.Since(start)).Bool("force", force).Msg("file done")
	return nil
}

// parallelism defaults to min(7, NumCPU) or clamps the requested value to 1..7.
func parallelism(requested int) int {
	if requested > 0 {
		return min(requested, maxParallel)
	}
	return min(runtime.NumCPU(), maxParallel)
}
