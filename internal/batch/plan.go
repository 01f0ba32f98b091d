package batch

import (
	"context"
	"sync"

	"github.com/Nomadcxx/torrentsink/internal/torrent"
)

// Record is one scanned torrent file
type Record struct {
	Path       string
	MediaNames []string
	Err        error // read or decode failure
}

// Plan discovers every torrent under source and extracts its media names.
// Records come back in walk order whatever the worker count.
func (r *Runner) Plan(ctx context.Context, source string) ([]Record, error) {
	paths, err := Discover(r.fs, source, r.log)
	if err != nil {
		return nil, err
	}

	r.log.Debug().Int("torrents", len(paths)).Str("source", source).Msg("Discovered torrent files")

	records := make([]Record, len(paths))
	if r.workers <= 1 || len(paths) <= 1 {
		for i, path := range paths {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
			records[i] = r.extract(path)
		}
		return records, nil
	}

	if err := r.extractParallel(ctx, paths, records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *Runner) extract(path string) Record {
	names, err := torrent.ExtractFile(r.fs, path)
	return Record{Path: path, MediaNames: names, Err: err}
}

// extractParallel fills records[i] for paths[i] using a worker pool.
// Each worker writes only its own slots, so no locking is needed on records.
func (r *Runner) extractParallel(ctx context.Context, paths []string, records []Record) error {
	var wg sync.WaitGroup
	jobs := make(chan int)

	workers := r.workers
	if workers > len(paths) {
		workers = len(paths)
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				records[idx] = r.extract(paths[idx])
			}
		}()
	}

	var cancelled error
send:
	for i := range paths {
		select {
		case <-ctx.Done():
			cancelled = ctx.Err()
			break send
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	return cancelled
}
