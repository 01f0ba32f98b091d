// Package batch renames and copies torrent files into a destination
// directory and builds the torrent-name and media-name manifests.
package batch

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/spf13/afero"

	"github.com/Nomadcxx/torrentsink/internal/apperrors"
	"github.com/Nomadcxx/torrentsink/internal/config"
	"github.com/Nomadcxx/torrentsink/internal/manifest"
	"github.com/Nomadcxx/torrentsink/internal/normalizer"
	"github.com/Nomadcxx/torrentsink/internal/torrent"
)

// SkipReason explains why a torrent produced no output
type SkipReason string

const (
	SkipNoMedia   SkipReason = "no_media"
	SkipAmbiguous SkipReason = "ambiguous"
	SkipDecode    SkipReason = "decode"
	SkipCopy      SkipReason = "copy"
)

// Operation is a single torrent copy
type Operation struct {
	Source      string // Original .torrent path
	Destination string // Renamed .torrent path
	Name        string // Normalized name, without extension
	MediaName   string // Media file the name was derived from
	Completed   bool
}

// Skip records a torrent that was left out of the output
type Skip struct {
	Path   string
	Reason SkipReason
	Err    error
}

// Result holds what a run produced. TorrentNames and MediaNames may differ
// in length: a media name is only listed when its extension matches
// case-insensitively.
type Result struct {
	TorrentNames []string
	MediaNames   []string
	Operations   []Operation
	Skipped      []Skip
	DryRun       bool
}

// SkipCount returns how many torrents were skipped for reason
func (r *Result) SkipCount(reason SkipReason) int {
	return lo.CountBy(r.Skipped, func(s Skip) bool {
		return s.Reason == reason
	})
}

// Options configures a Runner
type Options struct {
	Fs      afero.Fs       // defaults to the OS filesystem
	Logger  zerolog.Logger // zero value discards output
	Workers int            // torrents extracted concurrently, <= 1 is sequential
	DryRun  bool           // plan only: no destination replacement, copies or manifests
}

// Runner executes batch runs
type Runner struct {
	fs      afero.Fs
	log     zerolog.Logger
	workers int
	dryRun  bool
}

// New creates a Runner
func New(opts Options) *Runner {
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Runner{
		fs:      fs,
		log:     opts.Logger,
		workers: opts.Workers,
		dryRun:  opts.DryRun,
	}
}

// Run replaces the destination folder, copies every single-media torrent
// under its normalized name and writes both manifests.
func (r *Runner) Run(ctx context.Context, cfg *config.Config) (*Result, error) {
	result := &Result{DryRun: r.dryRun}

	if !r.dryRun {
		if err := ReplaceDir(r.fs, cfg.DestFolder); err != nil {
			return nil, err
		}
		r.log.Info().Str("dest", cfg.DestFolder).Msg("Destination folder recreated")
	}

	records, err := r.Plan(ctx, cfg.SourceFolder)
	if err != nil {
		return nil, err
	}

	for _, rec := range records {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		r.apply(rec, cfg.DestFolder, result)
	}

	if r.dryRun {
		return result, nil
	}

	if err := manifest.Write(r.fs, cfg.TorrentsManifestPath(), result.TorrentNames); err != nil {
		return nil, err
	}
	r.log.Info().Str("path", cfg.TorrentsManifestPath()).Int("entries", len(result.TorrentNames)).Msg("Torrents manifest written")

	if err := manifest.Write(r.fs, cfg.MediaManifestPath(), result.MediaNames); err != nil {
		return nil, err
	}
	r.log.Info().Str("path", cfg.MediaManifestPath()).Int("entries", len(result.MediaNames)).Msg("Media manifest written")

	return result, nil
}

// apply handles one scanned torrent, in walk order
func (r *Runner) apply(rec Record, dest string, result *Result) {
	base := filepath.Base(rec.Path)

	switch {
	case rec.Err != nil:
		r.log.Error().Err(rec.Err).Str("torrent", base).Msg("Cannot read torrent, skipping")
		result.Skipped = append(result.Skipped, Skip{Path: rec.Path, Reason: SkipDecode, Err: rec.Err})
		return

	case len(rec.MediaNames) == 0:
		r.log.Debug().Str("torrent", base).Msg("No media files listed")
		result.Skipped = append(result.Skipped, Skip{Path: rec.Path, Reason: SkipNoMedia})
		return

	case len(rec.MediaNames) > 1:
		err := &apperrors.AmbiguousError{Path: rec.Path, Files: rec.MediaNames}
		r.log.Warn().Str("torrent", base).Strs("files", rec.MediaNames).
			Msg("Multiple media files found, cannot determine the new torrent name")
		result.Skipped = append(result.Skipped, Skip{Path: rec.Path, Reason: SkipAmbiguous, Err: err})
		return
	}

	media := rec.MediaNames[0]
	name := normalizer.Normalize(normalizer.StripExt(media))
	op := Operation{
		Source:      rec.Path,
		Destination: filepath.Join(dest, name+torrent.Extension),
		Name:        name,
		MediaName:   media,
	}

	if !r.dryRun {
		if err := copyFile(r.fs, op.Source, op.Destination); err != nil {
			r.log.Error().Err(err).Str("torrent", base).Msg("Copy failed, skipping")
			result.Operations = append(result.Operations, op)
			result.Skipped = append(result.Skipped, Skip{Path: rec.Path, Reason: SkipCopy, Err: err})
			return
		}
		r.log.Info().Str("torrent", base).Str("as", name+torrent.Extension).Msg("Copied torrent")
	}
	op.Completed = true

	result.Operations = append(result.Operations, op)
	result.TorrentNames = append(result.TorrentNames, name)
	if torrent.IsMediaName(media) {
		result.MediaNames = append(result.MediaNames, media)
	}
}
