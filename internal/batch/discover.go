package batch

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/Nomadcxx/torrentsink/internal/torrent"
)

// Discover walks root in lexical order and returns every .torrent file.
// Unreadable entries below root are logged and skipped; an unreadable root
// is an error.
func Discover(fs afero.Fs, root string, log zerolog.Logger) ([]string, error) {
	var paths []string

	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			log.Warn().Err(err).Str("path", path).Msg("Skipping unreadable path")
			return nil
		}

		if info.IsDir() {
			return nil
		}

		if torrent.IsTorrentFile(info.Name()) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk source folder %s: %w", root, err)
	}

	return paths, nil
}
