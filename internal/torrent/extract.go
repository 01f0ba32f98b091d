// Package torrent reads the media file names listed in a .torrent file.
package torrent

import (
	"fmt"
	"io"
	"strings"

	bencode "github.com/jackpal/bencode-go"
	"github.com/spf13/afero"

	"github.com/Nomadcxx/torrentsink/internal/apperrors"
)

// Extension of torrent metadata files. Matched case-sensitively.
const Extension = ".torrent"

// mediaExtensions are matched case-sensitively while extracting and
// case-insensitively by IsMediaName.
var mediaExtensions = []string{".mkv", ".avi"}

// Extract decodes bencoded torrent metadata and returns the last path
// segment of every info.files entry ending in a media extension.
// Torrents without a files list, or with entries of unexpected shape,
// yield no names.
func Extract(r io.Reader) ([]string, error) {
	data, err := bencode.Decode(r)
	if err != nil {
		return nil, err
	}

	root, ok := data.(map[string]interface{})
	if !ok {
		return nil, nil
	}
	info, ok := root["info"].(map[string]interface{})
	if !ok {
		return nil, nil
	}
	files, ok := info["files"].([]interface{})
	if !ok {
		return nil, nil
	}

	var names []string
	for _, f := range files {
		entry, ok := f.(map[string]interface{})
		if !ok {
			continue
		}
		name, ok := lastPathSegment(entry["path"])
		if !ok {
			continue
		}
		if hasMediaSuffix(name) {
			names = append(names, name)
		}
	}

	return names, nil
}

// ExtractFile opens path on fs and extracts its media names.
// Read and decode failures are returned as *apperrors.DecodeError.
func ExtractFile(fs afero.Fs, path string) ([]string, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, &apperrors.DecodeError{Path: path, Err: err}
	}
	defer f.Close()

	names, err := Extract(f)
	if err != nil {
		return nil, &apperrors.DecodeError{Path: path, Err: fmt.Errorf("bdecode: %w", err)}
	}
	return names, nil
}

// IsMediaName reports whether name ends in a media extension, ignoring case
func IsMediaName(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range mediaExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// IsTorrentFile reports whether name carries the .torrent extension
func IsTorrentFile(name string) bool {
	return strings.HasSuffix(name, Extension)
}

func hasMediaSuffix(name string) bool {
	for _, ext := range mediaExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

func lastPathSegment(v interface{}) (string, bool) {
	segments, ok := v.([]interface{})
	if !ok || len(segments) == 0 {
		return "", false
	}
	name, ok := segments[len(segments)-1].(string)
	return name, ok
}
