// Package apperrors defines the error kinds a batch run can produce.
// ConfigError, DestinationError and ManifestError abort the run;
// DecodeError and AmbiguousError only skip the offending torrent.
package apperrors

import "fmt"

// ConfigError is returned when the configuration file is missing or invalid.
type ConfigError struct {
	Path  string
	Field string
	Err   error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	switch {
	case e.Field != "" && e.Err != nil:
		return fmt.Sprintf("config %s: %s: %v", e.Path, e.Field, e.Err)
	case e.Field != "":
		return fmt.Sprintf("config %s: missing required key %q", e.Path, e.Field)
	default:
		return fmt.Sprintf("config %s: %v", e.Path, e.Err)
	}
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Is allows for error checking with errors.Is().
func (e *ConfigError) Is(target error) bool {
	_, ok := target.(*ConfigError)
	return ok
}

// DecodeError is returned when a torrent file cannot be read or bdecoded.
type DecodeError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode torrent %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is allows for error checking with errors.Is().
func (e *DecodeError) Is(target error) bool {
	_, ok := target.(*DecodeError)
	return ok
}

// AmbiguousError is returned when a torrent lists more than one media file,
// so no single name can be chosen for it.
type AmbiguousError struct {
	Path  string
	Files []string
}

// Error implements the error interface.
func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("torrent %s lists %d media files, cannot choose a name", e.Path, len(e.Files))
}

// Is allows for error checking with errors.Is().
func (e *AmbiguousError) Is(target error) bool {
	_, ok := target.(*AmbiguousError)
	return ok
}

// DestinationError is returned when the destination directory cannot be
// replaced. Partial is set when the old contents may be half deleted.
type DestinationError struct {
	Path    string
	Partial bool
	Err     error
}

// Error implements the error interface.
func (e *DestinationError) Error() string {
	if e.Partial {
		return fmt.Sprintf("destination %s left partially replaced: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("destination %s: %v", e.Path, e.Err)
}

func (e *DestinationError) Unwrap() error { return e.Err }

// Is allows for error checking with errors.Is().
func (e *DestinationError) Is(target error) bool {
	_, ok := target.(*DestinationError)
	return ok
}

// ManifestError is returned when a manifest file cannot be written.
type ManifestError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *ManifestError) Error() string {
	return fmt.Sprintf("write manifest %s: %v", e.Path, e.Err)
}

func (e *ManifestError) Unwrap() error { return e.Err }

// Is allows for error checking with errors.Is().
func (e *ManifestError) Is(target error) bool {
	_, ok := target.(*ManifestError)
	return ok
}
