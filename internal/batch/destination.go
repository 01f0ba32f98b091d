package batch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/Nomadcxx/torrentsink/internal/apperrors"
)

// LockPath returns the lock file guarding replacement of dir. It sits next
// to dir, never inside it, so it survives the RemoveAll.
func LockPath(dir string) string {
	dir = filepath.Clean(dir)
	return filepath.Join(filepath.Dir(dir), "."+filepath.Base(dir)+".lock")
}

// destLock is an exclusive claim on a destination directory
type destLock struct {
	fs   afero.Fs
	path string
	file afero.File
}

func acquireLock(fs afero.Fs, dir string) (*destLock, error) {
	path := LockPath(dir)

	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create parent directory: %w", err)
	}

	f, err := fs.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("lock %s exists: another run is active or a previous replacement failed; remove it once the destination is checked", path)
		}
		return nil, fmt.Errorf("failed to create lock %s: %w", path, err)
	}

	fmt.Fprintf(f, "pid=%d started=%s\n", os.Getpid(), time.Now().Format(time.RFC3339))

	return &destLock{fs: fs, path: path, file: f}, nil
}

// fail records cause in the lock file and leaves it in place so the next
// run refuses the half-replaced destination.
func (l *destLock) fail(cause error) {
	fmt.Fprintf(l.file, "failed=%s error=%v\n", time.Now().Format(time.RFC3339), cause)
	l.file.Close()
}

func (l *destLock) release() error {
	l.file.Close()
	return l.fs.Remove(l.path)
}

// ReplaceDir deletes dir with everything under it and recreates it empty,
// holding the destination lock for the duration.
func ReplaceDir(fs afero.Fs, dir string) error {
	lock, err := acquireLock(fs, dir)
	if err != nil {
		return &apperrors.DestinationError{Path: dir, Err: err}
	}

	if err := fs.RemoveAll(dir); err != nil {
		lock.fail(err)
		return &apperrors.DestinationError{Path: dir, Partial: true, Err: fmt.Errorf("remove: %w", err)}
	}

	if err := fs.MkdirAll(dir, 0755); err != nil {
		lock.fail(err)
		return &apperrors.DestinationError{Path: dir, Partial: true, Err: fmt.Errorf("create: %w", err)}
	}

	if err := lock.release(); err != nil {
		return &apperrors.DestinationError{Path: dir, Err: fmt.Errorf("release lock: %w", err)}
	}

	return nil
}
