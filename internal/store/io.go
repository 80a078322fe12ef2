package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// readFile reads path; a missing file yields nil, nil.
func readFile(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return b, nil
}

// readJSON reads path into out and reports whether the file existed.
func readJSON(path string, out any) (bool, error) {
	b, err := readFile(path)
	if err != nil || b == nil {
		return false, err
	}
	if err := json.Unmarshal(b, out); err != nil {
		return true, errors.Wrapf(err, "decode %s", path)
	}
	return true, nil
}

// writeFile writes bytes via a temp file, then atomically replaces the target.
func writeFile(path string, b []byte, mode os.FileMode) error {
	tmp, err := stageFile(path, b, mode)
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp) }()
	return commitFile(tmp, path)
}

// stageFile writes b to a temp file beside path and returns its name. The
// caller commits it with commitFile or removes it.
func stageFile(path string, b []byte, mode os.FileMode) (string, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", errors.Wrapf(err, "create %s", dir)
	}

	f, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return "", errors.Wrap(err, "create temp file")
	}
	tmp := f.Name()
	fail := func(err error, msg string) (string, error) {
		_ = f.Close()
		_ = os.Remove(tmp)
		return "", errors.Wrap(err, msg)
	}

	if _, err := f.Write(b); err != nil {
		return fail(err, "write temp file")
	}
	if err := f.Chmod(mode); err != nil {
		return fail(err, "chmod temp file")
	}
	if err := f.Sync(); err != nil {
		return fail(err, "sync temp file")
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return "", errors.Wrap(err, "close temp file")
	}
	return tmp, nil
}

// commitFile moves a staged temp file over path.
func commitFile(tmp, path string) error {
	return errors.Wrapf(os.Rename(tmp, path), "replace %s", path)
}
