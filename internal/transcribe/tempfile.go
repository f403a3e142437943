package transcribe

import (
	"fmt"
	"os"

	"github.com/skillsenselab/localstt/internal/apperr"
)

// TempFile is a uniquely named ephemeral file exclusively owned by the
// request that created it. It must not outlive the request's pipeline:
// Release is called on every exit path once acquisition succeeded.
type TempFile struct {
	path string
}

// CreateTempFile writes data to a newly created, uniquely named file
// carrying the given suffix. If the write fails, any partially created
// file is removed before the error is returned, so the caller never has
// cleanup to do for a failed acquisition.
func CreateTempFile(dir string, data []byte, suffix string) (*TempFile, error) {
	f, err := os.CreateTemp(dir, "upload-*"+suffix)
	if err != nil {
		return nil, apperr.StorageFailed(err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, apperr.StorageFailed(err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, apperr.StorageFailed(err)
	}

	return &TempFile{path: f.Name()}, nil
}

// Path returns the file's location on disk.
func (t *TempFile) Path() string {
	return t.path
}

// Release removes the backing file. It is safe to call when the file was
// already removed.
func (t *TempFile) Release() error {
	if err := os.Remove(t.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing temp file %s: %w", t.path, err)
	}
	return nil
}
