package transcribe

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/skillsenselab/localstt/internal/apperr"
)

// Validator rejects uploads whose filename extension is not on the
// allow-list. It runs before any other work: no temp file is created
// and no engine is invoked for a rejected upload.
type Validator struct {
	allowed map[string]struct{}
	// sorted copy for deterministic error messages
	allowedList []string
}

// NewValidator builds a validator from the allow-list. Extensions are
// normalized to lowercase with a leading dot.
func NewValidator(extensions []string) *Validator {
	allowed := make(map[string]struct{}, len(extensions))
	list := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if _, ok := allowed[ext]; ok {
			continue
		}
		allowed[ext] = struct{}{}
		list = append(list, ext)
	}
	sort.Strings(list)
	return &Validator{allowed: allowed, allowedList: list}
}

// Validate extracts the lowercase extension (including the leading dot)
// from the filename and checks it against the allow-list. An absent
// filename yields an empty extension and is always rejected. On success
// the normalized extension is returned for use as the temp-file suffix.
func (v *Validator) Validate(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := v.allowed[ext]; !ok {
		return "", apperr.UnsupportedFileType(ext, v.allowedList)
	}
	return ext, nil
}

// Allowed returns the sorted allow-list.
func (v *Validator) Allowed() []string {
	return v.allowedList
}
