// Package registry persists the mapping from group names to markdown
// file paths in a single JSON document.
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/i7mada249/tnm/internal/core"
)

// ErrExists is returned by Create when the group name is already
// mapped and overwrite was not requested.
var ErrExists = errors.New("group already exists")

// ErrNotFound is returned by Delete for an unmapped group name.
var ErrNotFound = errors.New("group not found")

type Registry struct {
	filePath string
	logger   *zap.Logger
}

func New(filePath string, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		filePath: filePath,
		logger:   logger,
	}
}

// Load reads the registry file. An absent or unparsable file degrades
// to an empty mapping; corruption never reaches the caller.
func (r *Registry) Load() map[string]string {
	groups := map[string]string{}

	data, err := os.ReadFile(r.filePath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			r.logger.Warn("failed to read groups file", zap.String("path", r.filePath), zap.Error(err))
		}
		return groups
	}

	if err := json.Unmarshal(data, &groups); err != nil {
		r.logger.Warn("groups file is not valid JSON, treating as empty", zap.String("path", r.filePath), zap.Error(err))
		return map[string]string{}
	}

	return groups
}

// Save overwrites the registry file with the given mapping,
// pretty-printed with 2-space indentation. Parent directories are
// created as needed.
func (r *Registry) Save(groups map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(r.filePath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(groups, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal groups: %w", err)
	}

	if err := os.WriteFile(r.filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write groups file: %w", err)
	}

	return nil
}

// Create maps a group name to a file path. The path is stored
// expanded. When the target file does not exist yet it is pre-created
// empty on a best-effort basis; failure to pre-create it is non-fatal
// and the mapping is still saved.
func (r *Registry) Create(name string, path string, overwrite bool) error {
	groups := r.Load()

	if _, taken := groups[name]; taken && !overwrite {
		return ErrExists
	}

	expanded := core.ExpandUser(path)
	groups[name] = expanded

	if err := os.MkdirAll(filepath.Dir(expanded), 0755); err == nil {
		if file, err := os.OpenFile(expanded, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0644); err == nil {
			file.Close()
		}
	} else {
		r.logger.Debug("could not pre-create group file", zap.String("path", expanded), zap.Error(err))
	}

	return r.Save(groups)
}

// Resolve looks up the stored path for a group name.
func (r *Registry) Resolve(name string) (string, bool) {
	path, ok := r.Load()[name]
	return path, ok
}

// Delete removes a group mapping. The markdown file itself is never
// touched.
func (r *Registry) Delete(name string) error {
	groups := r.Load()
	if _, ok := groups[name]; !ok {
		return ErrNotFound
	}
	delete(groups, name)
	return r.Save(groups)
}

// Names returns all group names in sorted order.
func (r *Registry) Names() []string {
	names := lo.Keys(r.Load())
	sort.Strings(names)
	return names
}
