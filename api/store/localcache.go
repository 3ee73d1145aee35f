/* localcache.go
 * Contains the local bracket cache: one JSON file per (mode, user) holding the canonical
 * bracket prediction document. Resolved documents are written back here so later loads never
 * regress to an earlier source. A corrupt or missing file reads as absent
 */

package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"scorecast/api/shared"
)

type LocalCache struct {
	Dir string
}

// NewLocalCache creates the cache directory if needed.
func NewLocalCache(dir string) (*LocalCache, error) {
	if dir == "" {
		return nil, fmt.Errorf("cache dir cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache dir: %w", err)
	}
	return &LocalCache{Dir: dir}, nil
}

// LoadBracket reads the cached bracket document for a user. The second return
// value is false when no readable cache entry exists; a corrupt file is
// treated the same as a missing one.
func (c *LocalCache) LoadBracket(mode shared.Mode, userID string) (*shared.BracketPrediction, bool) {
	data, err := os.ReadFile(c.path(mode, userID))
	if err != nil {
		return nil, false
	}
	var pred shared.BracketPrediction
	if err := json.Unmarshal(data, &pred); err != nil {
		return nil, false
	}
	return &pred, true
}

// SaveBracket writes the canonical bracket document for a user.
func (c *LocalCache) SaveBracket(mode shared.Mode, userID string, pred shared.BracketPrediction) error {
	data, err := json.MarshalIndent(pred, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode bracket cache entry: %w", err)
	}
	if err := os.WriteFile(c.path(mode, userID), data, 0o644); err != nil {
		return fmt.Errorf("failed to write bracket cache entry: %w", err)
	}
	return nil
}

func (c *LocalCache) path(mode shared.Mode, userID string) string {
	// userID comes from trusted collaborators, but keep the filename flat anyway
	safe := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(userID)
	return filepath.Join(c.Dir, fmt.Sprintf("bracket_%s_%s.json", mode, safe))
}
