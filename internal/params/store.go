package params

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/zillafan80/inarbit-console/internal/models"
)

// Defaults are the parameters used until the operator saves their own.
func Defaults() models.ReconcileParams {
	return models.ReconcileParams{
		TradingMode:   "paper",
		ConfirmLive:   false,
		Limit:         20,
		MaxRounds:     3,
		SleepMs:       500,
		AutoCancel:    false,
		MaxAgeSeconds: 300,
	}
}

// Store persists the operator's default reconciliation parameters as a single
// JSON record. It is read once at startup and written only on explicit save.
type Store struct {
	mu   sync.Mutex
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns the saved parameters, or Defaults when no file exists yet. A
// missing file is the normal first-run state, not an error.
func (s *Store) Load() (models.ReconcileParams, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return Defaults(), nil
	}
	if err != nil {
		return Defaults(), fmt.Errorf("read params: %w", err)
	}
	p := Defaults()
	if err := json.Unmarshal(b, &p); err != nil {
		return Defaults(), fmt.Errorf("parse params: %w", err)
	}
	return p, nil
}

// Save writes the parameters atomically (write to temp, then rename).
func (s *Store) Save(p models.ReconcileParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("params dir: %w", err)
	}
	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode params: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write params: %w", err)
	}
	return os.Rename(tmp, s.path)
}
