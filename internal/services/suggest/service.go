// Package suggest offers "did you mean" roster suggestions for
// near-miss guesses. Suggestions are UX only and never make a guess
// correct; matching stays exact-on-normalized in the session package.
package suggest

import (
	"context"
	"sort"

	"github.com/agnivade/levenshtein"

	"github.com/ballknowledge/ballknowledge-go/internal/model"
	"github.com/ballknowledge/ballknowledge-go/internal/normalize"
	"github.com/ballknowledge/ballknowledge-go/internal/storage"
)

// Config holds suggestion settings
type Config struct {
	// MaxDistance is the largest edit distance still offered as a
	// suggestion
	MaxDistance int
	// Limit caps the number of suggestions returned
	Limit int
}

// DefaultConfig returns sensible suggestion defaults
func DefaultConfig() Config {
	return Config{
		MaxDistance: 3,
		Limit:       5,
	}
}

// Service ranks roster names by edit distance to a guess
type Service struct {
	storage storage.Storage
	cfg     Config
}

// New creates a new suggestion service
func New(storage storage.Storage, cfg Config) *Service {
	return &Service{
		storage: storage,
		cfg:     cfg,
	}
}

type candidate struct {
	name     string
	distance int
}

// ForGuess returns up to Limit roster full names within MaxDistance of
// the normalized guess, closest first
func (s *Service) ForGuess(ctx context.Context, text string) ([]string, error) {
	key := normalize.Key(text)
	if key == "" {
		return nil, nil
	}

	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]candidate, 0, len(players))
	for _, p := range players {
		d := s.bestDistance(key, p)
		if d <= s.cfg.MaxDistance {
			candidates = append(candidates, candidate{name: p.FullName, distance: d})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].distance != candidates[j].distance {
			return candidates[i].distance < candidates[j].distance
		}
		return candidates[i].name < candidates[j].name
	})

	if len(candidates) > s.cfg.Limit {
		candidates = candidates[:s.cfg.Limit]
	}

	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.name
	}
	return names, nil
}

// bestDistance is the smallest edit distance from the guess key to the
// player's name or any alias
func (s *Service) bestDistance(key string, player *model.Player) int {
	best := levenshtein.ComputeDistance(key, normalize.Key(player.FullName))
	for _, alias := range player.Aliases {
		if d := levenshtein.ComputeDistance(key, normalize.Key(alias)); d < best {
			best = d
		}
	}
	return best
}

// Interface for dependency injection
type ServiceInterface interface {
	ForGuess(ctx context.Context, text string) ([]string, error)
}

var _ ServiceInterface = (*Service)(nil)
