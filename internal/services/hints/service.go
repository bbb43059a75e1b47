// Package hints resolves purchasable hints for the current reveal and
// records their use so the final score can charge for them.
package hints

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/ballknowledge/ballknowledge-go/internal/model"
	"github.com/ballknowledge/ballknowledge-go/internal/services/daily"
	"github.com/ballknowledge/ballknowledge-go/internal/services/scoring"
	"github.com/ballknowledge/ballknowledge-go/internal/storage"
)

// teamAlias maps legacy/alternate team codes to canonical modern codes
var teamAlias = map[string]string{
	"NWE": "NE", "GNB": "GB", "KAN": "KC", "TAM": "TB",
	"SDG": "LAC", "STL": "LAR", "OAK": "LV", "CRD": "ARI",
	"OTI": "TEN", "NOR": "NO", "TBB": "TB", "SFO": "SF",
	"WSH": "WAS", "WFT": "WAS", "JAC": "JAX",
	"ARZ": "ARI", "BLT": "BAL", "RAM": "LAR", "RAI": "LV",
	"LA": "LAR", "SD": "LAC",
}

// divisionEntry is a team's conference and division
type divisionEntry struct {
	conference string
	division   string
}

var divisionByTeam = map[string]divisionEntry{
	// AFC East
	"BUF": {"AFC", "East"}, "MIA": {"AFC", "East"},
	"NE": {"AFC", "East"}, "NYJ": {"AFC", "East"},
	// AFC North
	"BAL": {"AFC", "North"}, "CIN": {"AFC", "North"},
	"CLE": {"AFC", "North"}, "PIT": {"AFC", "North"},
	// AFC South
	"HOU": {"AFC", "South"}, "IND": {"AFC", "South"},
	"JAX": {"AFC", "South"}, "TEN": {"AFC", "South"},
	// AFC West
	"DEN": {"AFC", "West"}, "KC": {"AFC", "West"},
	"LAC": {"AFC", "West"}, "LV": {"AFC", "West"},
	// NFC East
	"DAL": {"NFC", "East"}, "NYG": {"NFC", "East"},
	"PHI": {"NFC", "East"}, "WAS": {"NFC", "East"},
	// NFC North
	"CHI": {"NFC", "North"}, "DET": {"NFC", "North"},
	"GB": {"NFC", "North"}, "MIN": {"NFC", "North"},
	// NFC South
	"ATL": {"NFC", "South"}, "CAR": {"NFC", "South"},
	"NO": {"NFC", "South"}, "TB": {"NFC", "South"},
	// NFC West
	"ARI": {"NFC", "West"}, "LAR": {"NFC", "West"},
	"SF": {"NFC", "West"}, "SEA": {"NFC", "West"},
}

// CanonicalTeam normalizes a team code to its canonical modern form
func CanonicalTeam(code string) string {
	c := strings.ToUpper(strings.TrimSpace(code))
	if canon, ok := teamAlias[c]; ok {
		return canon
	}
	return c
}

// Service resolves and charges hints against the day's player
type Service struct {
	storage storage.Storage
	daily   daily.ServiceInterface
	scoring scoring.ServiceInterface
	logger  *slog.Logger
}

// New creates a new hint service
func New(storage storage.Storage, daily daily.ServiceInterface, scoring scoring.ServiceInterface, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		daily:   daily,
		scoring: scoring,
		logger:  logger,
	}
}

// Use resolves a hint for the user's current reveal step, records the
// spend (each hint kind is charged at most once per session) and
// returns the resolved value with its cost.
func (s *Service) Use(ctx context.Context, date model.GameDate, userID model.UserID, kind model.HintKind, revealIndex int) (*model.HintValue, error) {
	if !knownHint(kind) {
		return nil, model.ErrUnknownHint
	}
	if _, err := s.storage.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	value, err := s.resolve(ctx, date, kind, revealIndex)
	if err != nil {
		return nil, err
	}

	if err := s.storage.AddHintUse(ctx, date, userID, string(kind)); err != nil {
		return nil, err
	}

	return &model.HintValue{
		Kind:  kind,
		Value: value,
		Cost:  s.scoring.HintCost(kind),
	}, nil
}

// resolve computes a hint value for the day's player at a reveal step
func (s *Service) resolve(ctx context.Context, date model.GameDate, kind model.HintKind, revealIndex int) (string, error) {
	game, err := s.daily.GetOrCreate(ctx, date)
	if err != nil {
		return "", err
	}

	player, err := s.storage.GetPlayer(ctx, game.PlayerID)
	if err != nil {
		return "", err
	}

	switch kind {
	case model.HintCollege:
		if player.College == "" {
			return "", model.ErrHintUnavailable
		}
		return player.College, nil
	case model.HintFirstName:
		first, _ := nameParts(player.FullName)
		if first == "" {
			return "", model.ErrHintUnavailable
		}
		return first, nil
	case model.HintLastName:
		_, last := nameParts(player.FullName)
		if last == "" {
			return "", model.ErrHintUnavailable
		}
		return last, nil
	}

	// Remaining hints key off the currently revealed season line
	line, err := s.revealedLine(ctx, game, revealIndex)
	if err != nil {
		return "", err
	}
	team := CanonicalTeam(line.Team)

	switch kind {
	case model.HintTeam:
		if team == "" {
			return "", model.ErrHintUnavailable
		}
		return team, nil
	case model.HintConference:
		entry, ok := divisionByTeam[team]
		if !ok {
			return "", model.ErrHintUnavailable
		}
		return entry.conference, nil
	case model.HintDivision:
		entry, ok := divisionByTeam[team]
		if !ok {
			return "", model.ErrHintUnavailable
		}
		return entry.division, nil
	case model.HintRecord:
		ts, err := s.storage.GetTeamSeason(ctx, line.Season, team)
		if err != nil {
			if errors.Is(err, model.ErrSeasonsNotFound) {
				return "", model.ErrHintUnavailable
			}
			return "", err
		}
		return ts.Record(), nil
	}

	return "", model.ErrUnknownHint
}

// revealedLine returns the season line at the given reveal step,
// clamped into the revealed range
func (s *Service) revealedLine(ctx context.Context, game *model.DailyGame, revealIndex int) (*model.SeasonLine, error) {
	lines, err := s.daily.RevealSequence(ctx, game)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, model.ErrSeasonsNotFound
	}

	idx := revealIndex - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(lines) {
		idx = len(lines) - 1
	}
	return &lines[idx], nil
}

// nameParts splits a full name into first and last, ignoring a trailing
// generational suffix
func nameParts(fullName string) (string, string) {
	fields := strings.Fields(fullName)
	if len(fields) > 1 {
		last := strings.ToUpper(strings.TrimSuffix(fields[len(fields)-1], "."))
		switch last {
		case "JR", "SR", "II", "III", "IV", "V":
			fields = fields[:len(fields)-1]
		}
	}
	switch len(fields) {
	case 0:
		return "", ""
	case 1:
		return fields[0], ""
	default:
		return fields[0], fields[len(fields)-1]
	}
}

func knownHint(kind model.HintKind) bool {
	for _, k := range model.HintKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Interface for dependency injection
type ServiceInterface interface {
	Use(ctx context.Context, date model.GameDate, userID model.UserID, kind model.HintKind, revealIndex int) (*model.HintValue, error)
}

var _ ServiceInterface = (*Service)(nil)
