package redis

import (
	"fmt"

	"github.com/ballknowledge/ballknowledge-go/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "ballknowledge"

// Key generation functions for each entity type

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// slugIndexKey returns the Redis key for the player_slug -> player_id index
func slugIndexKey(slug string) string {
	return fmt.Sprintf("%s:idx:slug:%s", keyPrefix, slug)
}

// playersIndexKey returns the Redis key for the SET of all player keys
func playersIndexKey() string {
	return fmt.Sprintf("%s:idx:players", keyPrefix)
}

// seasonsKey returns the Redis key for a player's season lines
func seasonsKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:seasons:%s", keyPrefix, playerID)
}

// teamSeasonKey returns the Redis key for a TeamSeason
func teamSeasonKey(season int, team string) string {
	return fmt.Sprintf("%s:team_season:%d:%s", keyPrefix, season, team)
}

// userKey returns the Redis key for a User
func userKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, id)
}

// usernameIndexKey returns the Redis key for the username -> user_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// dailyGameKey returns the Redis key for a DailyGame
func dailyGameKey(date model.GameDate) string {
	return fmt.Sprintf("%s:daily_game:%s", keyPrefix, date)
}

// guessKey returns the Redis key for a Guess
func guessKey(date model.GameDate, userID model.UserID, revealIndex int) string {
	return fmt.Sprintf("%s:guess:%s:%s:%d", keyPrefix, date, userID, revealIndex)
}

// guessesForDateIndexKey returns the Redis key for the SET of guess keys
// submitted on a date
func guessesForDateIndexKey(date model.GameDate) string {
	return fmt.Sprintf("%s:idx:guesses_for_date:%s", keyPrefix, date)
}

// resultKey returns the Redis key for a Result
func resultKey(date model.GameDate, userID model.UserID) string {
	return fmt.Sprintf("%s:result:%s:%s", keyPrefix, date, userID)
}

// resultsForDateIndexKey returns the Redis key for the SET of result keys
// for a date
func resultsForDateIndexKey(date model.GameDate) string {
	return fmt.Sprintf("%s:idx:results_for_date:%s", keyPrefix, date)
}

// streakKey returns the Redis key for a Streak
func streakKey(userID model.UserID) string {
	return fmt.Sprintf("%s:streak:%s", keyPrefix, userID)
}

// cheatFlagKey returns the Redis key for a CheatFlag
func cheatFlagKey(date model.GameDate, userID model.UserID) string {
	return fmt.Sprintf("%s:cheat_flag:%s:%s", keyPrefix, date, userID)
}

// hintsUsedKey returns the Redis key for the SET of hints a user spent
// on a date
func hintsUsedKey(date model.GameDate, userID model.UserID) string {
	return fmt.Sprintf("%s:hints_used:%s:%s", keyPrefix, date, userID)
}
