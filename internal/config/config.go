// Package config loads application settings from the environment.
// Every key is overridable via a BALLKNOWLEDGE_-prefixed variable, e.g.
// BALLKNOWLEDGE_SERVER_PORT or BALLKNOWLEDGE_DAILY_EXCLUSION_WINDOW_DAYS.
package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/ballknowledge/ballknowledge-go/internal/api"
	"github.com/ballknowledge/ballknowledge-go/internal/services/anomaly"
	"github.com/ballknowledge/ballknowledge-go/internal/services/daily"
	"github.com/ballknowledge/ballknowledge-go/internal/services/scoring"
	"github.com/ballknowledge/ballknowledge-go/internal/services/suggest"
	redisstorage "github.com/ballknowledge/ballknowledge-go/internal/storage/redis"
)

// Config aggregates every tunable setting
type Config struct {
	Server      api.ServerConfig
	StorageType string
	Redis       redisstorage.Config
	Daily       daily.Config
	Scoring     scoring.Config
	Anomaly     anomaly.Config
	Suggest     suggest.Config
}

// Load reads configuration from the environment on top of defaults
func Load() Config {
	v := viper.New()
	v.SetEnvPrefix("BALLKNOWLEDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	server := api.DefaultServerConfig()
	redisCfg := redisstorage.DefaultConfig()
	dailyCfg := daily.DefaultConfig()
	scoringCfg := scoring.DefaultConfig()
	anomalyCfg := anomaly.DefaultConfig()
	suggestCfg := suggest.DefaultConfig()

	v.SetDefault("server.host", server.Host)
	v.SetDefault("server.port", server.Port)
	v.SetDefault("server.read_timeout", server.ReadTimeout)
	v.SetDefault("server.write_timeout", server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", server.ShutdownTimeout)

	v.SetDefault("storage.type", "memory")
	v.SetDefault("redis.url", redisCfg.URL)
	v.SetDefault("redis.pool_size", redisCfg.PoolSize)
	v.SetDefault("redis.min_idle_conns", redisCfg.MinIdleConns)
	v.SetDefault("redis.session_ttl", redisCfg.SessionTTL)

	v.SetDefault("daily.exclusion_window_days", dailyCfg.ExclusionWindowDays)
	v.SetDefault("daily.seed", dailyCfg.Seed)

	v.SetDefault("scoring.base", scoringCfg.Base)
	v.SetDefault("scoring.step", scoringCfg.Step)

	v.SetDefault("anomaly.min_reveal_gap", anomalyCfg.MinRevealGap)
	v.SetDefault("anomaly.min_solve_delay", anomalyCfg.MinSolveDelay)
	v.SetDefault("anomaly.duplicate_window", anomalyCfg.DuplicateWindow)
	v.SetDefault("anomaly.duplicate_min_users", anomalyCfg.DuplicateMinUsers)
	v.SetDefault("anomaly.rapid_weight", anomalyCfg.RapidWeight)
	v.SetDefault("anomaly.instant_weight", anomalyCfg.InstantWeight)
	v.SetDefault("anomaly.duplicate_weight", anomalyCfg.DuplicateWeight)

	v.SetDefault("suggest.max_distance", suggestCfg.MaxDistance)
	v.SetDefault("suggest.limit", suggestCfg.Limit)

	server.Host = v.GetString("server.host")
	server.Port = v.GetInt("server.port")
	server.ReadTimeout = v.GetDuration("server.read_timeout")
	server.WriteTimeout = v.GetDuration("server.write_timeout")
	server.ShutdownTimeout = v.GetDuration("server.shutdown_timeout")

	redisCfg.URL = v.GetString("redis.url")
	redisCfg.PoolSize = v.GetInt("redis.pool_size")
	redisCfg.MinIdleConns = v.GetInt("redis.min_idle_conns")
	redisCfg.SessionTTL = v.GetDuration("redis.session_ttl")

	dailyCfg.ExclusionWindowDays = v.GetInt("daily.exclusion_window_days")
	dailyCfg.Seed = v.GetString("daily.seed")

	// Hint costs stay code-defined; only the reveal curve is tunable
	scoringCfg.Base = v.GetInt("scoring.base")
	scoringCfg.Step = v.GetInt("scoring.step")

	anomalyCfg.MinRevealGap = v.GetDuration("anomaly.min_reveal_gap")
	anomalyCfg.MinSolveDelay = v.GetDuration("anomaly.min_solve_delay")
	anomalyCfg.DuplicateWindow = v.GetDuration("anomaly.duplicate_window")
	anomalyCfg.DuplicateMinUsers = v.GetInt("anomaly.duplicate_min_users")
	anomalyCfg.RapidWeight = v.GetFloat64("anomaly.rapid_weight")
	anomalyCfg.InstantWeight = v.GetFloat64("anomaly.instant_weight")
	anomalyCfg.DuplicateWeight = v.GetFloat64("anomaly.duplicate_weight")

	suggestCfg.MaxDistance = v.GetInt("suggest.max_distance")
	suggestCfg.Limit = v.GetInt("suggest.limit")

	return Config{
		Server:      server,
		StorageType: v.GetString("storage.type"),
		Redis:       redisCfg,
		Daily:       dailyCfg,
		Scoring:     scoringCfg,
		Anomaly:     anomalyCfg,
		Suggest:     suggestCfg,
	}
}
