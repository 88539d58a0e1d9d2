package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"partycards/internal/domain"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Relay   RelayConfig
	Game    GameConfig
	Bots    BotConfig
	Client  ClientConfig
	Logging LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port string
	Host string
	Env  string // "development" or "production"
}

// RelayConfig holds room relay configuration
type RelayConfig struct {
	TokenSecret      string
	TokenTTL         time.Duration
	MaxPeersPerRoom  int
	StaleRoomTimeout time.Duration
}

// GameConfig holds the match settings a new room starts with
type GameConfig struct {
	MinPlayers            int
	MaxPlayers            int
	HandSize              int
	WinningScore          int
	RoundTimeoutSeconds   int
	VotingTimeoutSeconds  int
	ResultsDisplaySeconds int
}

// BotConfig holds automated player configuration
type BotConfig struct {
	MinThink time.Duration
	MaxThink time.Duration
}

// ClientConfig holds terminal client configuration
type ClientConfig struct {
	RelayURL   string
	PlayerName string
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // "json" or "text"
}

// Load reads an optional .env file, then environment variables with defaults.
func Load() *Config {
	// a missing .env is normal outside development
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Host: getEnv("HOST", "0.0.0.0"),
			Env:  getEnv("ENV", "development"),
		},
		Relay: RelayConfig{
			TokenSecret:      getEnv("TOKEN_SECRET", ""),
			TokenTTL:         time.Duration(getEnvInt("TOKEN_TTL_MINUTES", 15)) * time.Minute,
			MaxPeersPerRoom:  getEnvInt("MAX_PEERS_PER_ROOM", 12),
			StaleRoomTimeout: time.Duration(getEnvInt("STALE_ROOM_MINUTES", 120)) * time.Minute,
		},
		Game: GameConfig{
			MinPlayers:            getEnvInt("MIN_PLAYERS", 3),
			MaxPlayers:            getEnvInt("MAX_PLAYERS", 8),
			HandSize:              getEnvInt("HAND_SIZE", 10),
			WinningScore:          getEnvInt("WINNING_SCORE", 5),
			RoundTimeoutSeconds:   getEnvInt("ROUND_TIMEOUT_SECONDS", 120),
			VotingTimeoutSeconds:  getEnvInt("VOTING_TIMEOUT_SECONDS", 60),
			ResultsDisplaySeconds: getEnvInt("RESULTS_DISPLAY_SECONDS", 10),
		},
		Bots: BotConfig{
			MinThink: time.Duration(getEnvInt("BOT_MIN_THINK_MS", 1500)) * time.Millisecond,
			MaxThink: time.Duration(getEnvInt("BOT_MAX_THINK_MS", 4000)) * time.Millisecond,
		},
		Client: ClientConfig{
			RelayURL:   getEnv("RELAY_URL", "http://localhost:8080"),
			PlayerName: getEnv("PLAYER_NAME", ""),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}
}

// GameDefaults converts the game section into match settings, falling back
// to the built-in defaults when the environment holds an invalid combination.
func (c *Config) GameDefaults() (domain.GameConfig, error) {
	g := domain.GameConfig{
		MinPlayers:        c.Game.MinPlayers,
		MaxPlayers:        c.Game.MaxPlayers,
		HandSize:          c.Game.HandSize,
		WinningScore:      c.Game.WinningScore,
		RoundTimeoutSec:   c.Game.RoundTimeoutSeconds,
		VotingTimeoutSec:  c.Game.VotingTimeoutSeconds,
		ResultsDisplaySec: c.Game.ResultsDisplaySeconds,
	}
	if err := g.Validate(); err != nil {
		return domain.DefaultGameConfig(), err
	}
	return g, nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// GetAddr returns the server address in host:port format
func (c *Config) GetAddr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// getEnv returns an environment variable or a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt returns an environment variable as an integer or a default value
func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
