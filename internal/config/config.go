package config

import (
	"flag"

	"github.com/caarlos0/env/v6"
)

// Bins maps each logical collection to its document id in the remote store.
// The defaults double as table keys for the Postgres backend.
type Bins struct {
	Users       string `env:"BIN_USERS"        envDefault:"users"`
	Deposits    string `env:"BIN_DEPOSITS"     envDefault:"deposits"`
	Withdrawals string `env:"BIN_WITHDRAWALS"  envDefault:"withdrawals"`
	Payments    string `env:"BIN_PAYMENTS"     envDefault:"payments"`
	Videos      string `env:"BIN_GAME_VIDEOS"  envDefault:"videos"`
	Controls    string `env:"BIN_GAME_CONTROLS" envDefault:"controls"`
	Contacts    string `env:"BIN_CONTACTS"     envDefault:"contacts"`
	Agents      string `env:"BIN_AGENTS"       envDefault:"agents"`
}

type Config struct {
	Address string `env:"RUN_ADDRESS" envDefault:"localhost:8080"`
	// Database selects the Postgres-backed document store when set;
	// otherwise the remote JSON bin store is used.
	Database     string `env:"DATABASE_URI"  envDefault:""`
	StoreAddress string `env:"STORE_ADDRESS" envDefault:"https://api.jsonbin.io/v3"`
	StoreAPIKey  string `env:"STORE_API_KEY" envDefault:""`
	LogLvl       string `env:"LOG_LVL"       envDefault:"info"`

	JWTSecret string `env:"JWT_SECRET" envDefault:"dev-only-secret"`

	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN" envDefault:""`
	TelegramAdminID  string `env:"TELEGRAM_ADMIN_ID"  envDefault:""`
	AgentBotToken    string `env:"AGENT_BOT_TOKEN"    envDefault:""`

	Bins Bins
}

func New() *Config {
	cfg := &Config{}

	env.Parse(cfg)

	flag.StringVar(&cfg.Address, "a", cfg.Address, "address and port to run server")
	flag.StringVar(&cfg.Database, "d", cfg.Database, "database DSN (enables the Postgres store backend)")
	flag.StringVar(&cfg.StoreAddress, "s", cfg.StoreAddress, "remote document store base URL")
	flag.StringVar(&cfg.LogLvl, "l", cfg.LogLvl, "log level")
	flag.Parse()

	return cfg
}
