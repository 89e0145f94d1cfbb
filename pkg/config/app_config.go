package config

import (
	"time"
)

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[compago]"`
}

// Auth holds the static PIN. Only its bcrypt hash is kept after start-up.
type Auth struct {
	Pin      string `envconfig:"PIN" default:"1234"`
	HashCost int    `envconfig:"HASH_COST" default:"10"`
}

type Payment struct {
	SettlementDelay time.Duration `envconfig:"SETTLEMENT_DELAY" default:"1500ms"`
	SettlementMode  string        `envconfig:"SETTLEMENT_MODE" default:"intent"`
	SourceAccount   string        `envconfig:"SOURCE_ACCOUNT" default:"Banesco"`
	ReceiveAccount  string        `envconfig:"RECEIVE_ACCOUNT" default:"Provincial"`
	AllowOverdraft  bool          `envconfig:"ALLOW_OVERDRAFT" default:"false"`
	Currency        string        `envconfig:"CURRENCY" default:"VES"`
}

type Notification struct {
	TTL time.Duration `envconfig:"TTL" default:"3s"`
}

// Receive identifies the wallet owner inside receive-mode QR payloads.
type Receive struct {
	Phone string `envconfig:"PHONE" default:"04167890123"`
	ID    string `envconfig:"ID" default:"V-10000000"`
	Bank  string `envconfig:"BANK" default:"COMPAGO Bank"`
}

type Dashboard struct {
	RecentLimit int `envconfig:"RECENT_LIMIT" default:"5"`
}

// Seed points at a directory whose CSV files replace the embedded seed data.
type Seed struct {
	Dir string `envconfig:"DIR"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"3000"`
}

type App struct {
	Env          string        `envconfig:"APP_ENV" default:"development"`
	Server       *Server       `envconfig:"SERVER"`
	Log          *Log          `envconfig:"LOG"`
	Auth         *Auth         `envconfig:"AUTH"`
	Payment      *Payment      `envconfig:"PAYMENT"`
	Notification *Notification `envconfig:"NOTIFICATION"`
	Receive      *Receive      `envconfig:"RECEIVE"`
	Dashboard    *Dashboard    `envconfig:"DASHBOARD"`
	Seed         *Seed         `envconfig:"SEED"`
	RateLimit    *RateLimit    `envconfig:"RATE_LIMIT"`
}
