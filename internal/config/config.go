package config

import "time"

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`

	// StoreDriver selects the durable store: "sqlite" or "mongo".
	StoreDriver   string `mapstructure:"store_driver" yaml:"store_driver"`
	DatabasePath  string `mapstructure:"database_path" yaml:"database_path"`
	MongoURL      string `mapstructure:"mongo_url" yaml:"mongo_url"`
	MongoDatabase string `mapstructure:"mongo_database" yaml:"mongo_database"`

	JWTSecret   string `mapstructure:"jwt_secret" yaml:"jwt_secret"`
	JWTIssuer   string `mapstructure:"jwt_issuer" yaml:"jwt_issuer"`
	JWTAudience string `mapstructure:"jwt_audience" yaml:"jwt_audience"`

	// WSMessageRateLimit caps inbound events per connection per minute;
	// zero disables limiting.
	WSMessageRateLimit int `mapstructure:"ws_message_rate_limit" yaml:"ws_message_rate_limit"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:               ":8080",
		ReadHeaderTimeout:  5 * time.Second,
		ShutdownTimeout:    5 * time.Second,
		LogLevel:           "info",
		StoreDriver:        "sqlite",
		DatabasePath:       "freshfold.db",
		MongoDatabase:      "freshfold",
		JWTIssuer:          "freshfold",
		JWTAudience:        "freshfold-clients",
		WSMessageRateLimit: 240,
	}
}
