package config

import "testing"

func validConfig() *Config {
	return &Config{
		Server:   ServerConfig{Port: 8080},
		Database: DatabaseConfig{Path: "data/influencers.db"},
		Session:  SessionConfig{Secret: "secret"},
	}
}

func TestValidate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing session secret", func(c *Config) { c.Session.Secret = "" }},
		{"no database target", func(c *Config) { c.Database.Path = ""; c.Database.URL = "" }},
		{"zero port", func(c *Config) { c.Server.Port = 0 }},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}

	// Postgres URL alone satisfies the database requirement.
	cfg := validConfig()
	cfg.Database.Path = ""
	cfg.Database.URL = "postgres://localhost/roster"
	if err := cfg.Validate(); err != nil {
		t.Errorf("url-only config rejected: %v", err)
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("TEST_PORT_VALUE", "9090")
	if got := getEnvInt("TEST_PORT_VALUE", 8080); got != 9090 {
		t.Errorf("getEnvInt = %d, want 9090", got)
	}
	t.Setenv("TEST_PORT_VALUE", "junk")
	if got := getEnvInt("TEST_PORT_VALUE", 8080); got != 8080 {
		t.Errorf("getEnvInt junk fallback = %d, want 8080", got)
	}
	if got := getEnvInt("TEST_PORT_UNSET", 8080); got != 8080 {
		t.Errorf("getEnvInt default = %d, want 8080", got)
	}
}
