package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"orr-overpotential/internal/overpotential"
)

type envTestConfig struct {
	Port int `env:"ORR_TEST_PORT" envDefault:"123"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("ORR_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestEnvDefaultsDescribeFourElectronORR(t *testing.T) {
	var cfg Env
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}

	if cfg.Addr != ":8080" {
		t.Fatalf("expected default addr :8080, got %q", cfg.Addr)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Fatalf("expected 5s shutdown timeout, got %s", cfg.ShutdownTimeout)
	}

	engine, err := cfg.EngineConfig()
	if err != nil {
		t.Fatalf("engine config: %v", err)
	}
	if engine != overpotential.DefaultConfig(overpotential.ORR) {
		t.Fatalf("expected default ORR config, got %+v", engine)
	}
}

func TestEnvLogLevelUnsetIsEmpty(t *testing.T) {
	t.Setenv("ORR_LOG_LEVEL", "")
	if err := os.Unsetenv("ORR_LOG_LEVEL"); err != nil {
		t.Fatalf("unset ORR_LOG_LEVEL: %v", err)
	}

	var cfg Env
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.LogLevel != "" {
		t.Fatalf("expected empty log level when unset, got %q", cfg.LogLevel)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ORR_REACTION_TYPE", "OER")
	t.Setenv("ORR_EQUILIBRIUM_POTENTIAL", "1.229")

	var cfg Env
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	engine, err := cfg.EngineConfig()
	if err != nil {
		t.Fatalf("engine config: %v", err)
	}
	if engine.ReactionType != overpotential.OER || engine.EquilibriumPotential != 1.229 {
		t.Fatalf("unexpected engine config %+v", engine)
	}
}

func TestEnvRejectsUnknownReactionType(t *testing.T) {
	cfg := Env{ReactionType: "her", EquilibriumPotential: 0}
	if _, err := cfg.EngineConfig(); err == nil || !strings.Contains(err.Error(), "ORR_REACTION_TYPE") {
		t.Fatalf("expected ORR_REACTION_TYPE error, got %v", err)
	}
}

func TestLoadDotEnvDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("ORR_TEST_DOTENV_A=from-file\nORR_TEST_DOTENV_B=from-file\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("ORR_TEST_DOTENV_A", "from-process")
	t.Cleanup(func() { os.Unsetenv("ORR_TEST_DOTENV_B") })

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("load .env: %v", err)
	}
	if got := os.Getenv("ORR_TEST_DOTENV_A"); got != "from-process" {
		t.Fatalf("expected process value to win, got %q", got)
	}
	if got := os.Getenv("ORR_TEST_DOTENV_B"); got != "from-file" {
		t.Fatalf("expected value from file, got %q", got)
	}
}

func TestLoadDotEnvMissingFileIsIgnored(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("expected missing .env to be ignored, got %v", err)
	}
}
