package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type envTestConfig struct {
	Port int `env:"BALITOURS_TEST_PORT" envDefault:"123"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("ParseEnv() error = %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("Port = %d, want 123", cfg.Port)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("BALITOURS_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("ParseEnv() error = %v, want parse env prefix", err)
	}
}

func TestLoadDotEnvSkipsMissingFile(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
}

func TestLoadDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "BALITOURS_TEST_DOTENV_NEW=from-file\nBALITOURS_TEST_DOTENV_SET=from-file\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("BALITOURS_TEST_DOTENV_SET", "from-env")
	t.Setenv("BALITOURS_TEST_DOTENV_NEW", "")
	os.Unsetenv("BALITOURS_TEST_DOTENV_NEW")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("BALITOURS_TEST_DOTENV_NEW") })
	if got := os.Getenv("BALITOURS_TEST_DOTENV_NEW"); got != "from-file" {
		t.Fatalf("new var = %q, want from-file", got)
	}
	if got := os.Getenv("BALITOURS_TEST_DOTENV_SET"); got != "from-env" {
		t.Fatalf("set var = %q, want from-env", got)
	}
}
