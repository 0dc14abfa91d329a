package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/samvad-hq/assistly-go/pkg/httpclient"
)

func missingEnvFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoadDefaultsWithSubdomain(t *testing.T) {
	t.Setenv("ASSISTLY_SUBDOMAIN", "acme")
	t.Setenv("ASSISTLY_AUTH", "none")

	cfg, err := Load(missingEnvFile(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.APIBaseURL(); got != "https://acme.assistly.com/api/v1" {
		t.Fatalf("unexpected base url %q", got)
	}
	if cfg.Format != "json" {
		t.Fatalf("unexpected format %q", cfg.Format)
	}
	if cfg.HTTPTimeout != 15*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.HTTPTimeout)
	}
	if cfg.SyncInterval != 5*time.Minute || cfg.SyncPageSize != 50 {
		t.Fatalf("unexpected sync settings %v/%d", cfg.SyncInterval, cfg.SyncPageSize)
	}
	opts := cfg.ExecutorOptions(nil)
	if opts.Auth.Mode != httpclient.AuthNone || opts.BaseURL != cfg.APIBaseURL() {
		t.Fatalf("unexpected executor options %+v", opts)
	}
}

func TestLoadRequiresEndpoint(t *testing.T) {
	t.Setenv("ASSISTLY_AUTH", "none")
	if _, err := Load(missingEnvFile(t)); err == nil {
		t.Fatalf("expected error without base url or subdomain")
	}
}

func TestLoadValidatesCredentials(t *testing.T) {
	t.Setenv("ASSISTLY_BASE_URL", "https://example.test/api/v1/")
	t.Setenv("ASSISTLY_AUTH", "basic")
	t.Setenv("ASSISTLY_USERNAME", "agent")

	if _, err := Load(missingEnvFile(t)); err == nil {
		t.Fatalf("expected error for basic auth without password")
	}

	t.Setenv("ASSISTLY_PASSWORD", "pw")
	cfg, err := Load(missingEnvFile(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBaseURL() != "https://example.test/api/v1" {
		t.Fatalf("trailing slash not trimmed: %q", cfg.APIBaseURL())
	}
	if _, ok := cfg.Redacted()["password"]; ok {
		t.Fatalf("redacted view leaked password")
	}
}

func TestLoadRejectsUnknownAuthAndBadIntervals(t *testing.T) {
	t.Setenv("ASSISTLY_SUBDOMAIN", "acme")
	t.Setenv("ASSISTLY_AUTH", "kerberos")
	if _, err := Load(missingEnvFile(t)); err == nil {
		t.Fatalf("expected unsupported auth error")
	}

	t.Setenv("ASSISTLY_AUTH", "none")
	t.Setenv("SYNC_INTERVAL", "0")
	if _, err := Load(missingEnvFile(t)); err == nil {
		t.Fatalf("expected invalid sync_interval error")
	}
}

func TestLoadReadsEnvFile(t *testing.T) {
	t.Setenv("ASSISTLY_SUBDOMAIN", "")
	os.Unsetenv("ASSISTLY_SUBDOMAIN")
	t.Setenv("ASSISTLY_AUTH", "token")
	t.Setenv("ASSISTLY_API_TOKEN", "")
	os.Unsetenv("ASSISTLY_API_TOKEN")

	path := filepath.Join(t.TempDir(), ".env")
	content := "ASSISTLY_SUBDOMAIN=fromfile\nASSISTLY_API_TOKEN=tok\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Subdomain != "fromfile" || cfg.APIToken != "tok" {
		t.Fatalf("env file not applied: %+v", cfg.Redacted())
	}
}
