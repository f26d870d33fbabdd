package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearRelayEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"WEB3FORMS_ACCESS_KEY", "BREVO_API_KEY", "BREVO_LIST_ID", "APP_PORT", "UPSTREAM_TIMEOUT"} {
		if v, ok := os.LookupEnv(key); ok {
			os.Unsetenv(key)
			t.Cleanup(func() { os.Setenv(key, v) })
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearRelayEnv(t)

	cfg, err := LoadFile("")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.AppEnv != "development" {
		t.Errorf("expected default AppEnv 'development', got %s", cfg.AppEnv)
	}

	if cfg.AppPort != 8080 {
		t.Errorf("expected default AppPort 8080, got %d", cfg.AppPort)
	}

	if cfg.LogFormat != "json" {
		t.Errorf("expected default LogFormat 'json', got %s", cfg.LogFormat)
	}

	if cfg.Web3FormsURL != "https://api.web3forms.com/submit" {
		t.Errorf("unexpected Web3FormsURL: %s", cfg.Web3FormsURL)
	}

	if cfg.BrevoURL != "https://api.brevo.com/v3/contacts" {
		t.Errorf("unexpected BrevoURL: %s", cfg.BrevoURL)
	}

	if cfg.BrevoListID != 8 {
		t.Errorf("expected default BrevoListID 8, got %d", cfg.BrevoListID)
	}

	if cfg.ContactSubject != "New Contact Form Submission from Football News" {
		t.Errorf("unexpected ContactSubject: %s", cfg.ContactSubject)
	}

	if cfg.UpstreamTimeout != 0 {
		t.Errorf("expected no upstream timeout by default, got %s", cfg.UpstreamTimeout)
	}
}

func TestLoad_MissingCredentialsIsNotAnError(t *testing.T) {
	clearRelayEnv(t)

	cfg, err := LoadFile("")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.ContactEnabled() {
		t.Error("expected contact relay to be disabled without WEB3FORMS_ACCESS_KEY")
	}
	if cfg.SubscribeEnabled() {
		t.Error("expected subscribe relay to be disabled without BREVO_API_KEY")
	}
}

func TestLoad_WithCredentials(t *testing.T) {
	clearRelayEnv(t)
	t.Setenv("WEB3FORMS_ACCESS_KEY", "w3f-test")
	t.Setenv("BREVO_API_KEY", "xkeysib-test")
	t.Setenv("UPSTREAM_TIMEOUT", "7s")

	cfg, err := LoadFile("")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !cfg.ContactEnabled() || !cfg.SubscribeEnabled() {
		t.Error("expected both relays to be enabled")
	}
	if cfg.UpstreamTimeout != 7*time.Second {
		t.Errorf("expected UpstreamTimeout 7s, got %s", cfg.UpstreamTimeout)
	}
}

func TestLoad_InvalidListID(t *testing.T) {
	clearRelayEnv(t)
	t.Setenv("BREVO_LIST_ID", "0")

	if _, err := LoadFile(""); err == nil {
		t.Fatal("expected error for non-positive BREVO_LIST_ID, got nil")
	}
}

func TestLoadFile_DotenvDoesNotOverrideEnvironment(t *testing.T) {
	clearRelayEnv(t)

	path := filepath.Join(t.TempDir(), ".env")
	content := "BREVO_API_KEY=from-file\nAPP_PORT=9090\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("APP_PORT", "7070")
	t.Cleanup(func() { os.Unsetenv("BREVO_API_KEY") })

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.BrevoAPIKey != "from-file" {
		t.Errorf("expected BrevoAPIKey from file, got %q", cfg.BrevoAPIKey)
	}
	if cfg.AppPort != 7070 {
		t.Errorf("expected environment APP_PORT to win, got %d", cfg.AppPort)
	}
}

func TestLoadFile_MissingFileIsIgnored(t *testing.T) {
	clearRelayEnv(t)

	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("expected missing env file to be ignored, got %v", err)
	}
}

func TestConfig_LogValueRedactsCredentials(t *testing.T) {
	cfg := &Config{
		AppEnv:             "production",
		Web3FormsAccessKey: "w3f-secret-value",
		BrevoAPIKey:        "xkeysib-secret-value",
		BrevoListID:        8,
	}

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	logger.Info("config loaded", "config", cfg)

	out := buf.String()
	for _, secret := range []string{"w3f-secret-value", "xkeysib-secret-value"} {
		if strings.Contains(out, secret) {
			t.Errorf("log output leaked credential %q", secret)
		}
	}
	if !strings.Contains(out, `"contact_enabled":true`) {
		t.Errorf("expected contact_enabled in log output, got %s", out)
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	cfg := &Config{AppEnv: "development"}
	if !cfg.IsDevelopment() {
		t.Error("expected IsDevelopment to return true")
	}

	cfg.AppEnv = "production"
	if cfg.IsDevelopment() {
		t.Error("expected IsDevelopment to return false")
	}
}

func TestConfig_IsProduction(t *testing.T) {
	cfg := &Config{AppEnv: "production"}
	if !cfg.IsProduction() {
		t.Error("expected IsProduction to return true")
	}

	cfg.AppEnv = "development"
	if cfg.IsProduction() {
		t.Error("expected IsProduction to return false")
	}
}
