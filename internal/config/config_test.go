package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.ServerPort != "8083" {
		t.Errorf("expected default port 8083, got %q", cfg.ServerPort)
	}
	if !cfg.AccountRules.CheckingMaintenanceFee.Equal(decimal.RequireFromString("10")) {
		t.Errorf("unexpected checking maintenance fee %s", cfg.AccountRules.CheckingMaintenanceFee)
	}
	if cfg.Breaker.Timeout != 3*time.Second {
		t.Errorf("expected breaker timeout 3s, got %s", cfg.Breaker.Timeout)
	}
	if cfg.Breaker.HalfOpenRequests != 3 {
		t.Errorf("expected 3 half-open requests, got %d", cfg.Breaker.HalfOpenRequests)
	}
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CUSTOMER_SERVICE_URL", "http://customers:8080/")
	t.Setenv("ACCOUNT_SAVINGS_COMMISSION_PERCENTAGE", "2.25")
	t.Setenv("BREAKER_OPEN_TIMEOUT", "45s")

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.ServerPort != "9090" {
		t.Errorf("expected port override, got %q", cfg.ServerPort)
	}
	if cfg.CustomerServiceURL != "http://customers:8080" {
		t.Errorf("expected trailing slash trimmed, got %q", cfg.CustomerServiceURL)
	}
	if !cfg.AccountRules.SavingsCommissionPercentage.Equal(decimal.RequireFromString("2.25")) {
		t.Errorf("unexpected savings commission %s", cfg.AccountRules.SavingsCommissionPercentage)
	}
	if cfg.Breaker.OpenTimeout != 45*time.Second {
		t.Errorf("expected open timeout 45s, got %s", cfg.Breaker.OpenTimeout)
	}
}

func TestLoadConfig_ReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	content := "CREDIT_SERVICE_URL=http://credit.internal:9000\nACCOUNT_FIXEDTERM_AVAILABLE_DAY_FOR_MOVEMENTS=20\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.CreditServiceURL != "http://credit.internal:9000" {
		t.Errorf("expected credit url from .env, got %q", cfg.CreditServiceURL)
	}
	if cfg.AccountRules.FixedTermAvailableDayForMovements != 20 {
		t.Errorf("expected available day 20, got %d", cfg.AccountRules.FixedTermAvailableDayForMovements)
	}
}

func TestLoadConfig_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"bad decimal", "ACCOUNT_CHECKING_MAINTENANCE_FEE", "ten", "ACCOUNT_CHECKING_MAINTENANCE_FEE"},
		{"failure ratio above one", "BREAKER_FAILURE_RATIO", "1.5", "BREAKER_FAILURE_RATIO"},
		{"day out of month", "ACCOUNT_FIXEDTERM_AVAILABLE_DAY_FOR_MOVEMENTS", "32", "ACCOUNT_FIXEDTERM_AVAILABLE_DAY_FOR_MOVEMENTS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := LoadConfig(t.TempDir())
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error to mention %s, got %v", tt.wantErr, err)
			}
		})
	}
}
