package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode":  "disable",
			"userName": "user",
		},
		"googleOAuth": map[string]any{
			"clientId": "",
		},
		"session": map[string]any{
			"cookieName": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_USERNAME", want: "postgres.userName"},
		{envKey: "GOOGLEOAUTH_CLIENTID", want: "googleOAuth.clientId"},
		{envKey: "SESSION_COOKIENAME", want: "session.cookieName"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestPostgresConfig_DSN(t *testing.T) {
	pg := &PostgresConfig{
		Host:     "localhost",
		Port:     5432,
		UserName: "secrets",
		Password: "pw",
		Database: "secrets",
	}
	applyPoolDefaults(pg)

	dsn := pg.DSN()
	want := "host=localhost port=5432 user=secrets password=pw dbname=secrets sslmode=disable connect_timeout=2"
	if dsn != want {
		t.Fatalf("DSN() = %q, want %q", dsn, want)
	}
}

func TestApplyPoolDefaults(t *testing.T) {
	pg := &PostgresConfig{}
	applyPoolDefaults(pg)

	if pg.MaxOpenConns != defaultMaxOpenConns {
		t.Fatalf("MaxOpenConns = %d, want %d", pg.MaxOpenConns, defaultMaxOpenConns)
	}
	if pg.MaxIdleConns != defaultMaxOpenConns/2 {
		t.Fatalf("MaxIdleConns = %d, want %d", pg.MaxIdleConns, defaultMaxOpenConns/2)
	}
	if pg.ConnMaxIdleTime != defaultConnMaxIdleTime {
		t.Fatalf("ConnMaxIdleTime = %v, want %v", pg.ConnMaxIdleTime, defaultConnMaxIdleTime)
	}
	if pg.ConnectTimeout != defaultConnectTimeout {
		t.Fatalf("ConnectTimeout = %v, want %v", pg.ConnectTimeout, defaultConnectTimeout)
	}
}
