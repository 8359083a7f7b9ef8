package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_DefaultsAndEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[database]
user = "booking"
dbname = "appointments"

[business]
name = "Quiet Hands Massage"
`)
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("ADMIN_TOKEN", "admin-secret")
	t.Setenv("DB_PORT", "6543")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "America/Chicago", cfg.Business.TimeZone)
	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "admin-secret", cfg.Admin.Token)
	assert.Equal(t, "host=localhost port=6543 user=booking password=from-env dbname=appointments sslmode=disable", cfg.Database.DSN())
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "missing dbname", content: `[server]
http_port = 9000`},
		{name: "unknown time zone", content: `[database]
dbname = "x"
[business]
time_zone = "Mars/Olympus"`},
		{name: "platform without token", content: `[database]
dbname = "x"
[platform]
enabled = true
base_url = "https://connect.example.com"
location_id = "L1"`},
		{name: "payments without key", content: `[database]
dbname = "x"
[payments]
enabled = true`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_BadEnvPort(t *testing.T) {
	t.Setenv("HTTP_PORT", "eighty")
	_, err := Load(writeConfig(t, `[database]
dbname = "x"`))
	assert.Error(t, err)
}
