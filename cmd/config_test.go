package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	t.Run("get all shows every key", func(t *testing.T) {
		env := newOfflineEnv(t)

		out := env.run("config")
		env.contains(out, "canvas.host: \n")
		env.contains(out, "http.timeout: 30s\n")
		env.contains(out, "audit.enabled: true\n")
	})

	t.Run("token is masked", func(t *testing.T) {
		env := newOfflineEnv(t)

		out := env.run("config", "canvas.token", "1234~secretvalue")
		env.contains(out, "canvas.token = ********alue (global)")
		assert.NotContains(t, out, "secret")

		out = env.run("config", "canvas.token")
		assert.Equal(t, "********alue\n", out)

		data, err := os.ReadFile(filepath.Join(env.home, ".canvas-mcp", "config.yaml"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "1234~secretvalue")
	})

	t.Run("local scope", func(t *testing.T) {
		env := newOfflineEnv(t)

		out := env.run("config", "--local", "canvas.host", "https://local.example.edu/")
		env.contains(out, "canvas.host = local.example.edu (local)")
		assert.FileExists(t, filepath.Join(env.dir, ".canvas-mcp", "config.yaml"))

		// Local config now exists, so plain reads use it
		out = env.run("config", "canvas.host")
		assert.Equal(t, "local.example.edu\n", out)
	})

	t.Run("saved credentials are used", func(t *testing.T) {
		env := newTestEnv(t)
		env.env = append(env.env, "CANVAS_API_TOKEN=", "CANVAS_DOMAIN=")

		env.run("config", "canvas.token", "test-token-1234")
		env.run("config", "canvas.host", "school.test")

		out := env.run("whoami")
		env.contains(out, "Sam Student")
	})
}

func TestConfig_EnvOverride(t *testing.T) {
	env := newTestEnv(t)

	stdout, stderr, err := env.exec("config", "canvas.token", "saved-token-5678")
	require.NoError(t, err)
	assert.Equal(t, "canvas.token = ********5678 (global)\n", stdout)
	env.contains(stderr, "note: CANVAS_API_TOKEN is set and overrides this value")

	// The environment token still authenticates
	out := env.run("whoami")
	env.contains(out, "Sam Student")
}

func TestConfig_Set(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"canvas.host", "school.instructure.com", "school.instructure.com"},
		{"http.timeout", "45s", "45s"},
		{"audit.enabled", "false", "false"},
		{"canvas.base_url", "http://localhost:3000", "http://localhost:3000"},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			env := newOfflineEnv(t)

			env.run("config", tc.key, tc.value)
			out := env.run("config", tc.key)
			env.contains(out, tc.want)
		})
	}
}

func TestConfig_Errors(t *testing.T) {
	tests := []struct {
		name       string
		key, value string
	}{
		{"invalid key", "invalid.key", "value"},
		{"timeout too long", "http.timeout", "1h"},
		{"audit not bool", "audit.enabled", "maybe"},
		{"base url without scheme", "canvas.base_url", "localhost:3000"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newOfflineEnv(t)

			_, err := env.runErr("config", tc.key, tc.value)
			assert.Error(t, err)
		})
	}
}

func TestConfig_BrokenFile(t *testing.T) {
	env := newOfflineEnv(t)
	path := filepath.Join(env.home, ".canvas-mcp", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("canvas: [unclosed"), 0600))

	out, err := env.runErr("courses")
	require.Error(t, err)
	env.contains(out, "malformed config file")

	// Offline commands still work
	env.run("guide")
	env.run("version")
}
