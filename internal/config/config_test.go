package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Default(t *testing.T) {
	t.Setenv(EnvVar, "")
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pngme.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\nbackup: true\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.True(t, cfg.Backup)
	require.Equal(t, "Not found", cfg.NotFoundMessage)

	level, err := cfg.Level()
	require.NoError(t, err)
	require.Equal(t, slog.LevelDebug, level)
}

func TestLoad_EnvVar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pngme.yaml")
	require.NoError(t, os.WriteFile(path, []byte("not_found_message: nothing here\n"), 0o644))
	t.Setenv(EnvVar, path)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "nothing here", cfg.NotFoundMessage)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
	}{
		{"empty", "", false},
		{"warn level", "log_level: WARN", false},
		{"unknown key", "colour: blue", true},
		{"bad level", "log_level: loud", true},
		{"bad type", "backup: [1, 2]", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
