package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"AUTHOR", "FORMAT", "OUTPUT_DIR", "PAGE_SIZE", "LOG_LEVEL", "COMPRESS"} {
		t.Setenv(envPrefix+"_"+key, "")
		os.Unsetenv(envPrefix + "_" + key)
	}
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("format", "pdf", "")
	fs.String("output-dir", "", "")
	fs.String("author", "Little Farms System", "")
	fs.String("page-size", "A4", "")
	fs.String("log-level", "warn", "")
	fs.Bool("compress", true, "")
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, &Config{
		Author:    "Little Farms System",
		Format:    "pdf",
		OutputDir: "",
		PageSize:  "A4",
		LogLevel:  "warn",
		Compress:  true,
	}, cfg)
	assert.Equal(t, zerolog.WarnLevel, cfg.Level())
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("TASKREPORT_FORMAT", "xlsx")
	t.Setenv("TASKREPORT_OUTPUT_DIR", "/tmp/reports")
	t.Setenv("TASKREPORT_COMPRESS", "false")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "xlsx", cfg.Format)
	assert.Equal(t, "/tmp/reports", cfg.OutputDir)
	assert.False(t, cfg.Compress)
}

func TestLoad_ConfigFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "taskreport.yaml")
	content := `author: "Ops Team"
page_size: "Letter"
log_level: "debug"`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "Ops Team", cfg.Author)
	assert.Equal(t, "Letter", cfg.PageSize)
	assert.Equal(t, zerolog.DebugLevel, cfg.Level())
	assert.Equal(t, "pdf", cfg.Format)
}

func TestLoad_FlagsWinOverEnvAndFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("TASKREPORT_FORMAT", "xlsx")
	path := filepath.Join(t.TempDir(), "taskreport.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: json\n"), 0o644))

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--format", "csv", "--output-dir", "out"}))

	cfg, err := Load(path, fs)
	require.NoError(t, err)
	assert.Equal(t, "csv", cfg.Format)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, "A4", cfg.PageSize)
}

func TestLoad_UnsetFlagsDoNotHideEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("TASKREPORT_PAGE_SIZE", "Legal")

	fs := testFlags()
	require.NoError(t, fs.Parse(nil))

	cfg, err := Load("", fs)
	require.NoError(t, err)
	assert.Equal(t, "Legal", cfg.PageSize)
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestValidate(t *testing.T) {
	valid := Config{Format: "PDF", PageSize: "letter", LogLevel: "INFO"}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"format", Config{Format: "docx", PageSize: "A4", LogLevel: "warn"}, "unsupported format"},
		{"page size", Config{Format: "pdf", PageSize: "B5", LogLevel: "warn"}, "unsupported page size"},
		{"log level", Config{Format: "pdf", PageSize: "A4", LogLevel: "loud"}, "invalid log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorContains(t, tt.cfg.Validate(), tt.want)
		})
	}
}
