package config

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nao1215/csvsql"
	"github.com/nao1215/csvsql/infer"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func mapEnv(env map[string]string) func(string) string {
	return func(k string) string { return env[k] }
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "csvsql.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromArgs_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFromArgs(newFlagSet(), mapEnv(nil), nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.Inputs)
	assert.Empty(t, cfg.DB)
	assert.Equal(t, infer.NoSniffLimit, cfg.SniffLimit)
	assert.Equal(t, "warn", cfg.LogLevel)

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Equal(t, csvsql.DefaultOptions(), opts)
}

func TestLoadFromArgs_Flags(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFromArgs(newFlagSet(), mapEnv(nil), []string{
		"-i", "postgresql",
		"--tables", "a,b",
		"-y", "1024",
		"-H", "-I",
		"-d", "tab",
		"-e", "latin1",
		"-K", "2",
		"--out-delimiter", ";",
		"--crlf",
		"one.csv", "two.csv",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"one.csv", "two.csv"}, cfg.Inputs)

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Equal(t, "postgresql", opts.Dialect)
	assert.Equal(t, []string{"a", "b"}, opts.Tables)
	assert.Equal(t, 1024, opts.SniffLimit)
	assert.True(t, opts.NoHeaderRow)
	assert.True(t, opts.NoInference)
	assert.Equal(t, '\t', opts.Reader.Delimiter)
	assert.Equal(t, "latin1", opts.Reader.Encoding)
	assert.Equal(t, 2, opts.Reader.SkipLines)
	assert.Equal(t, csvsql.WriterOptions{Delimiter: ';', UseCRLF: true}, opts.Writer)
}

func TestLoadFromArgs_Environment(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"CSVSQL_DB":          "sqlite:///env.db",
		"CSVSQL_DB_SCHEMA":   "main",
		"CSVSQL_ENCODING":    "utf-16",
		"CSVSQL_SNIFF_LIMIT": "0",
		"CSVSQL_LOG_LEVEL":   "debug",
	}

	t.Run("seeds defaults", func(t *testing.T) {
		t.Parallel()
		cfg, err := LoadFromArgs(newFlagSet(), mapEnv(env), nil)
		require.NoError(t, err)
		assert.Equal(t, "sqlite:///env.db", cfg.DB)
		assert.Equal(t, "main", cfg.DBSchema)
		assert.Equal(t, "utf-16", cfg.Encoding)
		assert.Equal(t, 0, cfg.SniffLimit)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("flags win", func(t *testing.T) {
		t.Parallel()
		cfg, err := LoadFromArgs(newFlagSet(), mapEnv(env), []string{"--db", "sqlite:///flag.db"})
		require.NoError(t, err)
		assert.Equal(t, "sqlite:///flag.db", cfg.DB)
	})

	t.Run("invalid sniff limit", func(t *testing.T) {
		t.Parallel()
		_, err := LoadFromArgs(newFlagSet(), mapEnv(map[string]string{"CSVSQL_SNIFF_LIMIT": "lots"}), nil)
		require.ErrorIs(t, err, ErrInvalid)
	})
}

func TestLoadFromArgs_ConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("file overrides environment, flags override file", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, `
db: sqlite:///file.db
insert: true
tables: [users, orders]
snifflimit: 4096
query: SELECT 1
`)
		env := map[string]string{"CSVSQL_DB": "sqlite:///env.db"}
		cfg, err := LoadFromArgs(newFlagSet(), mapEnv(env), []string{"--config", path, "-y", "10"})
		require.NoError(t, err)
		assert.Equal(t, "sqlite:///file.db", cfg.DB)
		assert.True(t, cfg.Insert)
		assert.Equal(t, []string{"users", "orders"}, cfg.TableNames())
		assert.Equal(t, 10, cfg.SniffLimit)
		assert.Equal(t, "SELECT 1", cfg.Query)
	})

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "workers: 4\n")
		_, err := LoadFromArgs(newFlagSet(), mapEnv(nil), []string{"--config", path})
		require.ErrorIs(t, err, ErrInvalid)
		assert.Contains(t, err.Error(), "workers")
	})

	t.Run("short names are rejected", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "d: ';'\n")
		_, err := LoadFromArgs(newFlagSet(), mapEnv(nil), []string{"--config", path})
		require.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("bad value", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "skip-lines: many\n")
		_, err := LoadFromArgs(newFlagSet(), mapEnv(nil), []string{"--config", path})
		require.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := LoadFromArgs(newFlagSet(), mapEnv(nil), []string{"--config", filepath.Join(t.TempDir(), "none.yaml")})
		require.ErrorIs(t, err, ErrInvalid)
	})
}

func TestConfig_InputPaths(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"-"}, (&Config{}).InputPaths(false))
	assert.Empty(t, (&Config{}).InputPaths(true))
	assert.Equal(t, []string{"a.csv"}, (&Config{Inputs: []string{"a.csv"}}).InputPaths(false))
}

func TestParseDelimiter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    rune
		wantErr bool
	}{
		{in: "", want: 0},
		{in: ",", want: ','},
		{in: "tab", want: '\t'},
		{in: `\t`, want: '\t'},
		{in: "§", want: '§'},
		{in: ";;", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := parseDelimiter("delimiter", tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
