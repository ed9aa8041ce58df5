package csvsql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nao1215/csvsql/driver"
	"github.com/nao1215/csvsql/infer"
)

func TestOptions_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(o *Options)
		wantErr string
	}{
		{
			name:   "defaults",
			modify: func(*Options) {},
		},
		{
			name:    "dialect with database",
			modify:  func(o *Options) { o.Dialect = "sqlite"; o.DB = "sqlite:///x.db" },
			wantErr: "a dialect may only be given",
		},
		{
			name:    "dialect with query",
			modify:  func(o *Options) { o.Dialect = "sqlite"; o.Query = "SELECT 1" },
			wantErr: "a dialect may only be given",
		},
		{
			name:    "insert without database",
			modify:  func(o *Options) { o.Insert = true },
			wantErr: "insert requires a database",
		},
		{
			name:    "no create without insert",
			modify:  func(o *Options) { o.DB = "sqlite:///x.db"; o.NoCreate = true },
			wantErr: "no-create is only valid together with insert",
		},
		{
			name:    "unknown dialect",
			modify:  func(o *Options) { o.Dialect = "db2" },
			wantErr: "unsupported dialect",
		},
		{
			name:    "unknown encoding",
			modify:  func(o *Options) { o.Reader.Encoding = "klingon" },
			wantErr: "invalid reader options",
		},
		{
			name:    "negative skip lines",
			modify:  func(o *Options) { o.Reader.SkipLines = -1 },
			wantErr: "invalid reader options",
		},
		{
			name:   "no create with query implies insert",
			modify: func(o *Options) { o.Query = "SELECT 1"; o.NoCreate = true },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			opts := DefaultOptions()
			tt.modify(&opts)

			_, err := opts.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrConfiguration)
			assert.Contains(t, err.Error(), tt.wantErr)

			var cfgErr *ConfigurationError
			assert.ErrorAs(t, err, &cfgErr)
		})
	}
}

func TestOptions_Validate_EphemeralDatabase(t *testing.T) {
	t.Parallel()

	t.Run("query without database", func(t *testing.T) {
		t.Parallel()
		opts := DefaultOptions()
		opts.Query = "SELECT 1"

		got, err := opts.Validate()
		require.NoError(t, err)
		assert.Equal(t, driver.MemoryDescriptor, got.DB)
		assert.True(t, got.Insert)
		assert.Empty(t, opts.DB, "receiver is not modified")
	})

	t.Run("query with database keeps insert as given", func(t *testing.T) {
		t.Parallel()
		opts := DefaultOptions()
		opts.Query = "SELECT 1"
		opts.DB = "sqlite:///x.db"

		got, err := opts.Validate()
		require.NoError(t, err)
		assert.Equal(t, "sqlite:///x.db", got.DB)
		assert.False(t, got.Insert)
	})
}

func TestOptions_inferOptions(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.Blanks = true
	opts.NoInference = true
	opts.NoHeaderRow = true
	opts.Reader.Delimiter = ';'

	got := opts.inferOptions()
	assert.Equal(t, infer.Options{
		SniffLimit:    infer.NoSniffLimit,
		BlanksAsNulls: false,
		InferTypes:    false,
		NoHeaderRow:   true,
		Reader:        infer.ReaderOptions{Delimiter: ';'},
	}, got)
}

func TestValidator_validatePath(t *testing.T) {
	t.Parallel()

	v := newValidator()
	require.NoError(t, v.validatePath("-"))
	require.Error(t, v.validatePath("  "))
	require.ErrorIs(t, v.validatePath("no/such/file.csv"), ErrFileNotFound)
	require.NoError(t, v.validatePath(t.TempDir()))
}
