package csvsql

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nao1215/csvsql/driver"
)

func TestSplitQueries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "single", query: "SELECT 1", want: []string{"SELECT 1"}},
		{name: "trailing separator", query: "SELECT 1;", want: []string{"SELECT 1"}},
		{name: "several", query: " UPDATE t SET a = 1 ;\nSELECT a FROM t ", want: []string{"UPDATE t SET a = 1", "SELECT a FROM t"}},
		{name: "empty statements dropped", query: ";; SELECT 1 ;  ;", want: []string{"SELECT 1"}},
		{name: "nothing", query: " ; ", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, SplitQueries(tt.query))
		})
	}
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	session, err := OpenSession(context.Background(), driver.MemoryDescriptor, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func TestQueryRunner_run(t *testing.T) {
	t.Parallel()

	t.Run("last result set is written", func(t *testing.T) {
		t.Parallel()
		session := newTestSession(t)
		var out bytes.Buffer
		runner := &queryRunner{tx: session.Tx(), out: NewOutputWriter(&out, WriterOptions{}), logger: zerolog.Nop()}

		err := runner.run(context.Background(),
			"CREATE TABLE t (a INTEGER, b TEXT); INSERT INTO t VALUES (1, 'x'), (2, NULL); SELECT a, b FROM t ORDER BY a")
		require.NoError(t, err)
		assert.Equal(t, "a,b\n1,x\n2,\n", out.String())
	})

	t.Run("statement without result columns writes nothing", func(t *testing.T) {
		t.Parallel()
		session := newTestSession(t)
		var out bytes.Buffer
		runner := &queryRunner{tx: session.Tx(), out: NewOutputWriter(&out, WriterOptions{}), logger: zerolog.Nop()}

		require.NoError(t, runner.run(context.Background(), "CREATE TABLE t (a INTEGER); INSERT INTO t VALUES (1)"))
		assert.Empty(t, out.String())
	})

	t.Run("empty query", func(t *testing.T) {
		t.Parallel()
		session := newTestSession(t)
		var out bytes.Buffer
		runner := &queryRunner{tx: session.Tx(), out: NewOutputWriter(&out, WriterOptions{}), logger: zerolog.Nop()}

		require.NoError(t, runner.run(context.Background(), ";"))
		assert.Empty(t, out.String())
	})

	t.Run("failure names the statement", func(t *testing.T) {
		t.Parallel()
		session := newTestSession(t)
		runner := &queryRunner{tx: session.Tx(), out: NewOutputWriter(&bytes.Buffer{}, WriterOptions{}), logger: zerolog.Nop()}

		err := runner.run(context.Background(), "INSERT INTO missing VALUES (1); SELECT 1")
		var execErr *ExecutionError
		require.ErrorAs(t, err, &execErr)
		assert.Equal(t, "INSERT INTO missing VALUES (1)", execErr.Statement)
		assert.Contains(t, err.Error(), "INSERT INTO missing VALUES (1)")
	})
}
