package csvsql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableNameQueue(t *testing.T) {
	t.Parallel()

	t.Run("derived names", func(t *testing.T) {
		t.Parallel()
		q := NewTableNameQueue(nil)
		assert.Equal(t, "sales", q.resolve("/data/sales.csv.gz"))
		assert.Equal(t, "report", q.resolve("report.xlsx"))
		assert.Equal(t, "stdin", q.resolve(""))
		assert.Equal(t, "notes", q.resolve("notes"))
	})

	t.Run("explicit names are consumed in order", func(t *testing.T) {
		t.Parallel()
		q := NewTableNameQueue([]string{"x", "y"})
		assert.Equal(t, "x", q.resolve("a.csv"))
		assert.Equal(t, []string{"y"}, q.Remaining())
		assert.Equal(t, "y", q.resolve(""))
		assert.Equal(t, "c", q.resolve("c.csv"))
		assert.Empty(t, q.Remaining())
	})

	t.Run("input names are copied", func(t *testing.T) {
		t.Parallel()
		names := []string{"x"}
		q := NewTableNameQueue(names)
		names[0] = "changed"
		assert.Equal(t, "x", q.resolve("a.csv"))
	})

	t.Run("resolve from an open input", func(t *testing.T) {
		t.Parallel()
		q := NewTableNameQueue(nil)
		assert.Equal(t, "users", q.Resolve(&InputSource{name: "dir/users.tsv"}))
	})
}
