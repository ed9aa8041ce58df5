package csvsql

import "github.com/nao1215/csvsql/domain/model"

// stdinTableName names tables read from unnamed inputs.
const stdinTableName = "stdin"

// TableNameQueue assigns table names to inputs. Explicit names are consumed
// front to back, one per input; once they run out, names derive from the
// input's file name, or "stdin" when it has none.
type TableNameQueue struct {
	names []string
}

// NewTableNameQueue returns a queue holding a copy of names.
func NewTableNameQueue(names []string) *TableNameQueue {
	return &TableNameQueue{names: append([]string(nil), names...)}
}

// Resolve returns the table name for src. It must be called once per input,
// in input order.
func (q *TableNameQueue) Resolve(src *InputSource) string {
	return q.resolve(src.Name())
}

func (q *TableNameQueue) resolve(fileName string) string {
	if len(q.names) > 0 {
		name := q.names[0]
		q.names = q.names[1:]
		return name
	}
	if fileName == "" {
		return stdinTableName
	}
	return model.TableFromFilePath(fileName)
}

// Remaining returns the explicit names not consumed yet.
func (q *TableNameQueue) Remaining() []string {
	return append([]string(nil), q.names...)
}
