package ddl

import (
	"fmt"
	"sort"
)

// Catalog records the tables defined against one database during a run.
type Catalog struct {
	tables map[string]*TableDef
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{tables: make(map[string]*TableDef)}
}

func catalogKey(schema, name string) string {
	if schema == "" {
		return name
	}
	return schema + "." + name
}

// Define registers def. Defining the same qualified name twice is an error.
func (c *Catalog) Define(def *TableDef) error {
	key := catalogKey(def.Schema, def.Name)
	if _, exists := c.tables[key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTable, key)
	}
	c.tables[key] = def
	return nil
}

// Tables returns the qualified names of all defined tables, sorted.
func (c *Catalog) Tables() []string {
	names := make([]string, 0, len(c.tables))
	for key := range c.tables {
		names = append(names, key)
	}
	sort.Strings(names)
	return names
}
