// Package schema describes the column capabilities of the underlying
// store. Deployments run different revisions of the schema; the core
// introspects once per connection and queries only what exists.
package schema

import "context"

// Known table names the core may query.
const (
	TableStandardQty    = "std_qty_helper"
	TableStockData      = "stock_data"
	TableTransactions   = "stock_transactions"
	TableItemsList      = "items_list"
	TableScenarios      = "scenarios"
	TableProjectDetails = "project_details"
)

// Table is the column capability set of one table.
type Table struct {
	Name    string
	columns map[string]struct{}
}

// NewTable builds a Table descriptor from its column names.
// Column names are stored as given; callers normalize case upstream.
func NewTable(name string, columns []string) Table {
	set := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		set[c] = struct{}{}
	}
	return Table{Name: name, columns: set}
}

// Has reports whether the table carries the column.
func (t Table) Has(column string) bool {
	_, ok := t.columns[column]
	return ok
}

// HasAll reports whether the table carries every listed column.
func (t Table) HasAll(columns ...string) bool {
	for _, c := range columns {
		if !t.Has(c) {
			return false
		}
	}
	return true
}

// Exists reports whether the table is present at all.
func (t Table) Exists() bool {
	return t.columns != nil
}

// Database is the capability set of the whole store, built once per
// connection by the Introspector.
type Database struct {
	tables map[string]Table
}

// NewDatabase builds a Database descriptor from table descriptors.
func NewDatabase(tables []Table) Database {
	m := make(map[string]Table, len(tables))
	for _, t := range tables {
		m[t.Name] = t
	}
	return Database{tables: m}
}

// Table returns the descriptor for a table. Absent tables yield a
// descriptor whose Exists() is false and whose Has() is always false.
func (d Database) Table(name string) Table {
	if t, ok := d.tables[name]; ok {
		return t
	}
	return Table{Name: name}
}

// Introspector discovers the store's capability set.
type Introspector interface {
	Introspect(ctx context.Context) (Database, error)
}
