package explorer

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/xlab/treeprint"

	"SpiderSQLAgent/app/storage"
)

// Explorer prints database structure and sample data for humans. It has no
// part in the reasoning loop; the model discovers schemas through SQL.
type Explorer struct {
	store storage.Interface
	out   io.Writer
}

func New(store storage.Interface, out io.Writer) *Explorer {
	return &Explorer{store: store, out: out}
}

// ListDatabases prints every database found under the Spider directory.
func (e *Explorer) ListDatabases() error {
	databases, err := e.store.ListDatabases()
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "Found %d Spider databases:\n", len(databases))
	for i, db := range databases {
		if i == 20 {
			fmt.Fprintf(e.out, "  ... and %d more\n", len(databases)-20)
			break
		}
		fmt.Fprintf(e.out, "  %s\n", db)
	}
	return nil
}

// Explore prints the full schema tree and sample rows for every table.
func (e *Explorer) Explore(ctx context.Context, dbName string) error {
	return e.explore(ctx, dbName, -1, 3)
}

// Quick prints at most maxTables tables with a two-row sample each.
func (e *Explorer) Quick(ctx context.Context, dbName string, maxTables int) error {
	if maxTables <= 0 {
		maxTables = 3
	}
	return e.explore(ctx, dbName, maxTables, 2)
}

func (e *Explorer) explore(ctx context.Context, dbName string, maxTables, sampleLimit int) error {
	tables, err := e.tableNames(ctx, dbName)
	if err != nil {
		return err
	}

	fmt.Fprintf(e.out, "Exploring database: %s (%d tables)\n\n", dbName, len(tables))

	shown := tables
	if maxTables > 0 && len(tables) > maxTables {
		shown = tables[:maxTables]
	}

	tree := treeprint.New()
	tree.SetValue(dbName)
	for _, tableName := range shown {
		branch := tree.AddBranch(tableName)
		info := e.store.TableInfo(ctx, dbName, tableName)
		if info.Failed() {
			branch.AddNode("error: " + info.Err.Message)
			continue
		}
		for _, column := range info.Rows {
			branch.AddNode(columnLabel(column))
		}
	}
	fmt.Fprintln(e.out, tree.String())

	for _, tableName := range shown {
		fmt.Fprintf(e.out, "Sample data from '%s' (first %d rows):\n", tableName, sampleLimit)
		sample := e.store.SampleRows(ctx, dbName, tableName, sampleLimit)
		if sample.Failed() {
			fmt.Fprintf(e.out, "  error: %s\n\n", sample.Err.Message)
			continue
		}
		renderRows(e.out, sample.Rows)
		fmt.Fprintln(e.out)
	}

	if len(shown) < len(tables) {
		fmt.Fprintf(e.out, "... and %d more tables\n", len(tables)-len(shown))
	}
	return nil
}

func (e *Explorer) tableNames(ctx context.Context, dbName string) ([]string, error) {
	result := e.store.Tables(ctx, dbName)
	if result.Failed() {
		return nil, fmt.Errorf("list tables for %s: %s", dbName, result.Err.Message)
	}
	var names []string
	for _, row := range result.Rows {
		if name := row["name"]; name != nil {
			names = append(names, *name)
		}
	}
	return names, nil
}

func columnLabel(column storage.Row) string {
	name := "?"
	colType := ""
	if v := column["name"]; v != nil {
		name = *v
	}
	if v := column["type"]; v != nil {
		colType = *v
	}
	label := name
	if colType != "" {
		label += " " + colType
	}
	if v := column["pk"]; v != nil && *v != "0" {
		label += " PK"
	}
	return label
}

// renderRows prints a result set as a bordered table, NULLs shown as NULL.
func renderRows(out io.Writer, rows []storage.Row) {
	if len(rows) == 0 {
		fmt.Fprintln(out, "  (no rows)")
		return
	}

	columns := make([]string, 0, len(rows[0]))
	for column := range rows[0] {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, len(columns))
	for i, column := range columns {
		header[i] = column
	}
	t.AppendHeader(header)

	for _, row := range rows {
		cells := make(table.Row, len(columns))
		for i, column := range columns {
			if row[column] == nil {
				cells[i] = "NULL"
			} else {
				cells[i] = *row[column]
			}
		}
		t.AppendRow(cells)
	}
	t.Render()
}
