package schema

import (
	"fmt"

	"github.com/pingcap/tidb/pkg/parser"
	"github.com/pingcap/tidb/pkg/parser/ast"
	_ "github.com/pingcap/tidb/pkg/parser/test_driver" // value expressions for default clauses
)

// DDLShape is what the parser found in a CREATE TABLE statement.
type DDLShape struct {
	Table         string
	Columns       []string
	PrimaryKey    []string
	AutoIncrement []string
}

// ParseDDL parses a single CREATE TABLE statement and extracts its key layout.
func ParseDDL(ddl string) (*DDLShape, error) {
	stmts, _, err := parser.New().Parse(ddl, "", "")
	if err != nil {
		return nil, fmt.Errorf("SQL parse error: %v", err)
	}
	if len(stmts) != 1 {
		return nil, fmt.Errorf("expected a single statement, got %d", len(stmts))
	}

	create, ok := stmts[0].(*ast.CreateTableStmt)
	if !ok {
		return nil, fmt.Errorf("expected CREATE TABLE, got %T", stmts[0])
	}

	shape := &DDLShape{Table: create.Table.Name.O}
	for _, col := range create.Cols {
		name := col.Name.Name.L
		shape.Columns = append(shape.Columns, name)
		for _, opt := range col.Options {
			switch opt.Tp {
			case ast.ColumnOptionAutoIncrement:
				shape.AutoIncrement = append(shape.AutoIncrement, name)
			case ast.ColumnOptionPrimaryKey:
				shape.PrimaryKey = append(shape.PrimaryKey, name)
			}
		}
	}
	for _, c := range create.Constraints {
		if c.Tp != ast.ConstraintPrimaryKey {
			continue
		}
		for _, key := range c.Keys {
			if key.Column != nil {
				shape.PrimaryKey = append(shape.PrimaryKey, key.Column.Name.L)
			}
		}
	}
	return shape, nil
}

// Validate checks that the table's DDL makes PrimaryColumn the sole primary
// key and the auto-increment column.
func (s TableSpec) Validate() error {
	shape, err := ParseDDL(s.DDL("", CharsetCollate("utf8mb4", "utf8mb4_unicode_520_ci")))
	if err != nil {
		return fmt.Errorf("%s: %w", s.Name, err)
	}
	if shape.Table != s.Name {
		return fmt.Errorf("%s: DDL creates table %q", s.Name, shape.Table)
	}
	if len(shape.PrimaryKey) != 1 || shape.PrimaryKey[0] != s.PrimaryColumn {
		return fmt.Errorf("%s: primary key is %v, want [%s]", s.Name, shape.PrimaryKey, s.PrimaryColumn)
	}
	if len(shape.AutoIncrement) != 1 || shape.AutoIncrement[0] != s.PrimaryColumn {
		return fmt.Errorf("%s: auto_increment columns are %v, want [%s]", s.Name, shape.AutoIncrement, s.PrimaryColumn)
	}
	return nil
}

// ValidateCatalog validates every spec in the catalog.
func ValidateCatalog() error {
	for _, spec := range catalog {
		if err := spec.Validate(); err != nil {
			return err
		}
	}
	return nil
}
