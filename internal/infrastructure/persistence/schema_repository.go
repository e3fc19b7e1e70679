package persistence

import (
	"database/sql"
	"errors"
	"regexp"

	"github.com/go-sql-driver/mysql"
	apperrors "github.com/rankmath/repair-action-scheduler/pkg/errors"
)

// SchemaRepository inspects and mutates the Action Scheduler tables.
// All physical names are the catalog names with the host prefix applied.
type SchemaRepository struct {
	db             *sql.DB
	prefix         string
	charsetCollate string
}

// NewSchemaRepository creates a new SchemaRepository
func NewSchemaRepository(db *sql.DB, prefix, charsetCollate string) *SchemaRepository {
	return &SchemaRepository{
		db:             db,
		prefix:         prefix,
		charsetCollate: charsetCollate,
	}
}

// Prefix returns the table prefix this repository applies.
func (r *SchemaRepository) Prefix() string {
	return r.prefix
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z0-9_$]*$`)

// ValidIdentifierPart reports whether s can be spliced into a backquoted identifier.
func ValidIdentifierPart(s string) bool {
	return identifierPattern.MatchString(s)
}

// classifyDDLError maps driver errors onto the application error taxonomy.
func classifyDDLError(op, table string, err error) error {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == ErTableExistsError {
		return apperrors.NewConflictError("table", table, err)
	}
	return apperrors.NewDatabaseError(op, table, err)
}
