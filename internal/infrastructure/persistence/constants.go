package persistence

// Metadata queries used by the table inspector.
const (
	QueryTableExists = "SELECT COUNT(*) FROM INFORMATION_SCHEMA.TABLES " +
		"WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ?"

	QueryHasPrimaryKey = "SELECT COUNT(*) FROM INFORMATION_SCHEMA.COLUMNS " +
		"WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ? AND COLUMN_NAME = ? AND COLUMN_KEY = 'PRI'"

	QueryHasAutoIncrement = "SELECT COUNT(*) FROM INFORMATION_SCHEMA.COLUMNS " +
		"WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ? AND COLUMN_NAME = ? AND EXTRA LIKE '%auto_increment%'"
)

// DDL templates. Identifiers are validated before substitution.
const (
	DDLRenameTable = "ALTER TABLE `%s` RENAME TO `%s`"
)

// Option table layout (WordPress compatible).
const (
	DefaultOptionsTable = "options"
	ColumnOptionName    = "option_name"
	ColumnOptionValue   = "option_value"
	ColumnAutoload      = "autoload"
	AutoloadNo          = "no"
)

// ErTableExistsError is the MySQL server error for CREATE/RENAME onto an existing table.
const ErTableExistsError = 1050
