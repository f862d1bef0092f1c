package database

import (
	"database/sql"
	"regexp"
	"strconv"
)

// Dialect abstracts the differences between the supported database
// engines so the repositories can write portable SQL with ? placeholders.
type Dialect interface {
	// DriverName returns the driver name for sql.Open
	DriverName() string

	// DSN builds the data source name for the connection
	DSN(config DialectConfig) string

	// RewriteQuery converts placeholder syntax where the engine needs it
	RewriteQuery(query string) string

	// SupportsLastInsertId reports whether the driver implements LastInsertId()
	SupportsLastInsertId() bool

	// ConfigureConnection applies engine-specific connection settings
	ConfigureConnection(db *sql.DB) error

	// MigrationsSubdir names the per-engine migrations subdirectory
	MigrationsSubdir() string

	// CreateMigrationsTableQuery returns the SQL for the migrations tracking table
	CreateMigrationsTableQuery() string

	// BoolValue renders a boolean literal in the engine's SQL
	BoolValue(b bool) string
}

// DialectConfig holds the connection settings a dialect needs
type DialectConfig struct {
	// SQLite file path
	Path string

	// PostgreSQL/MySQL connection URL
	URL string
}

var placeholderRegexp = regexp.MustCompile(`\?`)

// rewritePlaceholdersToNumbered converts ? placeholders to $1, $2, ...
func rewritePlaceholdersToNumbered(query string) string {
	counter := 0
	return placeholderRegexp.ReplaceAllStringFunc(query, func(match string) string {
		counter++
		return "$" + strconv.Itoa(counter)
	})
}
