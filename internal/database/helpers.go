package database

import (
	"database/sql"
	"log/slog"
)

// closeRows closes a Rows set, logging instead of returning the close error
// since callers are already in a defer.
func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		slog.Error("error closing rows", "error", err)
	}
}
