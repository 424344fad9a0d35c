package storage

import (
	"database/sql/driver"
	"strings"

	"modernc.org/sqlite"
)

// FoldFunc is the SQL name of the Unicode case-folding function
// registered on every connection. SQLite's LOWER only folds ASCII.
const FoldFunc = "usdh_fold"

func init() {
	sqlite.MustRegisterDeterministicScalarFunction(FoldFunc, 1, func(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
		switch v := args[0].(type) {
		case string:
			return Fold(v), nil
		case []byte:
			return Fold(string(v)), nil
		default:
			return v, nil
		}
	})
}

// Fold lowercases s the same way FoldFunc does in SQL.
func Fold(s string) string {
	return strings.ToLower(s)
}
