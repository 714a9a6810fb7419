package lookup

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5"
)

// Querier is the subset of *pgxpool.Pool, *pgx.Conn and pgx.Tx used by Postgres.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var identRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// PostgresLookup checks whether a column holds a value.
type PostgresLookup struct {
	db    Querier
	query string
}

// Postgres builds a lookup over table.column. table may be schema-qualified
// ("auth.users"). Identifiers are validated and quoted; values are always
// passed as query arguments.
func Postgres(db Querier, table, column string) (*PostgresLookup, error) {
	if db == nil {
		return nil, ErrNilClient
	}

	tableIdent, err := identifier(table)
	if err != nil {
		return nil, err
	}
	columnIdent, err := identifier(column)
	if err != nil {
		return nil, err
	}

	return &PostgresLookup{
		db: db,
		query: fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)",
			tableIdent.Sanitize(), columnIdent.Sanitize()),
	}, nil
}

func identifier(name string) (pgx.Identifier, error) {
	var parts pgx.Identifier
	start := 0
	for i := 0; i <= len(name); i++ {
		if i < len(name) && name[i] != '.' {
			continue
		}
		part := name[start:i]
		if !identRegex.MatchString(part) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidIdentifier, name)
		}
		parts = append(parts, part)
		start = i + 1
	}
	return parts, nil
}

// Query returns the SQL statement the lookup runs.
func (l *PostgresLookup) Query() string {
	return l.query
}

func (l *PostgresLookup) Exists(ctx context.Context, value any) (bool, error) {
	arg, err := normalize(value)
	if err != nil {
		return false, err
	}

	var exists bool
	if err := l.db.QueryRow(ctx, l.query, arg).Scan(&exists); err != nil {
		return false, errors.Join(ErrLookupFailed, err)
	}
	return exists, nil
}
