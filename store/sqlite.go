package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/manali-mahadik-10/FinAgent/core"
)

// dateLayout is how transaction dates are stored. Only the calendar day
// matters for analysis.
const dateLayout = "2006-01-02"

// SQLiteStore persists transactions in SQLite. SQLite serializes writers
// on its own, which is all the single-insert write path needs.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the transaction database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS transactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL,
		category TEXT NOT NULL,
		amount REAL NOT NULL,
		description TEXT,
		kind TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_transactions_kind ON transactions(kind);
	CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);
	`

	_, err := s.db.Exec(schema)
	return err
}

// List returns transactions ordered by date then insertion id. Kind
// filters to one side of the ledger; the empty kind returns everything.
func (s *SQLiteStore) List(ctx context.Context, kind core.TxKind) ([]core.Transaction, error) {
	query := `
		SELECT id, date, category, amount, description, kind
		FROM transactions
		ORDER BY date, id
	`
	args := []interface{}{}
	if kind != "" {
		query = `
			SELECT id, date, category, amount, description, kind
			FROM transactions
			WHERE kind = ?
			ORDER BY date, id
		`
		args = append(args, string(kind))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrDataUnavailable, err)
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		var tx core.Transaction
		var dateStr string
		var desc sql.NullString
		if err := rows.Scan(&tx.ID, &dateStr, &tx.Category, &tx.Amount, &desc, &tx.Kind); err != nil {
			return nil, fmt.Errorf("%w: %v", core.ErrDataUnavailable, err)
		}
		tx.Date, err = time.Parse(dateLayout, dateStr)
		if err != nil {
			return nil, fmt.Errorf("%w: bad date %q: %v", core.ErrDataUnavailable, dateStr, err)
		}
		tx.Description = desc.String
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrDataUnavailable, err)
	}
	return txs, nil
}

// Append inserts a single transaction and returns its assigned id.
func (s *SQLiteStore) Append(ctx context.Context, tx core.Transaction) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (date, category, amount, description, kind)
		VALUES (?, ?, ?, ?, ?)
	`, tx.Date.Format(dateLayout), tx.Category, tx.Amount, tx.Description, string(tx.Kind))
	if err != nil {
		return 0, fmt.Errorf("failed to insert transaction: %w", err)
	}
	return res.LastInsertId()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
