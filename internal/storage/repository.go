// Package storage is the persistence gateway: a single local SQLite
// database holding the expense table and a key-value settings table.
// It owns id generation and createdAt stamping at insert time.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Savantrexs/microspend/internal/core"

	_ "modernc.org/sqlite"
)

// SettingDefaultCurrency is the settings key for the default currency.
const SettingDefaultCurrency = "default_currency"

type SQLiteRepository struct {
	db *sql.DB

	// now supplies insert-time stamps; replaced in tests.
	now func() time.Time
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db, now: time.Now}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// InsertExpense persists a new expense, assigning its id and local-time
// createdAt stamp, and returns the fully populated record.
func (r *SQLiteRepository) InsertExpense(ctx context.Context, amount decimal.Decimal, currency core.Currency, note string, category core.Category) (core.Expense, error) {
	e := core.Expense{
		ID:        uuid.NewString(),
		Amount:    amount,
		Currency:  currency,
		Note:      note,
		Category:  category,
		CreatedAt: core.LocalTimestamp(r.now()),
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, fmt.Errorf("validate expense: %w", err)
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (id, amount, currency, note, category, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Amount.String(), string(e.Currency), nullable(e.Note), nullable(string(e.Category)), e.CreatedAt,
	)
	if err != nil {
		return core.Expense{}, fmt.Errorf("insert expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", e.ID,
		"amount", e.Amount.String(),
		"currency", e.Currency,
		"created_at", e.CreatedAt)

	return e, nil
}

// ExpensesForDate returns the expenses stamped on the given local
// calendar date, newest created first.
func (r *SQLiteRepository) ExpensesForDate(ctx context.Context, localDate string) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, amount, currency, note, category, created_at
		   FROM expenses
		  WHERE substr(created_at, 1, 10) = ?
		  ORDER BY created_at DESC`,
		localDate,
	)
	if err != nil {
		return nil, fmt.Errorf("query expenses for date %s: %w", localDate, err)
	}
	defer rows.Close()

	return scanExpenses(rows)
}

// AllExpenses returns every expense, newest created first.
func (r *SQLiteRepository) AllExpenses(ctx context.Context) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, amount, currency, note, category, created_at
		   FROM expenses
		  ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query all expenses: %w", err)
	}
	defer rows.Close()

	return scanExpenses(rows)
}

// DeleteExpense removes an expense by id. Deleting a missing id is a
// no-op: the operation is idempotent.
func (r *SQLiteRepository) DeleteExpense(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expense %s: %w", id, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		slog.DebugContext(ctx, "Delete of unknown expense id", "id", id)
	}
	return nil
}

// GetSetting reads a settings value; ok is false when the key is absent.
func (r *SQLiteRepository) GetSetting(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get setting %s: %w", key, err)
	}
	return value, true, nil
}

// SetSetting writes a settings value (insert or replace).
func (r *SQLiteRepository) SetSetting(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`, key, value)
	if err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}

// DefaultCurrency returns the persisted default currency, falling back
// to core.DefaultCurrency when the setting is absent or unrecognized.
func (r *SQLiteRepository) DefaultCurrency(ctx context.Context) (core.Currency, error) {
	value, ok, err := r.GetSetting(ctx, SettingDefaultCurrency)
	if err != nil {
		return "", err
	}
	if !ok {
		return core.DefaultCurrency, nil
	}
	c := core.Currency(value)
	if err := c.Validate(); err != nil {
		slog.WarnContext(ctx, "Unrecognized stored default currency, falling back",
			"value", value, "fallback", core.DefaultCurrency)
		return core.DefaultCurrency, nil
	}
	return c, nil
}

// SeedDefaultCurrency writes the default currency setting only when no
// value has been stored yet. A currency the user already picked wins
// over the configured fallback.
func (r *SQLiteRepository) SeedDefaultCurrency(ctx context.Context, c core.Currency) error {
	_, ok, err := r.GetSetting(ctx, SettingDefaultCurrency)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	return r.SetDefaultCurrency(ctx, c)
}

// SetDefaultCurrency persists the default currency setting.
func (r *SQLiteRepository) SetDefaultCurrency(ctx context.Context, c core.Currency) error {
	if err := c.Validate(); err != nil {
		return err
	}
	return r.SetSetting(ctx, SettingDefaultCurrency, string(c))
}

func scanExpenses(rows *sql.Rows) ([]core.Expense, error) {
	var out []core.Expense
	for rows.Next() {
		var (
			e              core.Expense
			amount         string
			currency       string
			note, category sql.NullString
		)
		if err := rows.Scan(&e.ID, &amount, &currency, &note, &category, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan expense row: %w", err)
		}
		d, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("parse stored amount %q: %w", amount, err)
		}
		e.Amount = d
		e.Currency = core.Currency(currency)
		e.Note = note.String
		e.Category = core.Category(category.String)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expense rows: %w", err)
	}
	return out, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
