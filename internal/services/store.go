// Package services holds the application state store: the in-memory
// snapshots of today's and all expenses, the default currency, and the
// refresh/mutate contract the HTTP layer drives. State flows one way:
// mutations hit the repository first and are applied to the snapshots
// only after persistence confirms, then subscribers are notified.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/Savantrexs/microspend/internal/core"
)

// Repository is the slice of the persistence gateway the store consumes.
type Repository interface {
	InsertExpense(ctx context.Context, amount decimal.Decimal, currency core.Currency, note string, category core.Category) (core.Expense, error)
	ExpensesForDate(ctx context.Context, localDate string) ([]core.Expense, error)
	AllExpenses(ctx context.Context) ([]core.Expense, error)
	DeleteExpense(ctx context.Context, id string) error
	DefaultCurrency(ctx context.Context) (core.Currency, error)
	SetDefaultCurrency(ctx context.Context, c core.Currency) error
}

// EventPublisher publishes expense lifecycle events. May be absent.
type EventPublisher interface {
	PublishExpenseCreated(ctx context.Context, id string) error
	PublishExpenseDeleted(ctx context.Context, id string) error
}

type Store struct {
	repo   Repository
	events EventPublisher

	// now supplies "today"; replaced in tests.
	now func() time.Time

	mu       sync.RWMutex
	today    []core.Expense
	all      []core.Expense
	currency core.Currency

	// todayDate is the local date the today snapshot was built for.
	// Once the clock rolls past midnight the snapshot is rebuilt from
	// all on the next read, so a long-running server never serves the
	// previous day's expenses as "today".
	todayDate string

	subs []chan struct{}

	// Collapses concurrent refreshes into one query wave.
	refreshGroup singleflight.Group
}

// NewStore creates a store. events may be nil when no broker is
// configured; publishes then become no-ops.
func NewStore(repo Repository, events EventPublisher) *Store {
	return &Store{
		repo:     repo,
		events:   events,
		now:      time.Now,
		currency: core.DefaultCurrency,
	}
}

// Bootstrap loads the default currency and both expense snapshots.
func (s *Store) Bootstrap(ctx context.Context) error {
	currency, err := s.repo.DefaultCurrency(ctx)
	if err != nil {
		return fmt.Errorf("load default currency: %w", err)
	}
	s.mu.Lock()
	s.currency = currency
	s.mu.Unlock()

	return s.Refresh(ctx)
}

// Refresh re-reads today's and all expenses from the repository.
func (s *Store) Refresh(ctx context.Context) error {
	_, err, _ := s.refreshGroup.Do("refresh", func() (any, error) {
		date := core.LocalDate(s.now())
		today, err := s.repo.ExpensesForDate(ctx, date)
		if err != nil {
			return nil, fmt.Errorf("refresh today: %w", err)
		}
		all, err := s.repo.AllExpenses(ctx)
		if err != nil {
			return nil, fmt.Errorf("refresh all: %w", err)
		}

		s.mu.Lock()
		s.today = today
		s.todayDate = date
		s.all = all
		s.mu.Unlock()
		s.notify()
		return nil, nil
	})
	return err
}

// Today returns a copy of today's expense snapshot, newest first. If
// the local date has rolled over since the snapshot was built, it is
// rebuilt from the full snapshot first.
func (s *Store) Today() []core.Expense {
	date := core.LocalDate(s.now())

	s.mu.RLock()
	if s.todayDate == date {
		out := append([]core.Expense(nil), s.today...)
		s.mu.RUnlock()
		return out
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.todayDate != date {
		s.today = filterByDate(s.all, date)
		s.todayDate = date
	}
	return append([]core.Expense(nil), s.today...)
}

// All returns a copy of the full expense snapshot, newest first.
func (s *Store) All() []core.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Expense(nil), s.all...)
}

// Currency returns the current default currency.
func (s *Store) Currency() core.Currency {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currency
}

// AddExpense persists a new expense in the current default currency and,
// once persistence confirms, prepends it to both snapshots.
func (s *Store) AddExpense(ctx context.Context, amount decimal.Decimal, note string, category core.Category) (core.Expense, error) {
	e, err := s.repo.InsertExpense(ctx, amount, s.Currency(), note, category)
	if err != nil {
		return core.Expense{}, fmt.Errorf("add expense: %w", err)
	}

	s.mu.Lock()
	s.all = append([]core.Expense{e}, s.all...)
	date := core.LocalDate(s.now())
	if s.todayDate != date {
		s.today = filterByDate(s.all, date)
		s.todayDate = date
	} else if core.DateOf(e.CreatedAt) == date {
		s.today = append([]core.Expense{e}, s.today...)
	}
	s.mu.Unlock()
	s.notify()

	if s.events != nil {
		if err := s.events.PublishExpenseCreated(ctx, e.ID); err != nil {
			// Event feed is best effort; the expense is saved.
			slog.ErrorContext(ctx, "Failed to publish created event", "id", e.ID, "error", err)
		}
	}

	return e, nil
}

// DeleteExpense removes an expense and, once persistence confirms,
// drops it from both snapshots. Unknown ids are a no-op.
func (s *Store) DeleteExpense(ctx context.Context, id string) error {
	if err := s.repo.DeleteExpense(ctx, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}

	s.mu.Lock()
	s.today = removeByID(s.today, id)
	s.all = removeByID(s.all, id)
	s.mu.Unlock()
	s.notify()

	if s.events != nil {
		if err := s.events.PublishExpenseDeleted(ctx, id); err != nil {
			slog.ErrorContext(ctx, "Failed to publish deleted event", "id", id, "error", err)
		}
	}

	return nil
}

// SetCurrency persists and applies a new default currency.
func (s *Store) SetCurrency(ctx context.Context, c core.Currency) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := s.repo.SetDefaultCurrency(ctx, c); err != nil {
		return fmt.Errorf("set default currency: %w", err)
	}

	s.mu.Lock()
	s.currency = c
	s.mu.Unlock()
	s.notify()
	return nil
}

// Subscribe returns a channel signalled after every applied change.
// Notifications coalesce: a slow subscriber sees at least one signal
// for any number of intervening changes.
func (s *Store) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}

func (s *Store) notify() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func filterByDate(expenses []core.Expense, date string) []core.Expense {
	var out []core.Expense
	for _, e := range expenses {
		if core.DateOf(e.CreatedAt) == date {
			out = append(out, e)
		}
	}
	return out
}

func removeByID(expenses []core.Expense, id string) []core.Expense {
	out := expenses[:0]
	for _, e := range expenses {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}
