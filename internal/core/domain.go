package core

import (
	"errors"

	"github.com/shopspring/decimal"
)

const (
	CAD Currency = "CAD"
	USD Currency = "USD"
	NPR Currency = "NPR"
	GBP Currency = "GBP"
)

const (
	Food      Category = "Food"
	Transport Category = "Transport"
	Other     Category = "Other"
)

// DefaultCurrency is used when no default_currency setting exists.
const DefaultCurrency = CAD

type (
	Currency string

	Category string

	// Expense is a single ledger entry. Immutable once created: the
	// repository stamps ID and CreatedAt at insert time and there is no
	// update operation.
	Expense struct {
		ID        string          `json:"id"`
		Amount    decimal.Decimal `json:"amount"`
		Currency  Currency        `json:"currency"`
		Note      string          `json:"note,omitempty"`
		Category  Category        `json:"category,omitempty"`
		CreatedAt string          `json:"createdAt"` // local time, YYYY-MM-DDTHH:mm:ss.sss
	}

	// ExpenseGroup is one history section: all expenses sharing a local
	// calendar date, in arrival order, with their numeric total.
	// Derived on demand, never persisted.
	ExpenseGroup struct {
		Date     string          `json:"date"` // YYYY-MM-DD
		Label    string          `json:"label"`
		Total    decimal.Decimal `json:"total"`
		Expenses []Expense       `json:"expenses"`
	}
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidCurrency = errors.New("invalid currency")
	ErrInvalidCategory = errors.New("invalid category")
)

// Currencies lists the supported currencies in display order.
var Currencies = []Currency{CAD, USD, NPR, GBP}

// Categories lists the supported categories in display order.
var Categories = []Category{Food, Transport, Other}

var currencySymbols = map[Currency]string{
	CAD: "$",
	USD: "$",
	NPR: "Rs",
	GBP: "£",
}

// Labels for settings display; disambiguates CAD/USD which share a symbol.
var currencyLabels = map[Currency]string{
	CAD: "CAD - Canadian Dollar",
	USD: "USD - US Dollar",
	NPR: "NPR - Nepalese Rupee",
	GBP: "GBP - British Pound",
}

// Symbol returns the display symbol, or the code itself for an
// unrecognized currency.
func (c Currency) Symbol() string {
	if s, ok := currencySymbols[c]; ok {
		return s
	}
	return string(c)
}

// Label returns the human label for the currency.
func (c Currency) Label() string {
	if l, ok := currencyLabels[c]; ok {
		return l
	}
	return string(c)
}

func (c Currency) Validate() error {
	switch c {
	case CAD, USD, NPR, GBP:
		return nil
	}
	return ErrInvalidCurrency
}

// Validate accepts the empty category: category is optional on an expense.
func (c Category) Validate() error {
	switch c {
	case "", Food, Transport, Other:
		return nil
	}
	return ErrInvalidCategory
}

func (e Expense) Validate() error {
	if !e.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if err := e.Currency.Validate(); err != nil {
		return err
	}
	return e.Category.Validate()
}
