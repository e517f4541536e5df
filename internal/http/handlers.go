package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Savantrexs/microspend/internal/core"
	"github.com/Savantrexs/microspend/internal/export"
	applog "github.com/Savantrexs/microspend/internal/log"
)

type todayResponse struct {
	Date           string          `json:"date"`
	Total          decimal.Decimal `json:"total"`
	FormattedTotal string          `json:"formattedTotal"`
	Count          int             `json:"count"`
	Expenses       []core.Expense  `json:"expenses"`
}

// Amount travels as a string so comma decimals like "3,50" reach the parser intact.
type createExpenseRequest struct {
	Amount   string `json:"amount"`
	Note     string `json:"note"`
	Category string `json:"category"`
}

type currencyResponse struct {
	Currency core.Currency `json:"currency"`
	Symbol   string        `json:"symbol"`
	Label    string        `json:"label"`
}

type exportResponse struct {
	Path string `json:"path"`
	Rows int    `json:"rows"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	expenses := s.store.Today()
	total := core.SumAmounts(expenses)
	writeJSON(w, http.StatusOK, todayResponse{
		Date:           core.LocalDate(s.now()),
		Total:          total,
		FormattedTotal: core.FormatAmount(total, s.store.Currency()),
		Count:          len(expenses),
		Expenses:       expenses,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	groups := core.GroupByDate(s.store.All(), s.now())
	writeJSON(w, http.StatusOK, groups)
}

func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleExpensesForDate(w, r)
	case http.MethodPost:
		s.handleCreateExpense(w, r)
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

func (s *Server) handleExpensesForDate(w http.ResponseWriter, r *http.Request) {
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date == "" {
		date = core.LocalDate(s.now())
	}

	if cached, found := s.dateCache.Get(date); found {
		slog.DebugContext(r.Context(), "Date query cache hit", applog.FieldDate, date)
		writeJSON(w, http.StatusOK, cached)
		return
	}

	expenses, err := s.dates.ExpensesForDate(r.Context(), date)
	if err != nil {
		slog.ErrorContext(r.Context(), "Date query failed", applog.FieldDate, date, applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "could not load expenses, try again")
		return
	}
	if expenses == nil {
		expenses = []core.Expense{}
	}

	s.dateCache.Set(date, expenses)
	writeJSON(w, http.StatusOK, expenses)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	amount, err := core.ParseAmount(req.Amount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "amount must be a positive number")
		return
	}

	category := core.Category(strings.TrimSpace(req.Category))
	if err := category.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "unknown category")
		return
	}

	e, err := s.store.AddExpense(r.Context(), amount, strings.TrimSpace(req.Note), category)
	if err != nil {
		slog.ErrorContext(r.Context(), "Expense create failed",
			applog.FieldAmount, req.Amount, applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "could not save expense, try again")
		return
	}

	s.dateCache.Purge()
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) handleExpenseByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w, http.MethodDelete)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/expenses/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	if err := s.store.DeleteExpense(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Expense delete failed",
			applog.FieldExpenseID, id, applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "could not delete expense, try again")
		return
	}

	s.dateCache.Purge()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCurrency(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		c := s.store.Currency()
		writeJSON(w, http.StatusOK, currencyResponse{Currency: c, Symbol: c.Symbol(), Label: c.Label()})
	case http.MethodPut:
		var req struct {
			Currency string `json:"currency"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		c := core.Currency(strings.ToUpper(strings.TrimSpace(req.Currency)))
		if err := s.store.SetCurrency(r.Context(), c); err != nil {
			if errors.Is(err, core.ErrInvalidCurrency) {
				writeError(w, http.StatusUnprocessableEntity, "unsupported currency")
				return
			}
			slog.ErrorContext(r.Context(), "Currency change failed",
				applog.FieldCurrency, req.Currency, applog.FieldError, err)
			writeError(w, http.StatusInternalServerError, "could not save currency, try again")
			return
		}
		writeJSON(w, http.StatusOK, currencyResponse{Currency: c, Symbol: c.Symbol(), Label: c.Label()})
	default:
		methodNotAllowed(w, "GET, PUT")
	}
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	if len(s.store.All()) == 0 {
		writeError(w, http.StatusConflict, "nothing to export, add some expenses first")
		return
	}

	path, rows, err := s.exporter.Export(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Export failed", applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "export failed, try again")
		return
	}

	slog.InfoContext(r.Context(), "Export completed",
		applog.FieldExportPath, path, applog.FieldRows, rows)
	writeJSON(w, http.StatusOK, exportResponse{Path: path, Rows: rows})
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	csv := export.MarshalCSV(s.store.All())
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.FileName+`"`)
	_, _ = w.Write([]byte(csv))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encode failed", applog.FieldError, err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func methodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}
