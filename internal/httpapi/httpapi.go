package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"zafarpos/backend/internal/domain"
	"zafarpos/backend/internal/ledger"
	"zafarpos/backend/internal/service"
	"zafarpos/backend/internal/session"
	"zafarpos/backend/internal/store"
)

const sessionCookieName = "pos_session"

type API struct {
	service       *service.Service
	sessions      *session.Manager
	allowedOrigin string
}

func New(svc *service.Service, sessions *session.Manager, allowedOrigin string) *API {
	return &API{
		service:       svc,
		sessions:      sessions,
		allowedOrigin: allowedOrigin,
	}
}

func (a *API) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", a.handleIndex)
	mux.HandleFunc("/healthz", a.handleHealth)

	mux.HandleFunc("/categories", a.handleCategories)
	mux.HandleFunc("/subCategories", a.handleSubcategories)
	mux.HandleFunc("/items", a.handleItems)

	mux.HandleFunc("/invoice", a.handleInvoice)
	mux.HandleFunc("/invoice/lines", a.handleInvoiceLines)
	mux.HandleFunc("/invoice/lines/", a.handleInvoiceLineActions)
	mux.HandleFunc("/invoice/discount", a.handleInvoiceDiscount)

	return a.withMiddleware(mux)
}

func (a *API) withMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Access-Control-Allow-Origin", a.allowedOrigin)
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PATCH,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Vary", "Origin")

		if r.Method == http.MethodPost || r.Method == http.MethodPatch {
			r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		startedAt := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(startedAt))
	})
}

// handleIndex renders the POS page and starts a fresh invoice session for
// it: every page load begins with an empty invoice.
func (a *API) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, errors.New("not found"))
		return
	}
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	categories, err := a.service.ListCategories(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	a.setSessionCookie(w, a.sessions.Create())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := posPageTmpl.Execute(w, map[string]any{"Categories": categories}); err != nil {
		log.Printf("render pos page: %v", err)
	}
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok": true,
		"at": time.Now().UTC().Format(time.RFC3339),
	})
}

func (a *API) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	categories, err := a.service.ListCategories(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (a *API) handleSubcategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	categoryID, err := parseID(r.URL.Query().Get("category_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("category_id must be a positive integer"))
		return
	}

	subs, err := a.service.ListSubcategories(r.Context(), categoryID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, subs)
}

func (a *API) handleItems(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	subcategoryID, err := parseID(r.URL.Query().Get("subcategory_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("subcategory_id must be a positive integer"))
		return
	}

	items, err := a.service.ListItems(r.Context(), subcategoryID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// handleInvoice serves the rendering snapshot (GET) and starts a fresh
// session for API clients that have no page load (POST).
func (a *API) handleInvoice(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		var snap domain.Invoice
		ok := a.withSession(w, r, func(l *ledger.Ledger) error {
			snap = l.Snapshot()
			return nil
		})
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, domain.InvoiceResponse{Invoice: snap})
	case http.MethodPost:
		id := a.sessions.Create()
		a.setSessionCookie(w, id)

		var snap domain.Invoice
		_, _ = a.sessions.With(id, func(l *ledger.Ledger) error {
			snap = l.Snapshot()
			return nil
		})
		writeJSON(w, http.StatusCreated, domain.InvoiceResponse{Invoice: snap})
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleInvoiceLines(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}

	var req domain.AddLineRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.ItemID < 1 {
		writeError(w, http.StatusBadRequest, errors.New("item_id must be a positive integer"))
		return
	}

	item, err := a.service.GetItem(r.Context(), req.ItemID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, errors.New("item not found"))
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	var (
		line domain.LineItem
		snap domain.Invoice
	)
	ok := a.withSession(w, r, func(l *ledger.Ledger) error {
		var err error
		line, err = l.AddLine(item.Title, item.PriceCents)
		if err != nil {
			return err
		}
		snap = l.Snapshot()
		return nil
	})
	if !ok {
		return
	}

	writeJSON(w, http.StatusCreated, domain.LineResponse{Line: line, Invoice: snap})
}

func (a *API) handleInvoiceLineActions(w http.ResponseWriter, r *http.Request) {
	tail := strings.Trim(strings.TrimPrefix(r.URL.Path, "/invoice/lines/"), "/")
	lineID, err := parseID(tail)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("line id must be a positive integer"))
		return
	}

	switch r.Method {
	case http.MethodPatch:
		var req domain.UpdateLineRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if req.Quantity == nil && req.UnitPriceCents == nil {
			writeError(w, http.StatusBadRequest, errors.New("nothing to update"))
			return
		}
		// Validate both fields up front so a combined edit is all-or-nothing.
		if req.Quantity != nil && *req.Quantity <= 0 {
			writeError(w, http.StatusBadRequest, errors.New("quantity must be positive"))
			return
		}
		if req.UnitPriceCents != nil && *req.UnitPriceCents < 0 {
			writeError(w, http.StatusBadRequest, errors.New("unit price must not be negative"))
			return
		}

		var (
			line domain.LineItem
			snap domain.Invoice
		)
		ok := a.withSession(w, r, func(l *ledger.Ledger) error {
			var err error
			if req.Quantity != nil {
				if line, err = l.UpdateLineQuantity(lineID, *req.Quantity); err != nil {
					return err
				}
			}
			if req.UnitPriceCents != nil {
				if line, err = l.UpdateLineUnitPrice(lineID, *req.UnitPriceCents); err != nil {
					return err
				}
			}
			snap = l.Snapshot()
			return nil
		})
		if !ok {
			return
		}

		writeJSON(w, http.StatusOK, domain.LineResponse{Line: line, Invoice: snap})
	case http.MethodDelete:
		var snap domain.Invoice
		ok := a.withSession(w, r, func(l *ledger.Ledger) error {
			var err error
			snap, err = l.RemoveLine(lineID)
			return err
		})
		if !ok {
			return
		}

		writeJSON(w, http.StatusOK, domain.InvoiceResponse{Invoice: snap})
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleInvoiceDiscount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}

	var req domain.SetDiscountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var snap domain.Invoice
	ok := a.withSession(w, r, func(l *ledger.Ledger) error {
		var err error
		snap, err = l.SetDiscountPercent(req.Percent)
		return err
	})
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, domain.InvoiceResponse{Invoice: snap})
}

// withSession resolves the request's session cookie, runs fn against that
// session's ledger, and maps ledger errors onto HTTP statuses. It reports
// whether the caller should write a success response.
func (a *API) withSession(w http.ResponseWriter, r *http.Request, fn func(*ledger.Ledger) error) bool {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		writeError(w, http.StatusNotFound, errors.New("no active invoice session"))
		return false
	}

	found, err := a.sessions.With(cookie.Value, fn)
	if !found {
		writeError(w, http.StatusNotFound, errors.New("no active invoice session"))
		return false
	}
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrInvalidArgument):
			writeError(w, http.StatusBadRequest, err)
		case errors.Is(err, ledger.ErrNotFound):
			writeError(w, http.StatusNotFound, err)
		default:
			writeError(w, http.StatusInternalServerError, err)
		}
		return false
	}
	return true
}

func (a *API) setSessionCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, err
	}
	if id < 1 {
		return 0, errors.New("id must be positive")
	}
	return id, nil
}

func decodeJSON(r *http.Request, dest any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		return err
	}
	return nil
}

func writeMethodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
}

func writeError(w http.ResponseWriter, status int, err error) {
	// For 5xx responses, return a generic message to avoid leaking internal
	// implementation details. 4xx responses are user-facing so the original
	// error message is returned.
	msg := err.Error()
	if status >= 500 {
		log.Printf("internal error (status %d): %v", status, err)
		msg = "internal server error"
	}
	writeJSON(w, status, map[string]any{
		"error": msg,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
