package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"zafarpos/backend/internal/cache"
	"zafarpos/backend/internal/domain"
	"zafarpos/backend/internal/service"
	"zafarpos/backend/internal/session"
	"zafarpos/backend/internal/store/memory"
)

// newTestAPI builds a full API on the in-memory store so handler tests
// exercise the complete request path.
func newTestAPI(t *testing.T) *API {
	t.Helper()

	svc := service.New(memory.NewSeeded(), cache.NoopCatalogCache{}, time.Minute)
	sessions := session.NewManager(time.Hour)

	return New(svc, sessions, "*")
}

// openSession POSTs /invoice and returns the session cookie for follow-up
// requests.
func openSession(t *testing.T, handler http.Handler) *http.Cookie {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/invoice", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating session, got %d (body: %s)", rec.Code, rec.Body.String())
	}
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == sessionCookieName {
			return cookie
		}
	}
	t.Fatalf("no session cookie in response")
	return nil
}

func doJSON(t *testing.T, handler http.Handler, method, path string, payload any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeLineResponse(t *testing.T, rec *httptest.ResponseRecorder) domain.LineResponse {
	t.Helper()
	var resp domain.LineResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode line response: %v", err)
	}
	return resp
}

func decodeInvoiceResponse(t *testing.T, rec *httptest.ResponseRecorder) domain.InvoiceResponse {
	t.Helper()
	var resp domain.InvoiceResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode invoice response: %v", err)
	}
	return resp
}

func TestHandleHealth(t *testing.T) {
	handler := newTestAPI(t).Handler()

	rec := doJSON(t, handler, http.MethodGet, "/healthz", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestIndexRendersCategoriesAndSetsCookie(t *testing.T) {
	handler := newTestAPI(t).Handler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Food Items") {
		t.Fatalf("expected category options in page")
	}

	var found bool
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == sessionCookieName && cookie.Value != "" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected session cookie on page load")
	}
}

func TestCatalogEndpoints(t *testing.T) {
	handler := newTestAPI(t).Handler()

	rec := doJSON(t, handler, http.MethodGet, "/categories", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("categories: expected 200, got %d", rec.Code)
	}
	var cats []domain.Category
	if err := json.NewDecoder(rec.Body).Decode(&cats); err != nil {
		t.Fatalf("decode categories: %v", err)
	}
	if len(cats) != 4 {
		t.Fatalf("expected 4 categories, got %d", len(cats))
	}

	rec = doJSON(t, handler, http.MethodGet, "/subCategories?category_id=1", nil, nil)
	var subs []domain.Subcategory
	if err := json.NewDecoder(rec.Body).Decode(&subs); err != nil {
		t.Fatalf("decode subcategories: %v", err)
	}
	if len(subs) != 3 {
		t.Fatalf("expected 3 subcategories, got %d", len(subs))
	}

	rec = doJSON(t, handler, http.MethodGet, "/items?subcategory_id=1", nil, nil)
	var items []domain.Item
	if err := json.NewDecoder(rec.Body).Decode(&items); err != nil {
		t.Fatalf("decode items: %v", err)
	}
	if len(items) != 4 || items[0].Title != "Chicken" {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestEmptyFiltersReturnJSONArrays(t *testing.T) {
	handler := newTestAPI(t).Handler()

	rec := doJSON(t, handler, http.MethodGet, "/subCategories?category_id=999", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("expected [], got %q", got)
	}

	rec = doJSON(t, handler, http.MethodGet, "/items?subcategory_id=999", nil, nil)
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("expected [], got %q", got)
	}
}

func TestCatalogRejectsBadIDs(t *testing.T) {
	handler := newTestAPI(t).Handler()

	rec := doJSON(t, handler, http.MethodGet, "/subCategories?category_id=abc", nil, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	rec = doJSON(t, handler, http.MethodGet, "/items", nil, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing subcategory_id, got %d", rec.Code)
	}
}

func TestInvoiceFlow(t *testing.T) {
	handler := newTestAPI(t).Handler()
	cookie := openSession(t, handler)

	// Item 1 is Chicken at 15000 cents.
	rec := doJSON(t, handler, http.MethodPost, "/invoice/lines", domain.AddLineRequest{ItemID: 1}, cookie)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add line: expected 201, got %d (body: %s)", rec.Code, rec.Body.String())
	}
	added := decodeLineResponse(t, rec)
	if added.Line.Name != "Chicken" || added.Line.Quantity != 1 || added.Line.UnitPriceCents != 15000 {
		t.Fatalf("unexpected line: %+v", added.Line)
	}
	if added.Invoice.GrandTotalCents != 15000 {
		t.Fatalf("grand total %d, want 15000", added.Invoice.GrandTotalCents)
	}

	// Item 2 is Fish at 35000 cents.
	rec = doJSON(t, handler, http.MethodPost, "/invoice/lines", domain.AddLineRequest{ItemID: 2}, cookie)
	second := decodeLineResponse(t, rec)
	if second.Invoice.GrandTotalCents != 50000 {
		t.Fatalf("grand total %d, want 50000", second.Invoice.GrandTotalCents)
	}

	rec = doJSON(t, handler, http.MethodPost, "/invoice/discount", domain.SetDiscountRequest{Percent: 10}, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("discount: expected 200, got %d", rec.Code)
	}
	inv := decodeInvoiceResponse(t, rec)
	if inv.Invoice.DiscountCents != 5000 || inv.Invoice.NetPayableCents != 45000 {
		t.Fatalf("discount %d net %d, want 5000/45000", inv.Invoice.DiscountCents, inv.Invoice.NetPayableCents)
	}

	qty := int64(3)
	rec = doJSON(t, handler, http.MethodPatch, "/invoice/lines/1", domain.UpdateLineRequest{Quantity: &qty}, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("patch: expected 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}
	patched := decodeLineResponse(t, rec)
	if patched.Line.LineTotalCents != 45000 {
		t.Fatalf("line total %d, want 45000", patched.Line.LineTotalCents)
	}
	if patched.Invoice.GrandTotalCents != 80000 || patched.Invoice.NetPayableCents != 72000 {
		t.Fatalf("unexpected aggregates: %+v", patched.Invoice)
	}

	rec = doJSON(t, handler, http.MethodDelete, "/invoice/lines/2", nil, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", rec.Code)
	}
	inv = decodeInvoiceResponse(t, rec)
	if len(inv.Invoice.Lines) != 1 || inv.Invoice.GrandTotalCents != 45000 {
		t.Fatalf("unexpected invoice after delete: %+v", inv.Invoice)
	}

	rec = doJSON(t, handler, http.MethodGet, "/invoice", nil, cookie)
	final := decodeInvoiceResponse(t, rec)
	if final.Invoice.GrandTotalCents != 45000 || final.Invoice.DiscountPercent != 10 {
		t.Fatalf("snapshot mismatch: %+v", final.Invoice)
	}
}

func TestInvoiceErrorStatuses(t *testing.T) {
	handler := newTestAPI(t).Handler()
	cookie := openSession(t, handler)

	// No session cookie.
	rec := doJSON(t, handler, http.MethodGet, "/invoice", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without session, got %d", rec.Code)
	}

	// Unknown catalog item.
	rec = doJSON(t, handler, http.MethodPost, "/invoice/lines", domain.AddLineRequest{ItemID: 9999}, cookie)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown item, got %d", rec.Code)
	}

	// Unknown line id.
	qty := int64(2)
	rec = doJSON(t, handler, http.MethodPatch, "/invoice/lines/77", domain.UpdateLineRequest{Quantity: &qty}, cookie)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown line, got %d", rec.Code)
	}

	// Invalid quantity.
	doJSON(t, handler, http.MethodPost, "/invoice/lines", domain.AddLineRequest{ItemID: 1}, cookie)
	bad := int64(-1)
	rec = doJSON(t, handler, http.MethodPatch, "/invoice/lines/1", domain.UpdateLineRequest{Quantity: &bad}, cookie)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative quantity, got %d", rec.Code)
	}

	// Out-of-range discount.
	rec = doJSON(t, handler, http.MethodPost, "/invoice/discount", domain.SetDiscountRequest{Percent: 150}, cookie)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for discount over 100, got %d", rec.Code)
	}

	// State unchanged after the rejected calls.
	rec = doJSON(t, handler, http.MethodGet, "/invoice", nil, cookie)
	inv := decodeInvoiceResponse(t, rec)
	if inv.Invoice.GrandTotalCents != 15000 || inv.Invoice.DiscountPercent != 0 {
		t.Fatalf("rejected calls mutated invoice: %+v", inv.Invoice)
	}
}

func TestSessionsDoNotShareInvoices(t *testing.T) {
	handler := newTestAPI(t).Handler()

	first := openSession(t, handler)
	second := openSession(t, handler)

	doJSON(t, handler, http.MethodPost, "/invoice/lines", domain.AddLineRequest{ItemID: 1}, first)

	rec := doJSON(t, handler, http.MethodGet, "/invoice", nil, second)
	inv := decodeInvoiceResponse(t, rec)
	if len(inv.Invoice.Lines) != 0 {
		t.Fatalf("second session saw first session's lines: %+v", inv.Invoice.Lines)
	}
}

func TestUnknownBodyFieldsRejected(t *testing.T) {
	handler := newTestAPI(t).Handler()
	cookie := openSession(t, handler)

	rec := doJSON(t, handler, http.MethodPost, "/invoice/lines", map[string]any{"item_id": 1, "surprise": true}, cookie)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown field, got %d", rec.Code)
	}
}
