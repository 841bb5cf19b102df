package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/irsalhamdi/globe-lingual/api/web"
	"github.com/irsalhamdi/globe-lingual/api/weberr"
	"github.com/irsalhamdi/globe-lingual/rate"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func serve(t *testing.T, mw []web.Middleware, h web.Handler, r *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	handler := web.WrapMiddleware(mw, h)
	w := httptest.NewRecorder()
	if err := handler(r.Context(), w, r); err != nil {
		t.Fatalf("unexpected error leaking from middleware chain: %v", err)
	}
	return w
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func decodeErr(t *testing.T, w *httptest.ResponseRecorder) weberr.ErrorResponse {
	t.Helper()

	var body weberr.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	return body
}

func TestErrorsRendersResponse(t *testing.T) {
	h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return weberr.Forbidden(errors.New("wrong role"))
	}

	r := httptest.NewRequest(http.MethodGet, "/users", nil)
	w := serve(t, []web.Middleware{RequestID(), Errors(quietLogger())}, h, r)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
	if body := decodeErr(t, w); !body.Error || body.Message != "forbidden access" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestErrorsHidesInternalErrors(t *testing.T) {
	h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return errors.New("connection reset by peer")
	}

	r := httptest.NewRequest(http.MethodGet, "/classes", nil)
	w := serve(t, []web.Middleware{Errors(quietLogger())}, h, r)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if body := decodeErr(t, w); body.Message != http.StatusText(http.StatusInternalServerError) {
		t.Fatalf("internal error text leaked: %+v", body)
	}
}

func TestPanicsRecovered(t *testing.T) {
	h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		panic("nil map")
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := serve(t, []web.Middleware{Errors(quietLogger()), Panics()}, h, r)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestRequestIDPropagation(t *testing.T) {
	var seen string
	h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		seen = ContextRequestID(ctx)
		return nil
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(RequestIDHeader, "abc-123")
	w := serve(t, []web.Middleware{RequestID()}, h, r)

	if seen != "abc-123" {
		t.Fatalf("expected the client request id, got %q", seen)
	}
	if got := w.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Fatalf("expected request id echoed, got %q", got)
	}

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	serve(t, []web.Middleware{RequestID()}, h, r)
	if seen == "" || seen == "abc-123" {
		t.Fatalf("expected a generated request id, got %q", seen)
	}
}

func TestCors(t *testing.T) {
	h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}

	r := httptest.NewRequest(http.MethodOptions, "/payments", nil)
	w := serve(t, []web.Middleware{Cors("*")}, h, r)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected permissive origin, got %q", got)
	}
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
}

func TestRateLimit(t *testing.T) {
	lim := rate.NewLimiter(1, time.Hour, rate.Every(time.Hour))
	defer lim.Stop()

	h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return web.Respond(ctx, w, map[string]string{"token": "t"}, http.StatusOK)
	}
	mw := []web.Middleware{Errors(quietLogger()), RateLimit(lim)}

	r := httptest.NewRequest(http.MethodPost, "/jwt", nil)
	r.RemoteAddr = "198.51.100.1:5000"
	if w := serve(t, mw, h, r); w.Code != http.StatusOK {
		t.Fatalf("first call: expected 200, got %d", w.Code)
	}

	r = httptest.NewRequest(http.MethodPost, "/jwt", nil)
	r.RemoteAddr = "198.51.100.1:5001"
	if w := serve(t, mw, h, r); w.Code != http.StatusTooManyRequests {
		t.Fatalf("second call from same host: expected 429, got %d", w.Code)
	}
}

func TestLoggerLevels(t *testing.T) {
	log, hook := test.NewNullLogger()

	h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		w.WriteHeader(http.StatusOK)
		return nil
	}

	r := httptest.NewRequest(http.MethodGet, "/classes", nil)
	serve(t, []web.Middleware{Logger(log)}, h, r)

	entries := hook.AllEntries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 log lines, got %d", len(entries))
	}
	for i, msg := range []string{"started", "completed"} {
		if entries[i].Message != msg || entries[i].Level != logrus.InfoLevel {
			t.Fatalf("line %d: expected %q at info, got %q at %s", i, msg, entries[i].Message, entries[i].Level)
		}
	}
	if got := entries[1].Data["statuscode"]; got != http.StatusOK {
		t.Fatalf("expected status 200 on completed line, got %v", got)
	}
}
