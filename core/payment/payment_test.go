package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/irsalhamdi/globe-lingual/api/web"
	"github.com/irsalhamdi/globe-lingual/api/weberr"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stripe/stripe-go/v74"
	mock "github.com/stripe/stripe-mock/param"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAmount(t *testing.T) {
	tests := []struct {
		price float64
		exp   int64
		err   error
	}{
		{price: 10, exp: 1000},
		{price: 0.01, exp: 1},
		{price: 12.345, exp: 1234},
		{price: 0.009, err: ErrInvalidPrice},
		{price: 0, err: ErrInvalidPrice},
		{price: -5, err: ErrInvalidPrice},
		{price: math.NaN(), err: ErrInvalidPrice},
		{price: math.Inf(1), err: ErrInvalidPrice},
		{price: math.Exp2(63) / 100, err: ErrInvalidPrice},
		{price: math.MaxFloat64, err: ErrInvalidPrice},
	}

	for _, tt := range tests {
		got, err := Amount(tt.price)
		if !errors.Is(err, tt.err) {
			t.Fatalf("Amount(%v): expected error %v, got %v", tt.price, tt.err, err)
		}
		if got != tt.exp {
			t.Fatalf("Amount(%v): expected %d, got %d", tt.price, tt.exp, got)
		}
	}
}

func TestParseNew(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	uid, scid, cid := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()

	pn := PaymentNew{
		UserID:          uid.Hex(),
		SelectedClassID: scid.Hex(),
		ClassID:         cid.Hex(),
		TransactionID:   "pi_123",
		Price:           20,
	}

	p, err := parseNew(pn, now)
	if err != nil {
		t.Fatal(err)
	}
	if p.UserID != uid || p.SelectedClassID != scid || p.ClassID != cid {
		t.Fatalf("ids not carried over: %+v", p)
	}
	if !p.Date.Equal(now) {
		t.Fatalf("expected missing date to default to now, got %v", p.Date)
	}

	pn.TransactionID = ""
	if _, err := parseNew(pn, now); err == nil {
		t.Fatal("expected an error without a transaction id")
	}

	pn.TransactionID = "pi_123"
	pn.ClassID = "not-an-id"
	if _, err := parseNew(pn, now); err == nil {
		t.Fatal("expected an error for a malformed class_id")
	}
}

type mockStripe struct {
	calls  int32
	amount string
}

func (m *mockStripe) handle() http.Handler {
	create := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&m.calls, 1)

		params, err := mock.ParseParams(r)
		if err != nil {
			web.Respond(context.Background(), w, nil, http.StatusBadRequest)
			return
		}
		m.amount, _ = params["amount"].(string)

		pi := map[string]any{
			"id":            "pi_test",
			"object":        "payment_intent",
			"client_secret": "pi_test_secret_abc",
		}
		web.Respond(context.Background(), w, pi, http.StatusOK)
	})

	r := mux.NewRouter()
	r.Handle("/v1/payment_intents", create).Methods(http.MethodPost)
	return r
}

func TestHandleCreateIntent(t *testing.T) {
	ms := &mockStripe{}
	srv := httptest.NewServer(ms.handle())
	defer srv.Close()

	strp := NewStripe("sk_test_123", srv.URL, &stripe.LeveledLogger{Level: stripe.LevelNull})
	h := HandleCreateIntent(strp, "usd")

	call := func(body string) (*httptest.ResponseRecorder, error) {
		r := httptest.NewRequest(http.MethodPost, "/create-payment-intent", bytes.NewBufferString(body))
		w := httptest.NewRecorder()
		return w, h(r.Context(), w, r)
	}

	for _, body := range []string{`{"price":0}`, `{"price":-10}`, `{}`} {
		_, err := call(body)
		if _, status, _ := weberr.Response(err); status != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d (%v)", body, status, err)
		}
	}
	if n := atomic.LoadInt32(&ms.calls); n != 0 {
		t.Fatalf("provider must not be called for invalid prices, got %d calls", n)
	}

	w, err := call(`{"price":19.5}`)
	if err != nil {
		t.Fatal(err)
	}

	var resp IntentResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.ClientSecret != "pi_test_secret_abc" {
		t.Fatalf("unexpected client secret %q", resp.ClientSecret)
	}
	if ms.amount != "1950" {
		t.Fatalf("expected amount 1950, got %q", ms.amount)
	}
}

func TestStripeLogger(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	sl := StripeLogger(log)
	sl.Debugf("request %s", "GET")
	sl.Infof("response %d", 200)
	sl.Warnf("retrying %d", 1)
	sl.Errorf("request failed: %s", "timeout")

	entries := hook.AllEntries()
	if len(entries) != 2 {
		t.Fatalf("expected only warn and error lines, got %d", len(entries))
	}
	if entries[0].Level != logrus.WarnLevel || entries[0].Message != "retrying 1" {
		t.Fatalf("unexpected first line %s %q", entries[0].Level, entries[0].Message)
	}
	if entries[1].Level != logrus.ErrorLevel || entries[1].Data["component"] != "stripe" {
		t.Fatalf("unexpected second line %s %v", entries[1].Level, entries[1].Data)
	}
}
