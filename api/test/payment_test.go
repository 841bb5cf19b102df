package test

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/irsalhamdi/globe-lingual/api/web"
	mock "github.com/stripe/stripe-mock/param"
)

type mockStripe struct {
	mu      sync.Mutex
	amounts []string
}

func (m *mockStripe) calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.amounts...)
}

func (m *mockStripe) handle() http.Handler {
	intent := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		params, err := mock.ParseParams(r)
		if err != nil {
			web.Respond(context.Background(), w, nil, 400)
			return
		}

		amount, _ := params["amount"].(string)
		if params["currency"] != "usd" {
			web.Respond(context.Background(), w, nil, 400)
			return
		}

		m.mu.Lock()
		m.amounts = append(m.amounts, amount)
		m.mu.Unlock()

		randID := fmt.Sprintf("pi_%d", rand.Intn(100000))
		pi := map[string]any{
			"id":            randID,
			"object":        "payment_intent",
			"client_secret": randID + "_secret",
		}
		web.Respond(context.Background(), w, pi, 200)
	})

	r := mux.NewRouter()
	r.Handle("/v1/payment_intents", intent).Methods("POST")
	return r
}
