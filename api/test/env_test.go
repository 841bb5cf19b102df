package test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/irsalhamdi/globe-lingual/api"
	"github.com/irsalhamdi/globe-lingual/config"
	"github.com/irsalhamdi/globe-lingual/core/payment"
	"github.com/irsalhamdi/globe-lingual/core/token"
	"github.com/irsalhamdi/globe-lingual/core/user"
	"github.com/irsalhamdi/globe-lingual/database"
	"github.com/irsalhamdi/globe-lingual/rate"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v74"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const secret = "test-secret"

// mongoURI is empty when no container could be started; tests then skip.
var mongoURI string

func TestMain(m *testing.M) {
	os.Exit(run(m))
}

func run(m *testing.M) int {
	flag.Parse()
	if testing.Short() {
		return m.Run()
	}

	pool, err := dockertest.NewPool("")
	if err == nil {
		err = pool.Client.Ping()
	}
	if err != nil {
		fmt.Printf("docker unavailable, skipping end-to-end tests: %v\n", err)
		return m.Run()
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mongo",
		Tag:        "7.0",
		Cmd:        []string{"--replSet", "rs0", "--bind_ip_all"},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		fmt.Printf("cannot start mongo, skipping end-to-end tests: %v\n", err)
		return m.Run()
	}
	defer pool.Purge(resource)

	_ = resource.Expire(600)

	// The member announces its in-container address, so the client must not
	// follow the replica set topology.
	uri := fmt.Sprintf("mongodb://localhost:%s/?directConnection=true", resource.GetPort("27017/tcp"))
	pool.MaxWait = 2 * time.Minute
	err = pool.Retry(func() error {
		return withClient(uri, func(ctx context.Context, client *mongo.Client) error {
			return database.StatusCheck(ctx, client)
		})
	})
	if err != nil {
		fmt.Printf("mongo never became ready: %v\n", err)
		return 1
	}

	err = withClient(uri, func(ctx context.Context, client *mongo.Client) error {
		cmd := bson.D{{Key: "replSetInitiate", Value: bson.M{
			"_id":     "rs0",
			"members": bson.A{bson.M{"_id": 0, "host": "localhost:27017"}},
		}}}
		err := client.Database("admin").RunCommand(ctx, cmd).Err()
		var ce mongo.CommandError
		if errors.As(err, &ce) && ce.Name == "AlreadyInitialized" {
			return nil
		}
		return err
	})
	if err != nil {
		fmt.Printf("initiating replica set: %v\n", err)
		return 1
	}

	err = pool.Retry(func() error {
		return withClient(uri, func(ctx context.Context, client *mongo.Client) error {
			var hello struct {
				Primary bool `bson:"isWritablePrimary"`
			}
			if err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "hello", Value: 1}}).Decode(&hello); err != nil {
				return err
			}
			if !hello.Primary {
				return errors.New("no primary elected yet")
			}
			return nil
		})
	})
	if err != nil {
		fmt.Printf("replica set never elected a primary: %v\n", err)
		return 1
	}

	mongoURI = uri
	return m.Run()
}

func withClient(uri string, fn func(ctx context.Context, client *mongo.Client) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return err
	}
	defer client.Disconnect(context.Background())

	return fn(ctx, client)
}

type TestEnv struct {
	*httptest.Server
	DB     *mongo.Database
	Stripe *mockStripe
}

// NewTestEnv serves the API against a fresh database named dbName.
// Payments are finalized without a transaction.
func NewTestEnv(t *testing.T, dbName string) *TestEnv {
	t.Helper()
	return newTestEnv(t, dbName, false)
}

// NewTransactionalTestEnv is NewTestEnv with transactional finalize.
func NewTransactionalTestEnv(t *testing.T, dbName string) *TestEnv {
	t.Helper()
	return newTestEnv(t, dbName, true)
}

func newTestEnv(t *testing.T, dbName string, transactions bool) *TestEnv {
	t.Helper()

	if mongoURI == "" {
		t.Skip("end-to-end tests need docker")
	}

	db, err := database.Open(context.Background(), config.DB{
		URI:            mongoURI,
		Name:           dbName,
		ConnectTimeout: 10 * time.Second,
	})
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = db.Client().Disconnect(context.Background())
	})

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrating database: %v", err)
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	ms := &mockStripe{}
	stripeSrv := httptest.NewServer(ms.handle())
	t.Cleanup(stripeSrv.Close)

	lim := rate.NewLimiter(1000, time.Minute, rate.Every(time.Millisecond))
	t.Cleanup(lim.Stop)

	mux := api.APIMux(api.APIConfig{
		CorsOrigin:   "*",
		Log:          log,
		DB:           db,
		Transactions: transactions,
		Stripe:       payment.NewStripe("sk_test_123", stripeSrv.URL, &stripe.LeveledLogger{Level: stripe.LevelNull}),
		Currency:     "usd",
		Secret:       secret,
		TokenTTL:     time.Hour,
		Limiter:      lim,

		ReadinessTimeout: 2 * time.Second,
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return &TestEnv{Server: srv, DB: db, Stripe: ms}
}

func (env *TestEnv) Token(t *testing.T, email string) string {
	t.Helper()

	tkn, err := token.Issue(secret, map[string]interface{}{"email": email}, time.Hour, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	return tkn
}

// Seed stores a user with the given role and returns a token for it.
func (env *TestEnv) Seed(t *testing.T, email string, role user.Role) (user.User, string) {
	t.Helper()

	u := user.User{Name: email, Email: email, Role: role}
	id, err := user.Create(context.Background(), env.DB, u)
	if err != nil {
		t.Fatal(err)
	}
	u.ID = id

	return u, env.Token(t, email)
}

// Do sends body as JSON and decodes a JSON answer into out when out is
// not nil. It returns the status code.
func (env *TestEnv) Do(t *testing.T, method, path, tkn string, body, out interface{}) int {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(b)
	}

	r, err := http.NewRequest(method, env.URL+path, rd)
	if err != nil {
		t.Fatal(err)
	}
	r.Header.Set("Content-Type", "application/json")
	if tkn != "" {
		r.Header.Set("Authorization", "Bearer "+tkn)
	}

	w, err := env.Client().Do(r)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Body.Close()

	if out != nil {
		if err := json.NewDecoder(w.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: decoding response: %v", method, path, err)
		}
	}

	return w.StatusCode
}
