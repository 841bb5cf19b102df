// Package database owns the MongoDB client lifecycle and the names of the
// collections the service reads and writes.
package database

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/irsalhamdi/globe-lingual/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	Users      = "users"
	Classes    = "classes"
	Selections = "selectedClasses"
	Payments   = "payment"
)

// ErrNoCredentials is returned when neither a full URI nor a user/password
// pair is configured.
var ErrNoCredentials = errors.New("database credentials are not configured")

func URI(cfg config.DB) (string, error) {
	if cfg.URI != "" {
		return cfg.URI, nil
	}

	if cfg.User == "" || cfg.Pass == "" {
		return "", ErrNoCredentials
	}

	u := url.URL{
		Scheme:   cfg.Scheme,
		User:     url.UserPassword(cfg.User, cfg.Pass),
		Host:     cfg.Host,
		Path:     "/",
		RawQuery: "retryWrites=true&w=majority",
	}
	return u.String(), nil
}

// Open connects, pings the deployment and returns the service database.
// The caller owns the client and must Disconnect it on shutdown.
func Open(ctx context.Context, cfg config.DB) (*mongo.Database, error) {
	uri, err := URI(cfg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	api := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)

	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(api).
		SetConnectTimeout(cfg.ConnectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}

	if err := StatusCheck(ctx, client); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}

	return client.Database(cfg.Name), nil
}

func StatusCheck(ctx context.Context, client *mongo.Client) error {
	return client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}

// Transaction runs fn inside a multi-document transaction when enabled.
// Otherwise fn runs directly and each of its writes stands on its own.
// fn may be invoked more than once when the server reports a transient
// transaction error, so it must not keep state across calls.
func Transaction(ctx context.Context, db *mongo.Database, enabled bool, fn func(ctx context.Context) error) error {
	if !enabled {
		return fn(ctx)
	}

	sess, err := db.Client().StartSession()
	if err != nil {
		return fmt.Errorf("starting session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// ErrNotFound is returned by stores when a lookup or update matches nothing.
var ErrNotFound = errors.New("document not found")

// InsertResult mirrors the acknowledgement clients of this API expect.
type InsertResult struct {
	InsertedID interface{} `json:"insertedId"`
}

type UpdateResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}
