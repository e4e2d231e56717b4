// internal/app/system/txn/txn.go
//
// Package txn runs multi-document writes inside a MongoDB session
// transaction when the deployment supports them (replica set / mongos),
// and reports when it does not so callers can fall back to ordered
// writes.
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

// WithTransaction executes fn inside a session transaction on client.
// If the server does not support transactions (standalone mongod), the
// returned error satisfies IsNotSupported and callers should run their
// ordered fallback instead.
func WithTransaction(ctx context.Context, client *mongo.Client, fn func(sc mongo.SessionContext) error) error {
	session, err := client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// IsNotSupported reports whether err indicates the server cannot run
// transactions (standalone deployments, old servers). It matches the
// known command error codes and, as a fallback, the error text.
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var ce mongo.CommandError
	if errors.As(err, &ce) {
		// 20  IllegalOperation (txn numbers need a replica set member)
		// 51  CommandNotSupported
		// 263 OperationNotSupportedInTransaction
		switch ce.Code {
		case 20, 51, 263:
			return true
		}
		return false
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "transaction") && strings.Contains(msg, "replica set") {
		return true
	}
	if strings.Contains(msg, "session") && strings.Contains(msg, "not supported") {
		return true
	}
	if strings.Contains(msg, "transaction") && strings.Contains(msg, "session") {
		return true
	}
	if strings.Contains(msg, "illegal operation") && strings.Contains(msg, "transaction") {
		return true
	}
	return false
}
