package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sethvargo/go-retry"
)

const maxAttempts = 3

// Retry runs op with exponential backoff for transient storage failures,
// up to three attempts in total. Auth and permission failures propagate
// immediately, as do all domain errors.
func Retry(ctx context.Context, op func(ctx context.Context) error) error {
	b := retry.WithMaxRetries(maxAttempts-1, retry.NewExponential(100*time.Millisecond))

	return retry.Do(ctx, b, func(ctx context.Context) error {
		err := op(ctx)
		if err == nil {
			return nil
		}

		if isTransient(err) {
			return retry.RetryableError(err)
		}

		return err
	})
}

func isTransient(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Class 28 (invalid authorization) and 42501 (insufficient
		// privilege) must not be retried.
		if strings.HasPrefix(pgErr.Code, "28") || pgErr.Code == "42501" {
			return false
		}

		switch pgErr.Code {
		case "40001", "40P01": // serialization failure, deadlock
			return true
		case "57P03": // cannot connect now
			return true
		}

		return strings.HasPrefix(pgErr.Code, "08") // connection exceptions
	}

	if errors.Is(err, driver.ErrBadConn) {
		return true
	}

	var netErr net.Error

	return errors.As(err, &netErr)
}
