// internal/db/db.go
package db

import (
    "database/sql"
    "database/sql/driver"
    "errors"
    "log"
    "net"
    "time"

    "github.com/lib/pq"

    "github.com/unclebandit/customer-service-backend/internal/config"
)

var DB *sql.DB

const schema = `
CREATE TABLE IF NOT EXISTS customers (
    customer_id      SERIAL PRIMARY KEY,
    email            VARCHAR(255) UNIQUE NOT NULL,
    password_hash    VARCHAR(255) NOT NULL,
    first_name       VARCHAR(255) NOT NULL DEFAULT '',
    last_name        VARCHAR(255) NOT NULL DEFAULT '',
    phone_number     VARCHAR(50),
    shipping_address TEXT,
    created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at       TIMESTAMPTZ
)`

// RetryPolicy is the bounded startup connect loop: a fixed number of
// attempts with a fixed delay, then a terminal failure action.
type RetryPolicy struct {
    MaxAttempts int
    Delay       time.Duration
    OnExhausted func(lastErr error)
}

var DefaultRetryPolicy = RetryPolicy{
    MaxAttempts: 10,
    Delay:       5 * time.Second,
    OnExhausted: func(lastErr error) {
        log.Fatalf("failed to reach database after retries: %v", lastErr)
    },
}

// Init opens the database and blocks until it is reachable and the schema
// exists, following the given retry policy. Connectivity failures retry,
// including a connection dropped between the ping and the schema statement;
// a schema error on a live connection is fatal immediately.
func Init(cfg config.Config, policy RetryPolicy) {
    var err error
    DB, err = sql.Open("postgres", cfg.DSN())
    if err != nil {
        log.Fatalf("failed to open DB handle: %v", err)
    }

    for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
        log.Printf("connecting to postgres (attempt %d/%d)", attempt, policy.MaxAttempts)

        err = DB.Ping()
        if err == nil {
            var schemaErr error
            _, schemaErr = DB.Exec(schema)
            if schemaErr == nil {
                log.Println("✅ Connected to database, customers schema ensured")
                return
            }
            if !retryableConnErr(schemaErr) {
                log.Fatalf("failed to ensure customers schema: %v", schemaErr)
            }
            err = schemaErr
            log.Printf("connection lost during schema creation: %v", err)
        } else {
            log.Printf("database not reachable: %v", err)
        }

        if attempt < policy.MaxAttempts {
            time.Sleep(policy.Delay)
        }
    }

    policy.OnExhausted(err)
}

// retryableConnErr reports whether err is a connectivity failure worth
// another attempt, as opposed to a schema or SQL problem.
func retryableConnErr(err error) bool {
    if errors.Is(err, driver.ErrBadConn) {
        return true
    }
    var netErr net.Error
    if errors.As(err, &netErr) {
        return true
    }
    // Class 08 is postgres "connection exception"
    var pqErr *pq.Error
    return errors.As(err, &pqErr) && pqErr.Code.Class() == "08"
}
