// Package database opens the MySQL pool backing the dock and appointment
// stores.  Pool bounds come from the environment so a deployment can size
// the pool against its MySQL max_connections budget without a rebuild.
package database

import (
    "context"
    "database/sql"
    "fmt"
    "os"
    "strconv"
    "time"

    _ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection with a bounded ping.
// parseTime maps DATETIME columns to time.Time and loc=UTC keeps every
// timestamp in the timezone the scheduling engine computes in.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
    auth := user
    if pass != "" {
        auth = fmt.Sprintf("%s:%s", user, pass)
    }
    dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
        auth, host, port, name)

    db, err := sql.Open("mysql", dsn)
    if err != nil {
        return nil, err
    }

    db.SetMaxOpenConns(poolInt("DB_MAX_OPEN_CONNS", 25))
    db.SetMaxIdleConns(poolInt("DB_MAX_IDLE_CONNS", 10))
    db.SetConnMaxLifetime(time.Duration(poolInt("DB_CONN_MAX_LIFETIME_MIN", 30)) * time.Minute)

    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()
    if err := db.PingContext(ctx); err != nil {
        db.Close()
        return nil, err
    }
    return db, nil
}

// poolInt reads a positive integer pool setting from the environment,
// falling back to the default on absence or garbage.
func poolInt(key string, def int) int {
    v := os.Getenv(key)
    if v == "" {
        return def
    }
    if n, err := strconv.Atoi(v); err == nil && n > 0 {
        return n
    }
    return def
}
