package lock

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"
)

// PostgresBackend uses session advisory locks. The lock belongs to the
// connection that took it, so each held lease pins its own *sql.Conn until
// Release. ttl is ignored; a dead session drops its locks.
type PostgresBackend struct {
	db    *sql.DB
	mu    sync.Mutex
	conns map[string]*sql.Conn
}

func NewPostgresBackend(db *sql.DB) *PostgresBackend {
	return &PostgresBackend{db: db, conns: map[string]*sql.Conn{}}
}

func (b *PostgresBackend) Name() string { return "postgres" }

func (b *PostgresBackend) TryAcquire(ctx context.Context, key, owner string, _ time.Duration) (bool, error) {
	conn, err := b.db.Conn(ctx)
	if err != nil {
		return false, fmt.Errorf("pin connection: %w", err)
	}
	var locked bool
	if err := conn.QueryRowContext(ctx, "SELECT pg_try_advisory_lock(hashtext($1))", key).Scan(&locked); err != nil {
		_ = conn.Close()
		return false, err
	}
	if !locked {
		_ = conn.Close()
		return false, nil
	}

	b.mu.Lock()
	b.conns[key+"\x00"+owner] = conn
	b.mu.Unlock()
	return true, nil
}

func (b *PostgresBackend) Release(ctx context.Context, key, owner string) error {
	b.mu.Lock()
	conn, ok := b.conns[key+"\x00"+owner]
	delete(b.conns, key+"\x00"+owner)
	b.mu.Unlock()
	if !ok {
		return nil
	}
	defer conn.Close()

	var released bool
	if err := conn.QueryRowContext(ctx, "SELECT pg_advisory_unlock(hashtext($1))", key).Scan(&released); err != nil {
		return err
	}
	if !released {
		return fmt.Errorf("advisory lock %s was not held", key)
	}
	return nil
}
