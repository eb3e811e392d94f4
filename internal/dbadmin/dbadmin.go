// Package dbadmin executes the administrative statements of a provisioning
// run against the local PostgreSQL instance: role creation, database
// creation, and enabling the vector extension. Connections go over the local
// unix socket as the admin user (peer auth), so no admin password is needed.
package dbadmin

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/cmathews/vecforge/internal/logger"
)

// Client issues the admin statements. Two connections are used over its
// lifetime: one to the admin database for role and database creation, and one
// to the new database for extension setup (CREATE EXTENSION is per-database).
type Client struct {
	socketDir string
	port      int
	adminUser string
}

// NewClient creates a Client for the local instance.
func NewClient(socketDir string, port int, adminUser string) *Client {
	return &Client{socketDir: socketDir, port: port, adminUser: adminUser}
}

func (c *Client) connect(ctx context.Context, database string) (*pgx.Conn, error) {
	connString := fmt.Sprintf("host=%s port=%d user=%s dbname=%s",
		c.socketDir, c.port, c.adminUser, database)

	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("connect to %s as %s: %w", database, c.adminUser, err)
	}
	return conn, nil
}

// Ping verifies the instance is accepting connections.
func (c *Client) Ping(ctx context.Context) error {
	conn, err := c.connect(ctx, "postgres")
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	var version string
	if err := conn.QueryRow(ctx, "SELECT version()").Scan(&version); err != nil {
		return fmt.Errorf("connection validation failed: %w", err)
	}
	logger.Debug("connected to PostgreSQL", "version", version)
	return nil
}

// CreateRole creates a login role with the given password. Fails if the role
// already exists: a duplicate means the host was provisioned before, and that
// must surface loudly rather than silently reusing old state.
func (c *Client) CreateRole(ctx context.Context, name, password string) error {
	conn, err := c.connect(ctx, "postgres")
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	sql := fmt.Sprintf("CREATE ROLE %s WITH LOGIN PASSWORD %s",
		quoteIdent(name), quoteLiteral(password))

	logger.Info("creating application role", "role", name)
	if _, err := conn.Exec(ctx, sql); err != nil {
		return fmt.Errorf("create role %s: %w", name, err)
	}
	return nil
}

// CreateDatabase creates a database owned by the given role.
func (c *Client) CreateDatabase(ctx context.Context, name, owner string) error {
	conn, err := c.connect(ctx, "postgres")
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	// CREATE DATABASE cannot run inside a transaction; pgx simple exec is fine.
	sql := fmt.Sprintf("CREATE DATABASE %s OWNER %s", quoteIdent(name), quoteIdent(owner))

	logger.Info("creating application database", "database", name, "owner", owner)
	if _, err := conn.Exec(ctx, sql); err != nil {
		return fmt.Errorf("create database %s: %w", name, err)
	}
	return nil
}

// EnableVector enables the pgvector extension inside the given database.
func (c *Client) EnableVector(ctx context.Context, database string) error {
	conn, err := c.connect(ctx, database)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	logger.Info("enabling vector extension", "database", database)
	if _, err := conn.Exec(ctx, "CREATE EXTENSION vector"); err != nil {
		return fmt.Errorf("create extension vector in %s: %w", database, err)
	}
	return nil
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
