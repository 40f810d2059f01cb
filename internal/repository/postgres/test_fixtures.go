package postgres

import (
	"context"
	"fmt"
	"math/rand"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

// fixtureSeq keeps generated values unique within a test binary run
var fixtureSeq atomic.Int64

// TestFixtures provides factory methods for creating test data
type TestFixtures struct {
	db DBTX
	t  *testing.T
}

// NewTestFixtures creates a new test fixtures factory
func NewTestFixtures(t *testing.T, db DBTX) *TestFixtures {
	t.Helper()
	return &TestFixtures{
		db: db,
		t:  t,
	}
}

// UserFixture holds the adjustable parts of a seeded user
type UserFixture struct {
	Email          string
	InitialCapital float64
}

// CreateUser creates a test user in the database
func (f *TestFixtures) CreateUser(opts ...func(*UserFixture)) int64 {
	f.t.Helper()

	fixture := &UserFixture{
		Email: fmt.Sprintf("trader_%d_%d@example.com", fixtureSeq.Add(1), rand.Intn(999999)),
	}

	for _, opt := range opts {
		opt(fixture)
	}

	var id int64
	query := `INSERT INTO users (email, password_hash, initial_capital, created_at, updated_at)
			  VALUES ($1, $2, $3, NOW(), NOW()) RETURNING id`

	err := f.db.QueryRowContext(context.Background(), query,
		fixture.Email, "hashed_password", fixture.InitialCapital).Scan(&id)
	require.NoError(f.t, err, "Failed to create test user")

	return id
}

// CreateStrategy creates a test strategy in the database
func (f *TestFixtures) CreateStrategy(userID int64) int64 {
	f.t.Helper()

	var id int64
	query := `INSERT INTO strategies (user_id, name, type, risk_level, created_at, last_modified_date)
			  VALUES ($1, $2, $3, $4, NOW(), NOW()) RETURNING id`

	err := f.db.QueryRowContext(context.Background(), query,
		userID, fmt.Sprintf("strategy_%d", fixtureSeq.Add(1)), "Scalping", "Low").Scan(&id)
	require.NoError(f.t, err, "Failed to create test strategy")

	return id
}

// CreateCurrencyPair creates a test currency pair in the database
func (f *TestFixtures) CreateCurrencyPair(userID int64) int64 {
	f.t.Helper()

	var id int64
	query := `INSERT INTO currency_pairs (user_id, from_currency, to_currency)
			  VALUES ($1, $2, $3) RETURNING id`

	err := f.db.QueryRowContext(context.Background(), query,
		userID, fmt.Sprintf("CUR%d", fixtureSeq.Add(1)), "USD").Scan(&id)
	require.NoError(f.t, err, "Failed to create test currency pair")

	return id
}
