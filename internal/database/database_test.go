package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelbooking/internal/pkg/logger"
)

type uniqueThing struct {
	ID   int64
	Code string `gorm:"uniqueIndex"`
}

func TestIsPostgres(t *testing.T) {
	assert.True(t, IsPostgres("postgres://u:p@localhost/db"))
	assert.True(t, IsPostgres("postgresql://localhost/db"))
	assert.False(t, IsPostgres("hotel.db"))
	assert.False(t, IsPostgres(":memory:"))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsUniqueViolation(fmt.Errorf("create: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
}

func TestConnect_SQLiteUniqueViolation(t *testing.T) {
	db, err := Connect(fmt.Sprintf("file:db_%s?mode=memory&cache=shared", t.Name()), logger.Nop())
	require.NoError(t, err)
	require.NoError(t, Migrate(db, &uniqueThing{}))

	require.NoError(t, db.Create(&uniqueThing{Code: "a"}).Error)
	err = db.Create(&uniqueThing{Code: "a"}).Error
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
}
