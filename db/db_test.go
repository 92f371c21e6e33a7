package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnString(t *testing.T) {
	t.Run("database url wins", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://u:p@h/db")
		t.Setenv("DB_HOST", "ignored")
		got, err := ConnString()
		require.NoError(t, err)
		assert.Equal(t, "postgres://u:p@h/db", got)
	})

	t.Run("individual variables with defaults", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("DB_PORT", "")
		t.Setenv("DB_USER", "shop")
		t.Setenv("DB_PASSWORD", "secret")
		t.Setenv("DB_NAME", "cart")
		t.Setenv("DB_SSLMODE", "")
		got, err := ConnString()
		require.NoError(t, err)
		assert.Equal(t, "host=localhost port=5432 user=shop password=secret dbname=cart sslmode=disable", got)
	})

	t.Run("missing variables", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		t.Setenv("DB_HOST", "")
		t.Setenv("DB_USER", "")
		t.Setenv("DB_NAME", "")
		_, err := ConnString()
		assert.Error(t, err)
	})
}
