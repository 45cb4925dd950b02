package db

import (
	"testing"

	"travel_booking/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialector(t *testing.T) {
	for _, driver := range []string{config.DriverMySQL, config.DriverPostgres} {
		d, err := Dialector(&config.Config{DBDriver: driver})
		require.NoError(t, err)
		assert.Equal(t, driver, d.Name())
	}

	_, err := Dialector(&config.Config{DBDriver: "sqlite"})
	assert.Error(t, err)
}

func TestModels(t *testing.T) {
	assert.Len(t, Models(), 4)
}
