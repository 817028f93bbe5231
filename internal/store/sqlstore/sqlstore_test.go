package sqlstore_test

import (
	"testing"

	"github.com/pageza/recipebook/backend/internal/store"
	"github.com/pageza/recipebook/backend/internal/store/storetest"
	"github.com/pageza/recipebook/backend/internal/testhelpers"
)

func TestSQLiteStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		return testhelpers.NewSQLiteStore(t)
	})
}

func TestPostgresStore(t *testing.T) {
	testhelpers.RequireDocker(t)
	storetest.Run(t, func(t *testing.T) store.Store {
		return testhelpers.NewPostgresStore(t)
	})
}
