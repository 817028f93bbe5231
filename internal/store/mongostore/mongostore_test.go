package mongostore_test

import (
	"testing"

	"github.com/pageza/recipebook/backend/internal/store"
	"github.com/pageza/recipebook/backend/internal/store/storetest"
	"github.com/pageza/recipebook/backend/internal/testhelpers"
)

func TestMongoStore(t *testing.T) {
	testhelpers.RequireDocker(t)
	storetest.Run(t, func(t *testing.T) store.Store {
		return testhelpers.NewMongoStore(t)
	})
}
