package database_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"

	"github.com/pageza/recipebook/backend/config"
	"github.com/pageza/recipebook/backend/internal/database"
	"github.com/pageza/recipebook/backend/internal/testhelpers"
)

func TestRunMigrationsSQLite(t *testing.T) {
	db, err := database.OpenGorm(sqlite.Open(":memory:"))
	require.NoError(t, err)

	require.NoError(t, database.RunMigrations(db))
	require.NoError(t, database.RunMigrations(db), "migrations are repeatable")

	for _, table := range []string{"cuisines", "tags", "recipes", "recipe_ingredients", "recipe_tags", "recipe_reviews"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestPostgresMigrations(t *testing.T) {
	db := testhelpers.NewPostgresDB(t)

	require.NoError(t, database.RunMigrations(db))
	require.NoError(t, database.RunMigrations(db), "applied migrations are skipped")
	assert.True(t, db.Migrator().HasTable("recipe_reviews"))

	var applied int64
	require.NoError(t, db.Table("schema_migrations").Count(&applied).Error)
	assert.Equal(t, int64(1), applied)

	name, err := database.RollbackLast(db)
	require.NoError(t, err)
	assert.Equal(t, "0001_create_recipe_tables.sql", name)
	assert.False(t, db.Migrator().HasTable("recipes"))

	_, err = database.RollbackLast(db)
	assert.Error(t, err)
}

func TestPostgresDSN(t *testing.T) {
	cfg := &config.Config{
		DBHost:     "db",
		DBPort:     "5432",
		DBUser:     "chef",
		DBPassword: "secret",
		DBName:     "sctp_recipe_book",
		DBSSLMode:  "disable",
	}
	assert.Equal(t, "host=db port=5432 user=chef password=secret dbname=sctp_recipe_book sslmode=disable",
		database.PostgresDSN(cfg))
}

func TestOpenStoreRejectsUnknownDriver(t *testing.T) {
	_, err := database.OpenStore(context.Background(), &config.Config{StoreDriver: "cassandra"})
	assert.Error(t, err)
}
