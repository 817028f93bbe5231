package testhelpers

import (
	"context"
	"fmt"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pageza/recipebook/backend/internal/database"
	"github.com/pageza/recipebook/backend/internal/model"
	"github.com/pageza/recipebook/backend/internal/store"
	"github.com/pageza/recipebook/backend/internal/store/mongostore"
	"github.com/pageza/recipebook/backend/internal/store/sqlstore"
)

// Reference entries created by SeedReferences.
var (
	DefaultCuisines = []string{"Italian", "Mexican", "Japanese"}
	DefaultTags     = []string{"vegetarian", "quick", "spicy"}
)

// NewSQLiteStore returns a migrated store on a private in-memory SQLite
// database.
func NewSQLiteStore(t *testing.T) *sqlstore.Store {
	t.Helper()

	db, err := database.OpenGorm(sqlite.Open(":memory:"))
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))

	s := sqlstore.New(db)
	t.Cleanup(func() {
		_ = s.Close(context.Background())
	})
	return s
}

// SeedReferences upserts the default cuisines and tags into s.
func SeedReferences(t *testing.T, s store.ReferenceStore) (map[string]model.Cuisine, map[string]model.Tag) {
	t.Helper()
	ctx := context.Background()

	cuisines := make(map[string]model.Cuisine, len(DefaultCuisines))
	for _, name := range DefaultCuisines {
		c, err := s.UpsertCuisine(ctx, name)
		require.NoError(t, err)
		cuisines[name] = *c
	}
	tags := make(map[string]model.Tag, len(DefaultTags))
	for _, name := range DefaultTags {
		tag, err := s.UpsertTag(ctx, name)
		require.NoError(t, err)
		tags[name] = *tag
	}
	return cuisines, tags
}

// RequireDocker skips container tests in -short mode or without docker.
func RequireDocker(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-based test in short mode")
	}
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("docker not installed, skipping container-based test")
	}
}

func terminate(t *testing.T, container testcontainers.Container) {
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := container.Terminate(ctx); err != nil {
			t.Errorf("failed to terminate container: %v", err)
		}
	})
}

// NewPostgresDB starts a PostgreSQL container and returns an open, unmigrated
// handle to it.
func NewPostgresDB(t *testing.T) *gorm.DB {
	t.Helper()
	RequireDocker(t)
	ctx := context.Background()

	const (
		user     = "postgres"
		password = "postpass"
		dbName   = "sctp_recipe_book"
	)

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     user,
				"POSTGRES_PASSWORD": password,
				"POSTGRES_DB":       dbName,
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "failed to start postgres container")
	terminate(t, container)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port.Port(), user, password, dbName)
	db, err := database.OpenGorm(postgres.Open(dsn))
	require.NoError(t, err, "failed to connect to postgres")
	return db
}

// NewPostgresStore returns a migrated store on a fresh PostgreSQL container.
func NewPostgresStore(t *testing.T) *sqlstore.Store {
	t.Helper()
	db := NewPostgresDB(t)
	require.NoError(t, database.RunMigrations(db))

	s := sqlstore.New(db)
	t.Cleanup(func() {
		_ = s.Close(context.Background())
	})
	return s
}

// NewMongoStore returns an indexed store on a fresh MongoDB container.
func NewMongoStore(t *testing.T) *mongostore.Store {
	t.Helper()
	RequireDocker(t)
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("27017/tcp"),
				wait.ForLog("Waiting for connections"),
			).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "failed to start mongo container")
	terminate(t, container)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "27017")
	require.NoError(t, err)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(fmt.Sprintf("mongodb://%s:%s", host, port.Port())))
	require.NoError(t, err)
	require.NoError(t, client.Ping(ctx, nil))

	s := mongostore.New(client, "sctp_recipe_book_test")
	require.NoError(t, s.EnsureIndexes(ctx))
	t.Cleanup(func() {
		_ = s.Close(context.Background())
	})
	return s
}
