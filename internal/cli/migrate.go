package cli

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"gorm.io/driver/postgres"

	"github.com/pageza/recipebook/backend/config"
	"github.com/pageza/recipebook/backend/internal/database"
)

func migrateCmd() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply or roll back the PostgreSQL schema migrations",
		Description: `Applies the embedded SQL migrations to the PostgreSQL database described by
DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME and DB_SSL_MODE. Applied
migrations are tracked in schema_migrations.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "rollback",
				Usage: "Roll back the last applied migration",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			sqlDB, err := sql.Open("postgres", database.PostgresDSN(cfg))
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer sqlDB.Close()

			db, err := database.OpenGorm(postgres.New(postgres.Config{Conn: sqlDB}))
			if err != nil {
				return err
			}

			if cmd.Bool("rollback") {
				name, err := database.RollbackLast(db)
				if err != nil {
					return err
				}
				log.Info().Str("migration", name).Msg("Rollback complete")
				return nil
			}

			if err := database.RunMigrations(db); err != nil {
				return err
			}
			log.Info().Msg("Migrations complete")
			return nil
		},
	}
}
