package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/pageza/recipebook/backend/config"
	"github.com/pageza/recipebook/backend/internal/store"
)

func exportCmd() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Dump every recipe with its reviews as JSON",
		Description: `Writes the catalog to s3://$S3_BUCKET_NAME/exports/recipes-<timestamp>.json
when S3_BUCKET_NAME is set, otherwise to --out (stdout by default).`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Output file when no bucket is configured (default stdout)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, st, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close(context.Background())

			body, err := exportRecipes(ctx, st)
			if err != nil {
				return err
			}

			if cfg.S3BucketName != "" {
				return uploadExport(ctx, cfg, body, time.Now())
			}
			return writeExport(cmd.String("out"), body)
		},
	}
}

// exportRecipes renders every recipe in st as an indented JSON array.
func exportRecipes(ctx context.Context, st store.RecipeStore) ([]byte, error) {
	recipes, err := st.AllRecipes(ctx)
	if err != nil {
		return nil, err
	}
	body, err := json.MarshalIndent(recipes, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode recipes: %w", err)
	}
	log.Info().Int("recipes", len(recipes)).Msg("Export prepared")
	return append(body, '\n'), nil
}

// exportKey names the object holding an export taken at t.
func exportKey(t time.Time) string {
	return "exports/recipes-" + t.UTC().Format("20060102T150405Z") + ".json"
}

func uploadExport(ctx context.Context, cfg *config.Config, body []byte, at time.Time) error {
	s3cfg, err := config.NewS3Config(ctx, cfg)
	if err != nil {
		return err
	}
	key := exportKey(at)
	if err := s3cfg.PutJSON(ctx, key, body); err != nil {
		return err
	}
	log.Info().Str("location", "s3://"+s3cfg.BucketName+"/"+key).Msg("Export uploaded")
	return nil
}

func writeExport(path string, body []byte) error {
	var w io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		defer f.Close()
		w = f
	}
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	if path != "" {
		log.Info().Str("file", path).Msg("Export written")
	}
	return nil
}
