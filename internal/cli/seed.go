package cli

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/pageza/recipebook/backend/internal/store"
)

// Reference entries written by seed when no names are given.
var (
	DefaultCuisines = []string{
		"American", "Chinese", "French", "Greek", "Indian", "Italian",
		"Japanese", "Mexican", "Spanish", "Thai",
	}
	DefaultTags = []string{
		"breakfast", "dessert", "gluten-free", "healthy", "quick",
		"spicy", "vegan", "vegetarian",
	}
)

func seedCmd() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Create cuisines and tags in the configured store",
		Description: `Upserts cuisines and tags by name. Without flags the default set is
written. Running seed twice leaves a single entry per name.`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "cuisine",
				Usage: "Cuisine name to create (can be repeated)",
			},
			&cli.StringSliceFlag{
				Name:  "tag",
				Usage: "Tag name to create (can be repeated)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_, st, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close(context.Background())

			cuisines, tags := cmd.StringSlice("cuisine"), cmd.StringSlice("tag")
			if len(cuisines) == 0 && len(tags) == 0 {
				cuisines, tags = DefaultCuisines, DefaultTags
			}
			return seedReferences(ctx, st, cuisines, tags)
		},
	}
}

func seedReferences(ctx context.Context, st store.ReferenceStore, cuisines, tags []string) error {
	for _, name := range cuisines {
		c, err := st.UpsertCuisine(ctx, name)
		if err != nil {
			return err
		}
		log.Info().Str("id", c.ID).Str("name", c.Name).Msg("Cuisine ready")
	}
	for _, name := range tags {
		t, err := st.UpsertTag(ctx, name)
		if err != nil {
			return err
		}
		log.Info().Str("id", t.ID).Str("name", t.Name).Msg("Tag ready")
	}
	return nil
}
