// Command umbel grows branching blob sculptures, renders them from an
// orthographic and a perspective camera in two poses, post-processes the
// frames into masked and flattened variants, and exports the fused mesh.
package main

import (
	"fmt"
	"os"

	"github.com/edaniels/golog"
	"github.com/urfave/cli/v2"

	"github.com/chazu/umbel/pkg/config"
	"github.com/chazu/umbel/pkg/engine"
	"github.com/chazu/umbel/pkg/kernel/sdfx"
	"github.com/chazu/umbel/pkg/scene"
	"github.com/chazu/umbel/pkg/sculpt"
	"github.com/chazu/umbel/pkg/studio"
)

func main() {
	logger := golog.NewDevelopmentLogger("umbel")

	app := &cli.App{
		Name:  "umbel",
		Usage: "generate branching blob sculptures and render them",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "asymmetric",
				Usage: "skip bilateral symmetrization",
			},
			&cli.IntFlag{
				Name:    "num-exemplars",
				Aliases: []string{"n"},
				Value:   1,
				Usage:   "how many sculptures to generate",
			},
			&cli.Float64Flag{
				Name:  "min-dist",
				Value: 0.05,
				Usage: "minimum distance of first-level blobs from the symmetry plane",
			},
			&cli.BoolFlag{
				Name:  "no-save",
				Usage: "generate geometry but write no files",
			},
			&cli.StringFlag{
				Name:  "bg-color",
				Value: "0.05,0.05,0.05",
				Usage: "background color as r,g,b in [0,1]",
			},
			&cli.StringFlag{
				Name:  "ob-color",
				Value: "1,1,1",
				Usage: "object color as r,g,b in [0,1]",
			},
			&cli.StringFlag{
				Name:  "out-dir",
				Value: ".",
				Usage: "output directory for frames and meshes",
			},
			&cli.Int64Flag{
				Name:  "seed",
				Usage: "rng seed; 0 seeds from the clock for varied exemplars",
			},
			&cli.PathFlag{
				Name:  "recipe",
				Usage: "lisp recipe file overriding the default sculpture parameters",
			},
			&cli.PathFlag{
				Name:  "config",
				Usage: "toml settings file for render/export quality",
			},
		},
		Action: func(c *cli.Context) error {
			return run(c, logger)
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Fatal(err)
	}
}

func run(c *cli.Context, logger golog.Logger) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	recipe, err := loadRecipe(c)
	if err != nil {
		return err
	}

	st := studio.New(sdfx.New(), cfg, logger)
	rng := sculpt.NewRand(recipe.Seed)

	n := c.Int("num-exemplars")
	for i := 0; i < n; i++ {
		if err := st.Generate(recipe, rng); err != nil {
			return fmt.Errorf("exemplar %d: %w", i+1, err)
		}
	}

	mode := "symmetric"
	if !recipe.Symmetric {
		mode = "asymmetric"
	}
	logger.Infof("finished: made %d %s sculptures", n, mode)
	return nil
}

// loadConfig resolves settings: defaults, then the optional TOML file,
// then CLI flags on top.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if path := c.Path("config"); path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return cfg, err
		}
	}
	if c.IsSet("out-dir") || cfg.OutDir == "" {
		cfg.OutDir = c.String("out-dir")
	}
	if c.Bool("no-save") {
		cfg.SaveImages = false
	}
	return cfg, nil
}

// loadRecipe resolves sculpture parameters: defaults, then the optional
// Lisp recipe, then CLI flags on top.
func loadRecipe(c *cli.Context) (scene.Recipe, error) {
	recipe := scene.DefaultRecipe()

	if path := c.Path("recipe"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return recipe, fmt.Errorf("read recipe: %w", err)
		}
		r, evalErrs, err := engine.NewEngine().Evaluate(string(data))
		if err != nil {
			return recipe, fmt.Errorf("recipe %s: %w", path, err)
		}
		if len(evalErrs) > 0 {
			for _, e := range evalErrs {
				fmt.Fprintf(os.Stderr, "%s: %s\n", path, e.Error())
			}
			return recipe, fmt.Errorf("recipe %s has %d errors", path, len(evalErrs))
		}
		recipe = *r
	}

	if c.Bool("asymmetric") {
		recipe.Symmetric = false
	}
	if c.IsSet("min-dist") {
		recipe.MinDist = c.Float64("min-dist")
	}
	if c.IsSet("seed") {
		recipe.Seed = c.Int64("seed")
	}
	if c.IsSet("bg-color") {
		col, err := scene.ParseRGB(c.String("bg-color"))
		if err != nil {
			return recipe, err
		}
		recipe.Background = col
	}
	if c.IsSet("ob-color") {
		col, err := scene.ParseRGB(c.String("ob-color"))
		if err != nil {
			return recipe, err
		}
		recipe.Object = col
	}
	return recipe, nil
}
