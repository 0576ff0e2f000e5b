package main

import (
	"os"

	"mini-voxel/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "atlaspack",
		Usage: "packs textures into an atlas and meshes chunks without a window",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: "config.toml", Usage: "TOML config file"},
			&cli.StringFlag{Name: "log-level", Usage: "overrides [log] level"},
		},
		Commands: []*cli.Command{
			packCommand(),
			meshCommand(),
			initCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}

// setup loads the config named by the global flags and builds a logger from it.
func setup(c *cli.Context) (config.Config, *logrus.Logger, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return cfg, nil, err
	}
	if lvl := c.String("log-level"); lvl != "" {
		cfg.Log.Level = lvl
		cfg.Validate()
	}
	return cfg, cfg.NewLogger(), nil
}
