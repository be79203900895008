package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"catalog/navigator/internal/config"
	"catalog/navigator/internal/console"
	"catalog/navigator/internal/container"
	"catalog/navigator/internal/domain"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "navigator",
		Usage: "Browse, search and select categories of a product catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path (default: ./config.yaml)",
			},
			&cli.StringFlag{
				Name:  "file",
				Usage: "Read categories from a local JSON or HTML file instead of source.url",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Show debug logs",
			},
		},
		Commands: []*cli.Command{
			{
				Name:    "browse",
				Aliases: []string{"b"},
				Usage:   "Open the interactive navigator",
				Action:  browseCommand,
			},
			{
				Name:      "search",
				Aliases:   []string{"s"},
				Usage:     "Search category names across the whole tree",
				ArgsUsage: "<term>",
				Action:    searchCommand,
			},
			{
				Name:      "path",
				Usage:     "Print the breadcrumb of a category",
				ArgsUsage: "<id>",
				Action:    pathCommand,
			},
			{
				Name:   "tree",
				Usage:  "Print the whole category tree",
				Action: treeCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("❌ %v", err)
	}
}

// setup loads the configuration, configures logging and builds the container
func setup(c *cli.Context) (*container.Container, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if file := c.String("file"); file != "" {
		cfg.Source.File = file
	}

	if err := configureLogging(cfg.Log, c.Bool("verbose")); err != nil {
		return nil, err
	}
	log.Debug("Configuration loaded successfully")

	app, err := container.New(c.Context, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize container: %w", err)
	}
	return app, nil
}

func configureLogging(cfg config.LogConfig, verbose bool) error {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	if verbose {
		level = log.DebugLevel
	}
	log.SetLevel(level)

	if cfg.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return nil
}

func browseCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := setup(c)
	if err != nil {
		return err
	}
	defer app.Close()

	fmt.Println("Type help for the list of commands.")
	err = console.New(app.Service, os.Stdout, app.Config.Navigator.SuggestionLimit).Run(ctx, os.Stdin)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func searchCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return errors.New("usage: navigator search <term>")
	}

	app, err := setup(c)
	if err != nil {
		return err
	}
	defer app.Close()

	controller, err := app.Service.Open(c.Context)
	if err != nil {
		return err
	}
	defer controller.Close()

	if err := controller.SetSearchTerm(c.Args().First()); err != nil {
		return err
	}
	fmt.Println(console.RenderResults(controller.SearchResults(), controller.Suggestions(app.Config.Navigator.SuggestionLimit)))
	return nil
}

func pathCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return errors.New("usage: navigator path <id>")
	}
	id := domain.CategoryID(c.Args().First())

	app, err := setup(c)
	if err != nil {
		return err
	}
	defer app.Close()

	controller, err := app.Service.Open(c.Context)
	if err != nil {
		return err
	}
	defer controller.Close()

	path, ok := controller.Catalog().FindPath(id)
	if !ok {
		return fmt.Errorf("category %s not found", id)
	}
	fmt.Println(domain.Breadcrumb(path))
	return nil
}

func treeCommand(c *cli.Context) error {
	app, err := setup(c)
	if err != nil {
		return err
	}
	defer app.Close()

	controller, err := app.Service.Open(c.Context)
	if err != nil {
		return err
	}
	defer controller.Close()

	fmt.Println(console.RenderTree(controller.Catalog().Tree()))
	return nil
}
