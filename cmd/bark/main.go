package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/bunchhieng/bark/internal/app"
	out "github.com/bunchhieng/bark/internal/cli"
	"github.com/bunchhieng/bark/internal/commands"
	"github.com/bunchhieng/bark/internal/config"
	"github.com/bunchhieng/bark/internal/logger"
	"github.com/bunchhieng/bark/internal/tui"
	"github.com/urfave/cli/v2"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		out.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "bark",
		Usage:   "keep bookmarks in a local SQLite database",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "db-path", Usage: "database file path (default: platform config directory)"},
			&cli.StringFlag{Name: "config", Usage: "config file path"},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
		},
		Action: runMenu,
		Commands: []*cli.Command{
			{
				Name:      "import",
				Usage:     "import the starred repositories of a GitHub user",
				ArgsUsage: "<username>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "keep-timestamps", Usage: "use the star time as the date added"},
				},
				Action: runImport,
			},
			{
				Name:  "list",
				Usage: "print bookmarks",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "by-title", Usage: "sort by title instead of date added"},
				},
				Action: runList,
			},
			{
				Name:      "add",
				Usage:     "add a bookmark",
				ArgsUsage: "<title> <url>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "notes", Usage: "notes for the bookmark"},
				},
				Action: runAdd,
			},
			{
				Name:      "rm",
				Usage:     "delete a bookmark",
				ArgsUsage: "<id>",
				Action:    runRemove,
			},
		},
	}
}

// loadConfig applies global flags on top of file and environment settings.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if p := c.String("db-path"); p != "" {
		cfg.DBPath = p
	}
	if l := c.String("log-level"); l != "" {
		cfg.Log.Level = l
	}
	return cfg, nil
}

// open builds the application, logging to the configured file when toFile is
// set and to stderr otherwise.
func open(c *cli.Context, toFile bool) (*app.App, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	output := "stderr"
	if toFile {
		if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		output = cfg.Log.File
	}
	log, err := logger.New(cfg.Log.Level, cfg.Log.Pretty, output)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	a, err := app.New(c.Context, cfg, log)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}
	return a, nil
}

func runMenu(c *cli.Context) error {
	if c.NArg() > 0 {
		return fmt.Errorf("unknown command: %s", c.Args().First())
	}
	a, err := open(c, true)
	if err != nil {
		return err
	}
	defer a.Close()

	a.Log.Info("menu started", logger.String("db_path", a.Config.DBPath))
	return tui.Run(a.Commands)
}

func runImport(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: bark import <username> [--keep-timestamps]")
	}
	a, err := open(c, false)
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := a.Commands.Import.Execute(c.Context, commands.ImportInput{
		Username:       c.Args().First(),
		KeepTimestamps: c.Bool("keep-timestamps"),
	})
	if err != nil {
		if res.Imported > 0 {
			fmt.Fprintf(os.Stderr, "%d bookmarks were imported before the failure\n", res.Imported)
		}
		return err
	}
	out.PrintSuccess(os.Stdout, res.Message)
	return nil
}

func runList(c *cli.Context) error {
	a, err := open(c, false)
	if err != nil {
		return err
	}
	defer a.Close()

	list := a.Commands.ListByDate
	if c.Bool("by-title") {
		list = a.Commands.ListByTitle
	}
	res, err := list.Execute(c.Context)
	if err != nil {
		return err
	}
	out.PrintBookmarksTable(os.Stdout, res.Bookmarks)
	return nil
}

func runAdd(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("usage: bark add <title> <url> [--notes \"...\"]")
	}
	a, err := open(c, false)
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := a.Commands.Add.Execute(c.Context, commands.AddInput{
		Title: c.Args().Get(0),
		URL:   c.Args().Get(1),
		Notes: c.String("notes"),
	})
	if err != nil {
		return err
	}
	out.PrintSuccess(os.Stdout, res.Message)
	return nil
}

func runRemove(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: bark rm <id>")
	}
	id, err := out.ParseID(c.Args().First())
	if err != nil {
		return err
	}
	a, err := open(c, false)
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := a.Commands.Delete.Execute(c.Context, id)
	if err != nil {
		return err
	}
	out.PrintSuccess(os.Stdout, res.Message)
	return nil
}
