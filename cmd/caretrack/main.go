// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/caretrack"
	"github.com/poiesic/caretrack/config"
	"github.com/poiesic/caretrack/notify"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "caretrack",
		Usage: "Keep profiles and daily records of the people you care for",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
				EnvVars: []string{config.EnvPrefix + "LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:  "store",
				Usage: "Storage backend (badger, redis)",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory",
			},
			&cli.StringFlag{
				Name:  "redis-addr",
				Usage: "Redis server address (host:port)",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			contactCommand(),
			noteCommand(),
			mediaCommand(),
		},
	}
}

// openJournal opens the journal described by the environment and the
// global flags. Notifications are echoed to the app's error writer.
func openJournal(c *cli.Context) (*caretrack.Journal, error) {
	cfg, err := config.Load(&config.Config{
		Backend:  c.String("store"),
		LogLevel: c.String("log-level"),
		Badger:   config.Badger{Dir: c.String("db")},
		Redis:    config.Redis{Addr: c.String("redis-addr")},
	})
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	errWriter := c.App.ErrWriter
	if errWriter == nil {
		errWriter = os.Stderr
	}
	j, err := caretrack.Open(context.Background(), cfg,
		caretrack.WithNotifyHook(func(n notify.Notification) {
			if n.Description != "" {
				fmt.Fprintf(errWriter, "%s: %s\n", n.Title, n.Description)
				return
			}
			fmt.Fprintln(errWriter, n.Title)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	return j, nil
}

// argsOrUsage returns the first n positional arguments, or an error naming
// what is missing.
func argsOrUsage(c *cli.Context, names ...string) ([]string, error) {
	if c.NArg() < len(names) {
		return nil, fmt.Errorf("usage: %s %s", c.Command.FullName(), strings.Join(names, " "))
	}
	return c.Args().Slice()[:len(names)], nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
