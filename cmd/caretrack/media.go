package main

import (
	"context"
	"fmt"
	"time"

	"github.com/poiesic/caretrack/core"
	"github.com/urfave/cli/v2"
)

func mediaCommand() *cli.Command {
	return &cli.Command{
		Name:  "media",
		Usage: "Attach and browse photos, videos and audio",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Attach a media file to a contact's timeline",
				ArgsUsage: "<contact-id> <file>",
				Action:    mediaAddCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "kind",
						Usage: "Media kind (image, video, audio); detected from the file when omitted",
					},
					activityFlag(),
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "How long to wait for the file to be read",
						Value: 30 * time.Second,
					},
				},
			},
			{
				Name:      "list",
				Usage:     "List a contact's media grouped by day",
				ArgsUsage: "<contact-id>",
				Action:    mediaListCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "kind",
						Usage: "Only show this media kind (image, video, audio)",
					},
				},
			},
		},
	}
}

func mediaAddCommand(c *cli.Context) error {
	args, err := argsOrUsage(c, "<contact-id>", "<file>")
	if err != nil {
		return err
	}

	kind, err := parseKind(c.String("kind"))
	if err != nil {
		return err
	}
	activity, err := core.ParseActivityType(c.String("activity"))
	if err != nil {
		return err
	}

	j, err := openJournal(c)
	if err != nil {
		return err
	}
	defer j.Close()

	if _, ok := j.Contacts().GetContactByID(args[0]); !ok {
		return fmt.Errorf("contact %s not found", args[0])
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.Duration("timeout"))
	defer cancel()

	msg, err := j.SendMediaFile(ctx, args[0], args[1], kind, activity)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, msg.ID)
	return nil
}

func mediaListCommand(c *cli.Context) error {
	args, err := argsOrUsage(c, "<contact-id>")
	if err != nil {
		return err
	}

	kind, err := parseKind(c.String("kind"))
	if err != nil {
		return err
	}

	j, err := openJournal(c)
	if err != nil {
		return err
	}
	defer j.Close()

	items := core.FilterMediaByKind(j.Contacts().GetMediaAttachments(args[0]), kind)

	for _, day := range core.GroupMediaByDay(items, time.Local) {
		fmt.Fprintln(c.App.Writer, day.Day.Format(time.DateOnly))
		for _, item := range day.Items {
			fmt.Fprintf(c.App.Writer, "  %s\t%s\t%s\t%s\n",
				item.Timestamp.Local().Format(time.TimeOnly), item.Type, item.Name, item.ID)
		}
	}
	return nil
}

// parseKind accepts an empty string as "any kind".
func parseKind(s string) (core.MediaKind, error) {
	if s == "" {
		return "", nil
	}
	kind := core.MediaKind(s)
	if err := core.ValidateMediaKind(kind); err != nil {
		return "", err
	}
	return kind, nil
}
