package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/poiesic/caretrack/core"
	"github.com/urfave/cli/v2"
)

func activityFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "activity",
		Aliases: []string{"a"},
		Usage:   "Activity type (general, therapy, school, leisure, meal, progress, challenge, important)",
		Value:   string(core.ActivityGeneral),
	}
}

func noteCommand() *cli.Command {
	return &cli.Command{
		Name:  "note",
		Usage: "Record and read timeline notes",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Add a note to a contact's timeline",
				ArgsUsage: "<contact-id> <text...>",
				Action:    noteAddCommand,
				Flags:     []cli.Flag{activityFlag()},
			},
			{
				Name:      "list",
				Usage:     "Print a contact's timeline",
				ArgsUsage: "<contact-id>",
				Action:    noteListCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "activity",
						Usage: "Only show entries of this activity type",
					},
				},
			},
		},
	}
}

func noteAddCommand(c *cli.Context) error {
	args, err := argsOrUsage(c, "<contact-id>", "<text...>")
	if err != nil {
		return err
	}
	text := strings.TrimSpace(strings.Join(c.Args().Slice()[1:], " "))
	if text == "" {
		return fmt.Errorf("note text is empty")
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

	msg := j.Contacts().AddMessage(args[0], text, true, nil, activity)
	fmt.Fprintln(c.App.Writer, msg.ID)
	return nil
}

func noteListCommand(c *cli.Context) error {
	args, err := argsOrUsage(c, "<contact-id>")
	if err != nil {
		return err
	}

	var filter core.ActivityType
	if c.IsSet("activity") {
		if filter, err = core.ParseActivityType(c.String("activity")); err != nil {
			return err
		}
	}

	j, err := openJournal(c)
	if err != nil {
		return err
	}
	defer j.Close()

	conv, ok := j.Contacts().GetConversationByContactID(args[0])
	if !ok {
		return fmt.Errorf("no timeline for contact %s", args[0])
	}

	for _, msg := range conv.Messages {
		if filter != "" && msg.ActivityType != filter {
			continue
		}
		author := "sistema"
		if msg.IsUser {
			author = "cuidador"
		}
		line := fmt.Sprintf("%s\t%s\t%s\t%s",
			msg.Timestamp.Local().Format(time.DateTime), msg.ActivityType, author, msg.Content)
		if n := len(msg.MediaAttachments); n > 0 {
			line += fmt.Sprintf(" [%d anexo(s)]", n)
		}
		fmt.Fprintln(c.App.Writer, line)
	}
	return nil
}
