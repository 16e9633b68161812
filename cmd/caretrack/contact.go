package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/poiesic/caretrack/core"
	"github.com/urfave/cli/v2"
)

func contactCommand() *cli.Command {
	return &cli.Command{
		Name:  "contact",
		Usage: "Manage contact profiles",
		Subcommands: []*cli.Command{
			{
				Name:   "add",
				Usage:  "Register a new contact",
				Action: contactAddCommand,
				Flags:  append(profileFlags(true), &cli.StringFlag{Name: "avatar", Usage: "Path to an avatar image"}),
			},
			{
				Name:   "list",
				Usage:  "List contacts, most recent activity first",
				Action: contactListCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "search",
						Aliases: []string{"s"},
						Usage:   "Only show contacts whose name, disability or CID contains the text",
					},
				},
			},
			{
				Name:      "show",
				Usage:     "Print a contact profile as JSON",
				ArgsUsage: "<contact-id>",
				Action:    contactShowCommand,
			},
			{
				Name:      "update",
				Usage:     "Change fields of a contact profile",
				ArgsUsage: "<contact-id>",
				Action:    contactUpdateCommand,
				Flags:     profileFlags(false),
			},
			{
				Name:      "delete",
				Usage:     "Delete a contact and its timeline",
				ArgsUsage: "<contact-id>",
				Action:    contactDeleteCommand,
			},
			{
				Name:      "avatar",
				Usage:     "Set a contact's avatar from an image file",
				ArgsUsage: "<contact-id> <image-file>",
				Action:    contactAvatarCommand,
			},
		},
	}
}

func profileFlags(required bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "name", Usage: "Full name", Required: required},
		&cli.IntFlag{Name: "age", Usage: "Age in years", Required: required},
		&cli.StringFlag{Name: "disability", Usage: "Intellectual disability", Required: required},
		&cli.StringFlag{Name: "cid", Usage: "ICD diagnostic code", Required: required},
		&cli.StringFlag{Name: "level", Usage: "Assistance level (leve, moderado, severo)", Required: required},
		&cli.StringSliceFlag{Name: "stereotypy", Usage: "Stereotypy (repeatable)"},
		&cli.StringSliceFlag{Name: "like", Usage: "Something the contact likes (repeatable)"},
		&cli.StringSliceFlag{Name: "dislike", Usage: "Something the contact dislikes (repeatable)"},
		&cli.StringFlag{Name: "verbal", Usage: "Verbal communication"},
		&cli.StringFlag{Name: "non-verbal", Usage: "Non-verbal communication"},
		&cli.StringFlag{Name: "symbols", Usage: "Use of symbols or communication boards"},
		&cli.StringFlag{Name: "locomotion", Usage: "Locomotion capacity"},
		&cli.StringFlag{Name: "motor", Usage: "Specific motor difficulties"},
		&cli.StringFlag{Name: "needs", Usage: "Specific needs"},
	}
}

func contactAddCommand(c *cli.Context) error {
	level, err := core.ParseAssistanceLevel(c.String("level"))
	if err != nil {
		return err
	}

	in := core.NewContact{
		Name:                   strings.TrimSpace(c.String("name")),
		Age:                    c.Int("age"),
		IntellectualDisability: strings.TrimSpace(c.String("disability")),
		AssistanceLevel:        level,
		CID:                    strings.TrimSpace(c.String("cid")),
		Stereotypies:           nonNil(c.StringSlice("stereotypy")),
		Likes:                  nonNil(c.StringSlice("like")),
		Dislikes:               nonNil(c.StringSlice("dislike")),
		Communication:          communicationFromFlags(c),
		Mobility:               mobilityFromFlags(c),
		SpecificNeeds:          c.String("needs"),
	}
	if err := core.ValidateNewContact(&in); err != nil {
		return err
	}

	j, err := openJournal(c)
	if err != nil {
		return err
	}
	defer j.Close()

	contact := j.Contacts().AddContact(in)
	if path := c.String("avatar"); path != "" {
		if _, err := j.SetAvatarFile(contact.ID, path); err != nil {
			return fmt.Errorf("contact %s created, avatar not set: %w", contact.ID, err)
		}
	}

	fmt.Fprintln(c.App.Writer, contact.ID)
	return nil
}

func contactListCommand(c *cli.Context) error {
	j, err := openJournal(c)
	if err != nil {
		return err
	}
	defer j.Close()

	for _, contact := range j.Contacts().SortedContacts(c.String("search")) {
		last := "-"
		if contact.LastMessageTime != nil {
			last = contact.LastMessageTime.Local().Format(time.DateTime)
		}
		fmt.Fprintf(c.App.Writer, "%s\t%s\t%d\t%s\t%s\n",
			contact.ID, contact.Name, contact.Age, contact.AssistanceLevel, last)
	}
	return nil
}

func contactShowCommand(c *cli.Context) error {
	args, err := argsOrUsage(c, "<contact-id>")
	if err != nil {
		return err
	}

	j, err := openJournal(c)
	if err != nil {
		return err
	}
	defer j.Close()

	contact, ok := j.Contacts().GetContactByID(args[0])
	if !ok {
		return fmt.Errorf("contact %s not found", args[0])
	}

	data, err := json.MarshalIndent(contact, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, string(data))
	return nil
}

func contactUpdateCommand(c *cli.Context) error {
	args, err := argsOrUsage(c, "<contact-id>")
	if err != nil {
		return err
	}

	j, err := openJournal(c)
	if err != nil {
		return err
	}
	defer j.Close()

	existing, ok := j.Contacts().GetContactByID(args[0])
	if !ok {
		return fmt.Errorf("contact %s not found", args[0])
	}

	patch, err := patchFromFlags(c, existing)
	if err != nil {
		return err
	}
	if patch.IsEmpty() {
		return fmt.Errorf("nothing to update")
	}

	if _, ok := j.Contacts().UpdateContact(args[0], patch); !ok {
		return fmt.Errorf("contact %s not found", args[0])
	}
	return nil
}

func contactDeleteCommand(c *cli.Context) error {
	args, err := argsOrUsage(c, "<contact-id>")
	if err != nil {
		return err
	}

	j, err := openJournal(c)
	if err != nil {
		return err
	}
	defer j.Close()

	if !j.Contacts().DeleteContact(args[0]) {
		return fmt.Errorf("contact %s not found", args[0])
	}
	return nil
}

func contactAvatarCommand(c *cli.Context) error {
	args, err := argsOrUsage(c, "<contact-id>", "<image-file>")
	if err != nil {
		return err
	}

	j, err := openJournal(c)
	if err != nil {
		return err
	}
	defer j.Close()

	ok, err := j.SetAvatarFile(args[0], args[1])
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("contact %s not found", args[0])
	}
	return nil
}

// patchFromFlags builds a patch holding only the flags that were given.
// Communication and mobility flags edit single fields of the existing
// sub-record; fields whose flag is absent keep their stored value.
func patchFromFlags(c *cli.Context, existing core.Contact) (core.ContactPatch, error) {
	var patch core.ContactPatch

	if c.IsSet("name") {
		name := strings.TrimSpace(c.String("name"))
		if name == "" {
			return patch, core.ErrEmptyName
		}
		patch.Name = &name
	}
	if c.IsSet("age") {
		age := c.Int("age")
		if age <= 0 {
			return patch, core.ErrInvalidAge
		}
		patch.Age = &age
	}
	if c.IsSet("disability") {
		disability := c.String("disability")
		patch.IntellectualDisability = &disability
	}
	if c.IsSet("cid") {
		cid := c.String("cid")
		patch.CID = &cid
	}
	if c.IsSet("level") {
		level, err := core.ParseAssistanceLevel(c.String("level"))
		if err != nil {
			return patch, err
		}
		patch.AssistanceLevel = &level
	}
	if c.IsSet("stereotypy") {
		values := c.StringSlice("stereotypy")
		patch.Stereotypies = &values
	}
	if c.IsSet("like") {
		values := c.StringSlice("like")
		patch.Likes = &values
	}
	if c.IsSet("dislike") {
		values := c.StringSlice("dislike")
		patch.Dislikes = &values
	}
	if c.IsSet("verbal") || c.IsSet("non-verbal") || c.IsSet("symbols") {
		comm := core.Communication{}
		if existing.Communication != nil {
			comm = *existing.Communication
		}
		setIfGiven(c, "verbal", &comm.Verbal)
		setIfGiven(c, "non-verbal", &comm.NonVerbal)
		setIfGiven(c, "symbols", &comm.Symbols)
		patch.Communication = &comm
	}
	if c.IsSet("locomotion") || c.IsSet("motor") {
		mob := core.Mobility{}
		if existing.Mobility != nil {
			mob = *existing.Mobility
		}
		setIfGiven(c, "locomotion", &mob.Locomotion)
		setIfGiven(c, "motor", &mob.MotorDifficulties)
		patch.Mobility = &mob
	}
	if c.IsSet("needs") {
		needs := c.String("needs")
		patch.SpecificNeeds = &needs
	}
	return patch, nil
}

func setIfGiven(c *cli.Context, name string, dst *string) {
	if c.IsSet(name) {
		*dst = c.String(name)
	}
}

func communicationFromFlags(c *cli.Context) *core.Communication {
	comm := core.Communication{
		Verbal:    c.String("verbal"),
		NonVerbal: c.String("non-verbal"),
		Symbols:   c.String("symbols"),
	}
	if comm == (core.Communication{}) {
		return nil
	}
	return &comm
}

func mobilityFromFlags(c *cli.Context) *core.Mobility {
	mob := core.Mobility{
		Locomotion:        c.String("locomotion"),
		MotorDifficulties: c.String("motor"),
	}
	if mob == (core.Mobility{}) {
		return nil
	}
	return &mob
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
