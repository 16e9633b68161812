package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/poiesic/caretrack/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type result struct {
	out    string
	errOut string
}

// run executes the CLI against the database in dir.
func run(t *testing.T, dir string, args ...string) (result, error) {
	t.Helper()
	app := newApp()
	var out, errOut bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &errOut

	err := app.Run(append([]string{"caretrack", "--store", "badger", "--db", dir}, args...))
	return result{out: out.String(), errOut: errOut.String()}, err
}

func addContact(t *testing.T, dir, name string, extra ...string) string {
	t.Helper()
	args := append([]string{"contact", "add",
		"--name", name,
		"--age", "12",
		"--disability", "TEA",
		"--cid", "F84.0",
		"--level", "moderado",
	}, extra...)
	res, err := run(t, dir, args...)
	require.NoError(t, err)
	id := strings.TrimSpace(res.out)
	require.NotEmpty(t, id)
	return id
}

func findFlag[T cli.Flag](flags []cli.Flag, name string) T {
	var zero T
	for _, flag := range flags {
		if f, ok := flag.(T); ok && slices.Contains(flag.Names(), name) {
			return f
		}
	}
	return zero
}

func TestGlobalFlags(t *testing.T) {
	app := newApp()

	t.Run("log-level has alias -l and defaults to info", func(t *testing.T) {
		flag := findFlag[*cli.StringFlag](app.Flags, "log-level")
		require.NotNil(t, flag)
		assert.Equal(t, "info", flag.Value)
		assert.Contains(t, flag.Aliases, "l")
		assert.Equal(t, []string{"CARETRACK_LOG_LEVEL"}, flag.EnvVars)
	})

	t.Run("store and db have no default", func(t *testing.T) {
		store := findFlag[*cli.StringFlag](app.Flags, "store")
		require.NotNil(t, store)
		assert.Empty(t, store.Value)

		db := findFlag[*cli.StringFlag](app.Flags, "db")
		require.NotNil(t, db)
		assert.Empty(t, db.Value)
		assert.Contains(t, db.Aliases, "d")
	})

	t.Run("commands", func(t *testing.T) {
		var names []string
		for _, cmd := range app.Commands {
			names = append(names, cmd.Name)
		}
		assert.Equal(t, []string{"contact", "note", "media"}, names)
	})
}

func TestContactAdd_Validation(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing name flag fails", func(t *testing.T) {
		_, err := run(t, dir, "contact", "add", "--age", "12", "--disability", "TEA", "--cid", "F84.0", "--level", "leve")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name")
	})

	t.Run("invalid age fails", func(t *testing.T) {
		_, err := run(t, dir, "contact", "add", "--name", "Ana", "--age", "0", "--disability", "TEA", "--cid", "F84.0", "--level", "leve")
		assert.ErrorIs(t, err, core.ErrInvalidAge)
	})

	t.Run("invalid level fails", func(t *testing.T) {
		_, err := run(t, dir, "contact", "add", "--name", "Ana", "--age", "12", "--disability", "TEA", "--cid", "F84.0", "--level", "extremo")
		assert.ErrorIs(t, err, core.ErrInvalidAssistanceLevel)
	})

	t.Run("legacy level is accepted", func(t *testing.T) {
		res, err := run(t, dir, "contact", "add", "--name", "Bia", "--age", "9", "--disability", "TEA", "--cid", "F84.0", "--level", "medium")
		require.NoError(t, err)
		id := strings.TrimSpace(res.out)

		res, err = run(t, dir, "contact", "show", id)
		require.NoError(t, err)
		assert.Contains(t, res.out, `"assistanceLevel": "moderado"`)
	})
}

func TestContactLifecycle(t *testing.T) {
	dir := t.TempDir()

	anaID := addContact(t, dir, "Ana", "--like", "música", "--like", "desenhar", "--verbal", "frases curtas")
	brunoID := addContact(t, dir, "Bruno")

	t.Run("list shows every contact", func(t *testing.T) {
		res, err := run(t, dir, "contact", "list")
		require.NoError(t, err)
		assert.Contains(t, res.out, anaID)
		assert.Contains(t, res.out, brunoID)
	})

	t.Run("search filters", func(t *testing.T) {
		res, err := run(t, dir, "contact", "list", "--search", "bru")
		require.NoError(t, err)
		assert.Contains(t, res.out, brunoID)
		assert.NotContains(t, res.out, anaID)
	})

	t.Run("show prints the profile", func(t *testing.T) {
		res, err := run(t, dir, "contact", "show", anaID)
		require.NoError(t, err)
		assert.Contains(t, res.out, `"name": "Ana"`)
		assert.Contains(t, res.out, `"música"`)
		assert.Contains(t, res.out, `"verbalCommunication": "frases curtas"`)
	})

	t.Run("update changes only given fields", func(t *testing.T) {
		res, err := run(t, dir, "contact", "update", "--name", "Ana Clara", anaID)
		require.NoError(t, err)
		assert.Contains(t, res.errOut, "Contato atualizado")

		res, err = run(t, dir, "contact", "show", anaID)
		require.NoError(t, err)
		assert.Contains(t, res.out, `"name": "Ana Clara"`)
		assert.Contains(t, res.out, `"age": 12`)
	})

	t.Run("update without fields fails", func(t *testing.T) {
		_, err := run(t, dir, "contact", "update", anaID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nothing to update")
	})

	t.Run("update unknown contact fails", func(t *testing.T) {
		_, err := run(t, dir, "contact", "update", "--age", "13", "missing")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("delete removes the contact", func(t *testing.T) {
		res, err := run(t, dir, "contact", "delete", brunoID)
		require.NoError(t, err)
		assert.Contains(t, res.errOut, "Contato removido")

		_, err = run(t, dir, "contact", "show", brunoID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("show requires an id", func(t *testing.T) {
		_, err := run(t, dir, "contact", "show")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "usage")
	})
}

func TestContactUpdate_KeepsOtherSubFields(t *testing.T) {
	dir := t.TempDir()
	id := addContact(t, dir, "Ana",
		"--verbal", "frases curtas",
		"--symbols", "PECS",
		"--locomotion", "independente",
		"--motor", "coordenação fina",
	)

	_, err := run(t, dir, "contact", "update", "--verbal", "fluente", id)
	require.NoError(t, err)
	_, err = run(t, dir, "contact", "update", "--motor", "nenhuma", id)
	require.NoError(t, err)

	res, err := run(t, dir, "contact", "show", id)
	require.NoError(t, err)
	assert.Contains(t, res.out, `"verbalCommunication": "fluente"`)
	assert.Contains(t, res.out, `"symbolsUse": "PECS"`)
	assert.Contains(t, res.out, `"locomotionCapacity": "independente"`)
	assert.Contains(t, res.out, `"specificMotorDifficulties": "nenhuma"`)

	t.Run("clearing the last field drops the sub-record", func(t *testing.T) {
		_, err := run(t, dir, "contact", "update", "--verbal", "", "--symbols", "", id)
		require.NoError(t, err)

		res, err := run(t, dir, "contact", "show", id)
		require.NoError(t, err)
		assert.NotContains(t, res.out, `"communication"`)
		assert.Contains(t, res.out, `"mobility"`)
	})
}

func TestContactAvatar(t *testing.T) {
	dir := t.TempDir()
	id := addContact(t, dir, "Ana")

	img := filepath.Join(t.TempDir(), "ana.png")
	require.NoError(t, os.WriteFile(img, pngHeader, 0o600))

	res, err := run(t, dir, "contact", "avatar", id, img)
	require.NoError(t, err)
	assert.Contains(t, res.errOut, "Avatar atualizado")

	res, err = run(t, dir, "contact", "show", id)
	require.NoError(t, err)
	assert.Contains(t, res.out, `"avatar": "data:image/png;base64,`)
}

func TestNotes(t *testing.T) {
	dir := t.TempDir()
	id := addContact(t, dir, "Ana")

	_, err := run(t, dir, "note", "add", "--activity", "meal", id, "Comeu", "bem")
	require.NoError(t, err)

	res, err := run(t, dir, "note", "list", id)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(res.out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Registro de Ana criado")
	assert.Contains(t, lines[0], "sistema")
	assert.Contains(t, lines[1], "Comeu bem")
	assert.Contains(t, lines[1], "meal")
	assert.Contains(t, lines[1], "cuidador")

	res, err = run(t, dir, "note", "list", "--activity", "meal", id)
	require.NoError(t, err)
	assert.NotContains(t, res.out, "Registro de Ana criado")

	t.Run("unknown contact", func(t *testing.T) {
		_, err := run(t, dir, "note", "add", "missing", "oi")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("invalid activity", func(t *testing.T) {
		_, err := run(t, dir, "note", "add", "--activity", "party", id, "oi")
		assert.ErrorIs(t, err, core.ErrInvalidActivityType)
	})
}

func TestMedia(t *testing.T) {
	dir := t.TempDir()
	id := addContact(t, dir, "Ana")

	img := filepath.Join(t.TempDir(), "passeio.png")
	require.NoError(t, os.WriteFile(img, pngHeader, 0o600))

	res, err := run(t, dir, "media", "add", "--activity", "leisure", id, img)
	require.NoError(t, err)
	assert.Contains(t, res.errOut, "Mídia enviada")

	res, err = run(t, dir, "media", "list", id)
	require.NoError(t, err)
	assert.Contains(t, res.out, "passeio.png")
	assert.Contains(t, res.out, "image")

	res, err = run(t, dir, "media", "list", "--kind", "video", id)
	require.NoError(t, err)
	assert.Empty(t, strings.TrimSpace(res.out))

	t.Run("kind mismatch", func(t *testing.T) {
		_, err := run(t, dir, "media", "add", "--kind", "audio", id, img)
		require.Error(t, err)
	})

	t.Run("invalid kind", func(t *testing.T) {
		_, err := run(t, dir, "media", "list", "--kind", "document", id)
		assert.ErrorIs(t, err, core.ErrInvalidMediaKind)
	})
}

func TestUnknownStore(t *testing.T) {
	app := newApp()
	app.Writer = &bytes.Buffer{}
	app.ErrWriter = &bytes.Buffer{}
	err := app.Run([]string{"caretrack", "--store", "sqlite", "contact", "list"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestSetupLogger(t *testing.T) {
	t.Run("valid log levels", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected slog.Level
		}{
			{"debug", slog.LevelDebug},
			{"info", slog.LevelInfo},
			{"warn", slog.LevelWarn},
			{"error", slog.LevelError},
		}

		for _, tc := range testCases {
			t.Run(tc.input, func(t *testing.T) {
				app := &cli.App{
					Name: "test",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:  "log-level",
							Value: tc.input,
						},
					},
					Before: setupLogger,
					Action: func(c *cli.Context) error {
						return nil
					},
				}

				err := app.Run([]string{"test", "--log-level", tc.input})
				require.NoError(t, err)
				assert.True(t, slog.Default().Enabled(t.Context(), tc.expected))
			})
		}
	})

	t.Run("case insensitive log levels", func(t *testing.T) {
		for _, tc := range []string{"DEBUG", "Info", "WaRn", "ERROR"} {
			t.Run(tc, func(t *testing.T) {
				app := &cli.App{
					Name: "test",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:  "log-level",
							Value: "info",
						},
					},
					Before: setupLogger,
					Action: func(c *cli.Context) error {
						return nil
					},
				}

				err := app.Run([]string{"test", "--log-level", tc})
				require.NoError(t, err)
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		app := &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "log-level",
					Value: "info",
				},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error {
				return nil
			},
		}

		err := app.Run([]string{"test", "--log-level", "invalid"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}
