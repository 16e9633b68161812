package caretrack

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/poiesic/caretrack/config"
	"github.com/poiesic/caretrack/core"
	"github.com/poiesic/caretrack/media"
	"github.com/poiesic/caretrack/notify"
	"github.com/poiesic/caretrack/storage"
	"github.com/poiesic/caretrack/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func badgerConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Badger.Dir = t.TempDir()
	return cfg
}

func openJournal(t *testing.T, cfg *config.Config, opts ...Option) *Journal {
	t.Helper()
	j, err := Open(context.Background(), cfg, opts...)
	require.NoError(t, err)
	require.NotNil(t, j)
	return j
}

func addAna(t *testing.T, j *Journal) core.Contact {
	t.Helper()
	return j.Contacts().AddContact(core.NewContact{
		Name:                   "Ana",
		Age:                    12,
		IntellectualDisability: "TEA",
		AssistanceLevel:        core.AssistanceModerate,
		CID:                    "F84.0",
	})
}

func TestOpen(t *testing.T) {
	t.Run("success with badger directory", func(t *testing.T) {
		j := openJournal(t, badgerConfig(t))
		defer j.Close()

		assert.NotNil(t, j.Contacts())
		assert.NotNil(t, j.Notifications())
		assert.NotNil(t, j.Intake())
		assert.Empty(t, j.Contacts().Contacts())
	})

	t.Run("error with invalid path", func(t *testing.T) {
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		require.NoError(t, os.WriteFile(tmpFile, []byte("test"), 0644))

		cfg := config.Default()
		cfg.Badger.Dir = tmpFile
		j, err := Open(context.Background(), cfg)
		assert.Error(t, err)
		assert.Nil(t, j)
	})

	t.Run("error with invalid config", func(t *testing.T) {
		cfg := config.Default()
		cfg.Backend = "sqlite"
		j, err := Open(context.Background(), cfg)
		assert.ErrorIs(t, err, config.ErrUnknownBackend)
		assert.Nil(t, j)
	})

	t.Run("error with unreachable redis", func(t *testing.T) {
		cfg := config.Default()
		cfg.Backend = config.BackendRedis
		cfg.Redis.Addr = "127.0.0.1:1"

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		j, err := Open(ctx, cfg)
		assert.Error(t, err)
		assert.Nil(t, j)
	})

	t.Run("injected store", func(t *testing.T) {
		backend, err := badger.NewMemoryBackend()
		require.NoError(t, err)

		j := openJournal(t, nil, WithStore(backend))
		defer j.Close()

		data, err := backend.Get(context.Background(), storage.SchemaVersionKey)
		require.NoError(t, err)
		version, err := storage.UnmarshalSchemaVersion(data)
		require.NoError(t, err)
		assert.Equal(t, storage.CurrentSchemaVersion, version)
	})
}

func TestJournal_Reopen(t *testing.T) {
	cfg := badgerConfig(t)

	j := openJournal(t, cfg)
	ana := addAna(t, j)
	j.Contacts().AddMessage(ana.ID, "Dormiu bem", true, nil, core.ActivityGeneral)
	require.NoError(t, j.Close())

	j = openJournal(t, cfg)
	defer j.Close()

	got, ok := j.Contacts().GetContactByID(ana.ID)
	require.True(t, ok)
	assert.Equal(t, "Ana", got.Name)

	conv, ok := j.Contacts().GetConversationByContactID(ana.ID)
	require.True(t, ok)
	require.Len(t, conv.Messages, 2)
	assert.Equal(t, "Dormiu bem", conv.Messages[1].Content)
}

func TestJournal_Notifications(t *testing.T) {
	var mu sync.Mutex
	var seen []notify.Kind
	j := openJournal(t, badgerConfig(t), WithNotifyHook(func(n notify.Notification) {
		mu.Lock()
		seen = append(seen, n.Kind)
		mu.Unlock()
	}))
	defer j.Close()

	addAna(t, j)

	active := j.Notifications().Active()
	require.Len(t, active, 1)
	assert.Equal(t, notify.KindContactAdded, active[0].Kind)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []notify.Kind{notify.KindContactAdded}, seen)
}

func TestSendMediaFile(t *testing.T) {
	j := openJournal(t, badgerConfig(t))
	defer j.Close()
	ana := addAna(t, j)

	path := filepath.Join(t.TempDir(), "passeio.png")
	require.NoError(t, os.WriteFile(path, pngHeader, 0o600))

	msg, err := j.SendMediaFile(context.Background(), ana.ID, path, core.MediaImage, core.ActivityLeisure)
	require.NoError(t, err)
	assert.Equal(t, "Imagem enviada", msg.Content)
	assert.True(t, msg.IsUser)
	assert.Equal(t, core.ActivityLeisure, msg.ActivityType)
	require.Len(t, msg.MediaAttachments, 1)
	assert.Equal(t, "passeio.png", msg.MediaAttachments[0].Name)
	assert.True(t, strings.HasPrefix(msg.MediaAttachments[0].URL, "data:image/png;base64,"))

	items := j.Contacts().GetMediaAttachments(ana.ID)
	assert.Len(t, items, 1)
}

func TestSendMediaFile_DefaultsActivity(t *testing.T) {
	j := openJournal(t, badgerConfig(t))
	defer j.Close()
	ana := addAna(t, j)

	path := filepath.Join(t.TempDir(), "foto.png")
	require.NoError(t, os.WriteFile(path, pngHeader, 0o600))

	msg, err := j.SendMediaFile(context.Background(), ana.ID, path, "", "")
	require.NoError(t, err)
	assert.Equal(t, core.ActivityGeneral, msg.ActivityType)
	assert.Equal(t, core.MediaImage, msg.MediaAttachments[0].Type)
}

func TestSendMediaFile_Rejected(t *testing.T) {
	cfg := badgerConfig(t)
	cfg.Media.MaxSize = 4
	j := openJournal(t, cfg)
	defer j.Close()
	ana := addAna(t, j)

	path := filepath.Join(t.TempDir(), "grande.png")
	require.NoError(t, os.WriteFile(path, pngHeader, 0o600))

	_, err := j.SendMediaFile(context.Background(), ana.ID, path, core.MediaImage, core.ActivityGeneral)
	assert.ErrorIs(t, err, media.ErrFileTooLarge)

	conv, ok := j.Contacts().GetConversationByContactID(ana.ID)
	require.True(t, ok)
	assert.Len(t, conv.Messages, 1)
}

func TestSendMediaFile_InvalidInput(t *testing.T) {
	j := openJournal(t, badgerConfig(t))
	defer j.Close()

	_, err := j.SendMediaFile(context.Background(), "c1", "x.png", "document", core.ActivityGeneral)
	assert.ErrorIs(t, err, core.ErrInvalidMediaKind)

	_, err = j.SendMediaFile(context.Background(), "c1", "x.png", core.MediaImage, "party")
	assert.ErrorIs(t, err, core.ErrInvalidActivityType)
}

func TestSetAvatarFile(t *testing.T) {
	j := openJournal(t, badgerConfig(t))
	defer j.Close()
	ana := addAna(t, j)

	path := filepath.Join(t.TempDir(), "avatar.png")
	require.NoError(t, os.WriteFile(path, pngHeader, 0o600))

	ok, err := j.SetAvatarFile(ana.ID, path)
	require.NoError(t, err)
	assert.True(t, ok)

	got, _ := j.Contacts().GetContactByID(ana.ID)
	assert.True(t, strings.HasPrefix(got.Avatar, "data:image/png;base64,"))

	ok, err = j.SetAvatarFile("missing", path)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestJournal_Close(t *testing.T) {
	j := openJournal(t, badgerConfig(t))
	assert.NoError(t, j.Close())
	assert.Panics(t, func() { j.Contacts().Contacts() })
}
