package notify

import (
	"testing"
	"time"

	"github.com/poiesic/caretrack/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCenter_NotifyAndActive(t *testing.T) {
	c := NewCenter()

	c.Notify(ContactAdded("Ana"))
	c.Notify(ContactUpdated())
	c.Notify(MediaSent(core.MediaImage))

	active := c.Active()
	require.Len(t, active, 3)
	assert.Equal(t, KindContactAdded, active[0].Kind)
	assert.Equal(t, KindContactUpdated, active[1].Kind)
	assert.Equal(t, KindMediaSent, active[2].Kind)

	for _, n := range active {
		assert.NotEmpty(t, n.ID)
		assert.False(t, n.CreatedAt.IsZero())
	}
}

func TestCenter_AutoDismiss(t *testing.T) {
	c := NewCenter(WithTTL(50 * time.Millisecond))

	c.Notify(ContactDeleted("Ana"))
	require.Len(t, c.Active(), 1)

	assert.Eventually(t, func() bool {
		return len(c.Active()) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestCenter_Dismiss(t *testing.T) {
	c := NewCenter()
	c.Notify(Notification{ID: "n1", Kind: KindAvatarUpdated})
	c.Notify(Notification{ID: "n2", Kind: KindContactUpdated})

	c.Dismiss("n1")
	active := c.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "n2", active[0].ID)

	c.Clear()
	assert.Empty(t, c.Active())
}

func TestCenter_Hook(t *testing.T) {
	var seen []Notification
	c := NewCenter(WithHook(func(n Notification) {
		seen = append(seen, n)
	}))

	c.Notify(AvatarUpdated())
	require.Len(t, seen, 1)
	assert.Equal(t, "Avatar atualizado", seen[0].Title)
}

func TestMessages(t *testing.T) {
	added := ContactAdded("Ana")
	assert.Equal(t, "Contato adicionado", added.Title)
	assert.Contains(t, added.Description, "Ana")

	deleted := ContactDeleted("Bruno")
	assert.True(t, deleted.Destructive)
	assert.Contains(t, deleted.Description, "Bruno")

	tests := map[core.MediaKind]string{
		core.MediaImage: "Imagem adicionada ao registro.",
		core.MediaVideo: "Vídeo adicionado ao registro.",
		core.MediaAudio: "Áudio adicionado ao registro.",
		"document":      "Arquivo adicionado ao registro.",
	}
	for kind, want := range tests {
		sent := MediaSent(kind)
		assert.Equal(t, KindMediaSent, sent.Kind)
		assert.Equal(t, want, sent.Description, kind)
	}
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() {
		Discard.Notify(ContactUpdated())
	})
}
