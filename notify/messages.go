package notify

import (
	"fmt"

	"github.com/poiesic/caretrack/core"
)

// ContactAdded reports a new contact.
func ContactAdded(name string) Notification {
	return Notification{
		Kind:        KindContactAdded,
		Title:       "Contato adicionado",
		Description: fmt.Sprintf("%s foi adicionado à sua lista de contatos.", name),
	}
}

// ContactUpdated reports an edited profile.
func ContactUpdated() Notification {
	return Notification{
		Kind:        KindContactUpdated,
		Title:       "Contato atualizado",
		Description: "As informações do contato foram atualizadas.",
	}
}

// AvatarUpdated reports a new profile picture.
func AvatarUpdated() Notification {
	return Notification{
		Kind:        KindAvatarUpdated,
		Title:       "Avatar atualizado",
		Description: "A foto do contato foi atualizada.",
	}
}

// ContactDeleted reports a removed contact.
func ContactDeleted(name string) Notification {
	return Notification{
		Kind:        KindContactDeleted,
		Title:       "Contato removido",
		Description: fmt.Sprintf("%s foi removido da sua lista de contatos.", name),
		Destructive: true,
	}
}

// MediaSent reports a media entry added to a timeline.
func MediaSent(kind core.MediaKind) Notification {
	return Notification{
		Kind:        KindMediaSent,
		Title:       "Mídia enviada",
		Description: mediaAddedText(kind),
	}
}

func mediaAddedText(kind core.MediaKind) string {
	switch kind {
	case core.MediaImage:
		return "Imagem adicionada ao registro."
	case core.MediaVideo:
		return "Vídeo adicionado ao registro."
	case core.MediaAudio:
		return "Áudio adicionado ao registro."
	}
	return "Arquivo adicionado ao registro."
}
