package contacts

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/poiesic/caretrack/core"
	"github.com/poiesic/caretrack/notify"
	"github.com/poiesic/caretrack/storage"
)

// Repository is the in-process authority over contacts, their
// conversations and the selected contact.
//
// State is loaded once from the store when the repository is opened. Every
// mutation writes the full affected collections back through the storage
// binding. Write failures are logged by the binding and otherwise ignored:
// the in-memory state keeps the update and storage catches up on the next
// successful write of the same key.
//
// Operations are serialized; each one runs to completion before the next
// starts. Values returned are copies and never alias repository state.
type Repository struct {
	mu            sync.Mutex
	contacts      []core.Contact
	conversations []core.Conversation
	selectedID    string
	lastTime      time.Time
	closed        bool

	contactStore      *storage.Binding[[]core.Contact]
	conversationStore *storage.Binding[[]core.Conversation]

	notifier notify.Notifier
	clock    func() time.Time
	newID    func() string
	logger   *slog.Logger
}

// Open loads contacts and conversations from store and returns a
// repository over them. Unreadable collections start out empty.
func Open(ctx context.Context, store storage.KeyValueStore, opts ...Option) (*Repository, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}

	r := &Repository{
		notifier: notify.Discard,
		clock:    func() time.Time { return time.Now().UTC() },
		newID:    core.NewID,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.contactStore = storage.NewBinding[[]core.Contact](store, r.logger)
	r.conversationStore = storage.NewBinding[[]core.Conversation](store, r.logger)

	r.contacts = r.contactStore.Load(ctx, storage.ContactsKey, []core.Contact{})
	if r.contacts == nil {
		r.contacts = []core.Contact{}
	}
	r.conversations = r.conversationStore.Load(ctx, storage.ConversationsKey, []core.Conversation{})
	if r.conversations == nil {
		r.conversations = []core.Conversation{}
	}

	r.logger.Debug("contacts repository opened",
		"contacts", len(r.contacts),
		"conversations", len(r.conversations))
	return r, nil
}

// Close ends the repository's lifetime. Any later call panics with
// ErrRepositoryClosed. Close does not close the underlying store.
func (r *Repository) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
}

// lock acquires the repository and enforces its lifetime.
func (r *Repository) lock() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		panic(ErrRepositoryClosed)
	}
}

// now returns the current time, never earlier than a previously returned one.
func (r *Repository) now() time.Time {
	t := r.clock()
	if t.Before(r.lastTime) {
		t = r.lastTime
	}
	r.lastTime = t
	return t
}

// AddContact creates a contact with a fresh ID, opens its conversation with
// a system welcome message and selects it. Duplicate names are allowed.
func (r *Repository) AddContact(in core.NewContact) core.Contact {
	r.lock()

	now := r.now()
	contact := in.Contact(r.newID())
	contact.LastMessageTime = &now
	r.contacts = append(r.contacts, contact)

	welcome := core.Message{
		ID:           r.newID(),
		ContactID:    contact.ID,
		Content:      welcomeMessage(contact.Name),
		Timestamp:    now,
		IsUser:       false,
		ActivityType: core.ActivityGeneral,
	}
	r.conversations = append(r.conversations, core.Conversation{
		ContactID: contact.ID,
		Messages:  []core.Message{welcome},
	})
	r.selectedID = contact.ID

	r.persistContacts()
	r.persistConversations()
	out := contact.Clone()
	r.mu.Unlock()

	r.logger.Debug("contact added", "id", out.ID)
	r.notifier.Notify(notify.ContactAdded(out.Name))
	return out
}

// UpdateContact applies patch to the contact with the given ID. It reports
// false and changes nothing when no such contact exists.
func (r *Repository) UpdateContact(id string, patch core.ContactPatch) (core.Contact, bool) {
	r.lock()

	i := r.contactIndex(id)
	if i < 0 {
		r.mu.Unlock()
		return core.Contact{}, false
	}
	patch.Apply(&r.contacts[i])

	r.persistContacts()
	out := r.contacts[i].Clone()
	r.mu.Unlock()

	r.notifier.Notify(notify.ContactUpdated())
	return out, true
}

// UpdateAvatar replaces the avatar of the contact with the given ID. It
// reports false when no such contact exists.
func (r *Repository) UpdateAvatar(id string, image string) bool {
	r.lock()

	i := r.contactIndex(id)
	if i < 0 {
		r.mu.Unlock()
		return false
	}
	r.contacts[i].Avatar = image

	r.persistContacts()
	r.mu.Unlock()

	r.notifier.Notify(notify.AvatarUpdated())
	return true
}

// DeleteContact removes a contact together with its conversation and
// clears the selection if it pointed at the contact. It reports false,
// without notifying, when no such contact exists.
func (r *Repository) DeleteContact(id string) bool {
	r.lock()

	i := r.contactIndex(id)
	if i < 0 {
		r.mu.Unlock()
		return false
	}
	name := r.contacts[i].Name

	r.contacts = slices.Delete(r.contacts, i, i+1)
	r.conversations = slices.DeleteFunc(r.conversations, func(c core.Conversation) bool {
		return c.ContactID == id
	})
	if r.selectedID == id {
		r.selectedID = ""
	}

	r.persistContacts()
	r.persistConversations()
	r.mu.Unlock()

	r.logger.Debug("contact deleted", "id", id)
	r.notifier.Notify(notify.ContactDeleted(name))
	return true
}

// SelectContact points the selection at id. The ID is not checked against
// the stored contacts. An empty id clears the selection.
func (r *Repository) SelectContact(id string) {
	r.lock()
	defer r.mu.Unlock()
	r.selectedID = id
}

// ClearSelection clears the selected contact.
func (r *Repository) ClearSelection() {
	r.SelectContact("")
}

// SelectedContactID returns the selected contact ID, if any.
func (r *Repository) SelectedContactID() (string, bool) {
	r.lock()
	defer r.mu.Unlock()
	return r.selectedID, r.selectedID != ""
}

// AddMessage appends a message to the conversation of contactID, creating
// the conversation if needed, and bumps the contact's last activity time.
// The contact itself is not required to exist. An empty activity type is
// recorded as general.
func (r *Repository) AddMessage(contactID, content string, isUser bool, attachments []core.MediaAttachment, activity core.ActivityType) core.Message {
	r.lock()
	msg := r.addMessageLocked(contactID, content, isUser, attachments, activity)
	r.mu.Unlock()
	return msg
}

func (r *Repository) addMessageLocked(contactID, content string, isUser bool, attachments []core.MediaAttachment, activity core.ActivityType) core.Message {
	if activity == "" {
		activity = core.ActivityGeneral
	}

	now := r.now()
	msg := core.Message{
		ID:           r.newID(),
		ContactID:    contactID,
		Content:      content,
		Timestamp:    now,
		IsUser:       isUser,
		ActivityType: activity,
	}
	if len(attachments) > 0 {
		msg.MediaAttachments = slices.Clone(attachments)
	}

	ci, _ := r.ensureConversationLocked(contactID)
	r.conversations[ci].Messages = append(r.conversations[ci].Messages, msg)

	if i := r.contactIndex(contactID); i >= 0 {
		r.contacts[i].LastMessageTime = &now
	}

	r.persistConversations()
	r.persistContacts()
	return msg.Clone()
}

// EnsureConversation returns the conversation of contactID, creating and
// persisting an empty one if none exists.
func (r *Repository) EnsureConversation(contactID string) core.Conversation {
	r.lock()
	defer r.mu.Unlock()

	i, created := r.ensureConversationLocked(contactID)
	if created {
		r.persistConversations()
	}
	return r.conversations[i].Clone()
}

// ensureConversationLocked returns the index of the conversation of
// contactID and whether it had to be created. The caller persists.
func (r *Repository) ensureConversationLocked(contactID string) (int, bool) {
	if i := r.conversationIndex(contactID); i >= 0 {
		return i, false
	}
	r.logger.Debug("creating missing conversation", "contact", contactID)
	r.conversations = append(r.conversations, core.Conversation{
		ContactID: contactID,
		Messages:  []core.Message{},
	})
	return len(r.conversations) - 1, true
}

// AddMediaAttachment records a caregiver message carrying a single media
// item. The message text is derived from the media kind.
func (r *Repository) AddMediaAttachment(contactID string, kind core.MediaKind, url, name string, activity core.ActivityType) core.Message {
	r.lock()

	attachment := core.MediaAttachment{
		ID:        r.newID(),
		Type:      kind,
		URL:       url,
		Name:      name,
		Timestamp: r.now(),
	}
	msg := r.addMessageLocked(contactID, mediaMessage(kind), true, []core.MediaAttachment{attachment}, activity)
	r.mu.Unlock()

	r.notifier.Notify(notify.MediaSent(kind))
	return msg
}

// GetContactByID returns the contact with the given ID.
func (r *Repository) GetContactByID(id string) (core.Contact, bool) {
	r.lock()
	defer r.mu.Unlock()

	i := r.contactIndex(id)
	if i < 0 {
		return core.Contact{}, false
	}
	return r.contacts[i].Clone(), true
}

// GetConversationByContactID returns the conversation of a contact.
func (r *Repository) GetConversationByContactID(contactID string) (core.Conversation, bool) {
	r.lock()
	defer r.mu.Unlock()

	i := r.conversationIndex(contactID)
	if i < 0 {
		return core.Conversation{}, false
	}
	return r.conversations[i].Clone(), true
}

// GetMediaAttachments returns every media item of a contact's
// conversation, in message order and then in per-message order. The
// result is empty, never nil, when there is nothing to return.
func (r *Repository) GetMediaAttachments(contactID string) []core.MediaAttachment {
	r.lock()
	defer r.mu.Unlock()

	out := []core.MediaAttachment{}
	i := r.conversationIndex(contactID)
	if i < 0 {
		return out
	}
	for _, msg := range r.conversations[i].Messages {
		out = append(out, msg.MediaAttachments...)
	}
	return out
}

// Contacts returns all contacts in insertion order.
func (r *Repository) Contacts() []core.Contact {
	r.lock()
	defer r.mu.Unlock()

	out := make([]core.Contact, len(r.contacts))
	for i, c := range r.contacts {
		out[i] = c.Clone()
	}
	return out
}

// Conversations returns all conversations in insertion order.
func (r *Repository) Conversations() []core.Conversation {
	r.lock()
	defer r.mu.Unlock()

	out := make([]core.Conversation, len(r.conversations))
	for i, c := range r.conversations {
		out[i] = c.Clone()
	}
	return out
}

// SortedContacts returns the contacts matching query in display order.
// See core.FilterContacts and core.SortContacts.
func (r *Repository) SortedContacts(query string) []core.Contact {
	return core.SortContacts(core.FilterContacts(r.Contacts(), query))
}

func (r *Repository) contactIndex(id string) int {
	return slices.IndexFunc(r.contacts, func(c core.Contact) bool {
		return c.ID == id
	})
}

func (r *Repository) conversationIndex(contactID string) int {
	return slices.IndexFunc(r.conversations, func(c core.Conversation) bool {
		return c.ContactID == contactID
	})
}

// persistContacts writes the contact collection. Errors are logged by the
// binding; memory stays authoritative.
func (r *Repository) persistContacts() {
	_ = r.contactStore.Save(context.Background(), storage.ContactsKey, r.contacts)
}

// persistConversations writes the conversation collection.
func (r *Repository) persistConversations() {
	_ = r.conversationStore.Save(context.Background(), storage.ConversationsKey, r.conversations)
}

func welcomeMessage(name string) string {
	return fmt.Sprintf("Registro de %s criado. Use este espaço para acompanhar o dia a dia.", name)
}

func mediaMessage(kind core.MediaKind) string {
	switch kind {
	case core.MediaImage:
		return "Imagem enviada"
	case core.MediaVideo:
		return "Vídeo enviado"
	case core.MediaAudio:
		return "Áudio enviado"
	}
	return "Arquivo enviado"
}
