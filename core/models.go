package core

import (
	"time"
)

// AssistanceLevel classifies how much support a contact needs day to day.
type AssistanceLevel string

const (
	AssistanceMild     AssistanceLevel = "leve"
	AssistanceModerate AssistanceLevel = "moderado"
	AssistanceSevere   AssistanceLevel = "severo"
)

// ActivityType tags the context a timeline entry was recorded in.
type ActivityType string

const (
	ActivityGeneral   ActivityType = "general"
	ActivityTherapy   ActivityType = "therapy"
	ActivitySchool    ActivityType = "school"
	ActivityLeisure   ActivityType = "leisure"
	ActivityMeal      ActivityType = "meal"
	ActivityProgress  ActivityType = "progress"
	ActivityChallenge ActivityType = "challenge"
	ActivityImportant ActivityType = "important"
)

// ActivityTypes lists every activity type in display order.
var ActivityTypes = []ActivityType{
	ActivityGeneral,
	ActivityTherapy,
	ActivitySchool,
	ActivityLeisure,
	ActivityMeal,
	ActivityProgress,
	ActivityChallenge,
	ActivityImportant,
}

// MediaKind identifies the family of an embedded media item.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
	MediaAudio MediaKind = "audio"
)

// Contact is the profile of a tracked person.
type Contact struct {
	ID                     string          `json:"id"`
	Name                   string          `json:"name"`
	Age                    int             `json:"age"`
	IntellectualDisability string          `json:"intellectualDisability"`
	AssistanceLevel        AssistanceLevel `json:"assistanceLevel"`
	CID                    string          `json:"cid"` // ICD diagnostic code
	Stereotypies           []string        `json:"stereotypies"`
	Likes                  []string        `json:"likes"`
	Dislikes               []string        `json:"dislikes"`
	Medications            []Medication    `json:"medications,omitempty"`
	Communication          *Communication  `json:"communication,omitempty"`
	Mobility               *Mobility       `json:"mobility,omitempty"`
	SpecificNeeds          string          `json:"specificNeeds,omitempty"`
	Avatar                 string          `json:"avatar,omitempty"` // data URI
	LastMessageTime        *time.Time      `json:"lastMessageTime,omitempty"`
}

// Communication describes how a contact communicates.
type Communication struct {
	Verbal    string `json:"verbalCommunication,omitempty"`
	NonVerbal string `json:"nonVerbalCommunication,omitempty"`
	Symbols   string `json:"symbolsUse,omitempty"` // PECS, communication boards
}

// Mobility describes a contact's motor capacity.
type Mobility struct {
	Locomotion        string `json:"locomotionCapacity,omitempty"`
	MotorDifficulties string `json:"specificMotorDifficulties,omitempty"`
}

// Medication is an entry in a contact's medication list.
type Medication struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Dosage    string   `json:"dosage"`
	Frequency string   `json:"frequency"` // informally, hours between doses
	Effects   []string `json:"effects"`
}

// Conversation is the timeline of one contact, keyed by the contact ID.
// Messages are kept in insertion order, which is also chronological order.
type Conversation struct {
	ContactID string    `json:"contactId"`
	Messages  []Message `json:"messages"`
}

// Message is one timeline entry.
type Message struct {
	ID               string            `json:"id"`
	ContactID        string            `json:"contactId"`
	Content          string            `json:"content"`
	Timestamp        time.Time         `json:"timestamp"`
	IsUser           bool              `json:"isUser"` // false for system-authored entries
	MediaAttachments []MediaAttachment `json:"mediaAttachments,omitempty"`
	ActivityType     ActivityType      `json:"activityType"`
}

// MediaAttachment is one embedded media item carried by a Message.
type MediaAttachment struct {
	ID        string    `json:"id"`
	Type      MediaKind `json:"type"`
	URL       string    `json:"url"` // data URI or object URL
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
}

// NewContact holds the fields supplied when a contact is created.
// The repository assigns the ID and the last activity time.
type NewContact struct {
	Name                   string
	Age                    int
	IntellectualDisability string
	AssistanceLevel        AssistanceLevel
	CID                    string
	Stereotypies           []string
	Likes                  []string
	Dislikes               []string
	Medications            []Medication
	Communication          *Communication
	Mobility               *Mobility
	SpecificNeeds          string
	Avatar                 string
}

// Contact builds a Contact from the input with the given ID.
func (n NewContact) Contact(id string) Contact {
	return Contact{
		ID:                     id,
		Name:                   n.Name,
		Age:                    n.Age,
		IntellectualDisability: n.IntellectualDisability,
		AssistanceLevel:        n.AssistanceLevel,
		CID:                    n.CID,
		Stereotypies:           cloneStrings(n.Stereotypies),
		Likes:                  cloneStrings(n.Likes),
		Dislikes:               cloneStrings(n.Dislikes),
		Medications:            cloneMedications(n.Medications),
		Communication:          n.Communication.Clone(),
		Mobility:               n.Mobility.Clone(),
		SpecificNeeds:          n.SpecificNeeds,
		Avatar:                 n.Avatar,
	}
}

// Clone returns a deep copy of the contact.
func (c Contact) Clone() Contact {
	out := c
	out.Stereotypies = cloneStrings(c.Stereotypies)
	out.Likes = cloneStrings(c.Likes)
	out.Dislikes = cloneStrings(c.Dislikes)
	out.Medications = cloneMedications(c.Medications)
	out.Communication = c.Communication.Clone()
	out.Mobility = c.Mobility.Clone()
	if c.LastMessageTime != nil {
		t := *c.LastMessageTime
		out.LastMessageTime = &t
	}
	return out
}

// Clone returns a copy of the record, nil for nil.
func (c *Communication) Clone() *Communication {
	if c == nil {
		return nil
	}
	out := *c
	return &out
}

// Clone returns a copy of the record, nil for nil.
func (m *Mobility) Clone() *Mobility {
	if m == nil {
		return nil
	}
	out := *m
	return &out
}

// Clone returns a deep copy of the medication.
func (m Medication) Clone() Medication {
	out := m
	out.Effects = cloneStrings(m.Effects)
	return out
}

// Clone returns a deep copy of the conversation.
func (c Conversation) Clone() Conversation {
	out := c
	if c.Messages != nil {
		out.Messages = make([]Message, len(c.Messages))
		for i, m := range c.Messages {
			out.Messages[i] = m.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the message.
func (m Message) Clone() Message {
	out := m
	if m.MediaAttachments != nil {
		out.MediaAttachments = make([]MediaAttachment, len(m.MediaAttachments))
		copy(out.MediaAttachments, m.MediaAttachments)
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneMedications(in []Medication) []Medication {
	if in == nil {
		return nil
	}
	out := make([]Medication, len(in))
	for i, m := range in {
		out[i] = m.Clone()
	}
	return out
}
