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


package core

import (
	"fmt"
	"strings"
)

// legacyAssistanceLevels maps the labels used by early builds onto the
// canonical levels.
var legacyAssistanceLevels = map[string]AssistanceLevel{
	"low":    AssistanceMild,
	"medium": AssistanceModerate,
	"high":   AssistanceSevere,
}

// ValidateNewContact validates the input of a contact form.
//
// Validation rules:
//   - Name, IntellectualDisability and CID must not be blank
//   - Age must be positive
//   - AssistanceLevel must be one of the canonical levels
//   - every medication must have a name
//
// The repository itself does not call this; it stores what it is given.
func ValidateNewContact(c *NewContact) error {
	if c == nil {
		return fmt.Errorf("%w: contact is nil", ErrInvalidContact)
	}

	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidContact, ErrEmptyName)
	}

	if c.Age <= 0 {
		return fmt.Errorf("%w: %w", ErrInvalidContact, ErrInvalidAge)
	}

	if strings.TrimSpace(c.IntellectualDisability) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidContact, ErrEmptyDisability)
	}

	if strings.TrimSpace(c.CID) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidContact, ErrEmptyCID)
	}

	if err := ValidateAssistanceLevel(c.AssistanceLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidContact, err)
	}

	for i, m := range c.Medications {
		if strings.TrimSpace(m.Name) == "" {
			return fmt.Errorf("%w: %w: entry %d has no name", ErrInvalidContact, ErrInvalidMedication, i)
		}
	}

	return nil
}

// ValidateAssistanceLevel validates that a level is one of the canonical values.
func ValidateAssistanceLevel(level AssistanceLevel) error {
	switch level {
	case AssistanceMild, AssistanceModerate, AssistanceSevere:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidAssistanceLevel, level)
}

// ParseAssistanceLevel parses a canonical or legacy assistance label.
func ParseAssistanceLevel(s string) (AssistanceLevel, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if level, ok := legacyAssistanceLevels[s]; ok {
		return level, nil
	}
	level := AssistanceLevel(s)
	if err := ValidateAssistanceLevel(level); err != nil {
		return "", err
	}
	return level, nil
}

// CanonicalAssistanceLevel maps legacy labels to canonical levels and
// returns anything else unchanged.
func CanonicalAssistanceLevel(level AssistanceLevel) AssistanceLevel {
	if canonical, ok := legacyAssistanceLevels[string(level)]; ok {
		return canonical
	}
	return level
}

// ValidateActivityType validates that an activity type is known.
func ValidateActivityType(activity ActivityType) error {
	for _, known := range ActivityTypes {
		if activity == known {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidActivityType, activity)
}

// ParseActivityType parses an activity label. A blank label means general.
func ParseActivityType(s string) (ActivityType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ActivityGeneral, nil
	}
	activity := ActivityType(s)
	if err := ValidateActivityType(activity); err != nil {
		return "", err
	}
	return activity, nil
}

// ValidateMediaKind validates that a media kind is known.
func ValidateMediaKind(kind MediaKind) error {
	switch kind {
	case MediaImage, MediaVideo, MediaAudio:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidMediaKind, kind)
}
