package core

import (
	"slices"
	"strings"
	"time"
)

// SortContacts returns the contacts in display order: most recent activity
// first. When either of two compared contacts has no LastMessageTime they
// are ordered by name, ignoring case. The input slice is not modified.
func SortContacts(contacts []Contact) []Contact {
	out := slices.Clone(contacts)
	slices.SortStableFunc(out, compareContacts)
	return out
}

func compareContacts(a, b Contact) int {
	if a.LastMessageTime != nil && b.LastMessageTime != nil {
		// Descending by activity time
		return b.LastMessageTime.Compare(*a.LastMessageTime)
	}
	return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
}

// FilterContacts returns the contacts whose name, intellectual disability
// or diagnostic code contains query, ignoring case. A blank query matches
// every contact.
func FilterContacts(contacts []Contact, query string) []Contact {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return slices.Clone(contacts)
	}

	var out []Contact
	for _, c := range contacts {
		if strings.Contains(strings.ToLower(c.Name), query) ||
			strings.Contains(strings.ToLower(c.IntellectualDisability), query) ||
			strings.Contains(strings.ToLower(c.CID), query) {
			out = append(out, c)
		}
	}
	return out
}

// FilterMediaByKind returns the attachments of the given kind in their
// original order. An empty kind returns every attachment.
func FilterMediaByKind(items []MediaAttachment, kind MediaKind) []MediaAttachment {
	if kind == "" {
		return slices.Clone(items)
	}
	var out []MediaAttachment
	for _, item := range items {
		if item.Type == kind {
			out = append(out, item)
		}
	}
	return out
}

// MediaDay is the set of attachments sent on one calendar day.
type MediaDay struct {
	Day   time.Time // midnight of the day in the grouping location
	Items []MediaAttachment
}

// GroupMediaByDay groups attachments by the calendar day of their
// timestamp in loc (UTC when nil). Days are ordered newest first; the
// attachments of a day keep their original order.
func GroupMediaByDay(items []MediaAttachment, loc *time.Location) []MediaDay {
	if loc == nil {
		loc = time.UTC
	}

	var days []MediaDay
	index := make(map[string]int)
	for _, item := range items {
		t := item.Timestamp.In(loc)
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
		key := day.Format(time.DateOnly)
		i, ok := index[key]
		if !ok {
			i = len(days)
			index[key] = i
			days = append(days, MediaDay{Day: day})
		}
		days[i].Items = append(days[i].Items, item)
	}

	slices.SortStableFunc(days, func(a, b MediaDay) int {
		return b.Day.Compare(a.Day)
	})
	return days
}
