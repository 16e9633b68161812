// Package notify delivers transient, auto-dismissing notifications.
//
// The contacts repository reports its user-visible events (contact added,
// updated, deleted, avatar changed, media sent) through the Notifier
// interface. Center keeps each notification for a fixed TTL and then drops
// it, which is how a toast behaves in a graphical front end; a host can
// also register a hook to render notifications as they arrive.
package notify
