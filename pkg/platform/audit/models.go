// Package audit provides the bounded audit log shared by every Pawdesk
// service: an immutable Entry value, a capacity-bounded Manager holding the
// most recent entries per category, and a Recorder that wraps business
// operations with start/complete/error events. Keep it transport-agnostic so
// stores and sinks can fan out.
package audit

import (
	"time"

	"github.com/google/uuid"
)

// Category identifies the subsystem an entry originates from. One Manager is
// kept per category; the Registry is the single owner of that mapping.
type Category string

const (
	CategoryWeather  Category = "weather"
	CategorySupplier Category = "supplier"
	CategoryPrinting Category = "printing"
)

// KnownCategories lists the categories wired at startup. The Registry accepts
// others lazily; this is the set the admin surface advertises by default.
var KnownCategories = []Category{
	CategoryWeather,
	CategorySupplier,
	CategoryPrinting,
}

// DetailMessageKey is where free-form text lands in Detail. Details are
// string-keyed string values only; richer typed metadata is not supported.
const DetailMessageKey = "message"

// Entry is one immutable audit record. All fields are set at creation and
// never mutated afterwards; callers of the Manager only ever see copies.
type Entry struct {
	ID        uuid.UUID         `json:"id"`
	Timestamp time.Time         `json:"timestamp"`
	Category  Category          `json:"category"`
	Event     string            `json:"event"`
	Detail    map[string]string `json:"detail,omitempty"`
}

// NewEntry builds an entry with a fresh ID and the current time. A nil detail
// map is kept nil so it serializes as absent rather than "{}".
func NewEntry(category Category, event string, detail map[string]string) Entry {
	return Entry{
		ID:        uuid.New(),
		Timestamp: time.Now().UTC(),
		Category:  category,
		Event:     event,
		Detail:    detail,
	}
}

// Message wraps free-form text into a detail map.
func Message(text string) map[string]string {
	return map[string]string{DetailMessageKey: text}
}
