//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
)

// Lifecycle statuses used by blog posts, careers and sections.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
	StatusOpen      = "open"
	StatusClosed    = "closed"
)

// Message statuses.
const (
	MessageStatusUnread    = "unread"
	MessageStatusRead      = "read"
	MessageStatusResponded = "responded"
	MessageStatusArchived  = "archived"
)

// Status is a lifecycle status that the API encodes either as a string
// ("draft", "published", ...) or as a numeric active flag (0/1).
type Status struct {
	Value   string
	Numeric bool
}

// StringStatus builds a textual status.
func StringStatus(v string) Status { return Status{Value: v} }

// FlagStatus builds a numeric active-flag status.
func FlagStatus(active bool) Status {
	if active {
		return Status{Value: "1", Numeric: true}
	}
	return Status{Value: "0", Numeric: true}
}

// Active reports whether a numeric flag is set, or a textual status is published/open.
func (s Status) Active() bool {
	if s.Numeric {
		return s.Value != "0" && s.Value != ""
	}
	return s.Value == StatusPublished || s.Value == StatusOpen
}

func (s Status) String() string { return s.Value }

// MarshalJSON writes numbers for numeric flags and strings otherwise.
func (s Status) MarshalJSON() ([]byte, error) {
	if s.Numeric {
		if _, err := strconv.ParseInt(s.Value, 10, 64); err == nil {
			return []byte(s.Value), nil
		}
	}
	return json.Marshal(s.Value)
}

// UnmarshalJSON accepts a string, a number, a boolean or null.
func (s *Status) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*s = Status{}
		return nil
	case b[0] == '"':
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = Status{Value: v}
		return nil
	case bytes.Equal(b, []byte("true")):
		*s = FlagStatus(true)
		return nil
	case bytes.Equal(b, []byte("false")):
		*s = FlagStatus(false)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return errors.New("status must be a string or number")
	}
	*s = Status{Value: n.String(), Numeric: true}
	return nil
}
