// Package memo owns the memo and folder collections and every mutation on
// them. It has no knowledge of navigation or rendering.
package memo

import (
	"encoding/json"
	"strings"
	"time"
)

// Memo is a single user-authored text note.
type Memo struct {
	ID        string
	Text      string
	FolderID  string // empty when unfiled
	CreatedAt time.Time
	UpdatedAt time.Time
}

// memoJSON is the persisted shape; folderId is null when unfiled.
type memoJSON struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	FolderID  *string    `json:"folderId"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// MarshalJSON encodes an unfiled memo with "folderId": null.
func (m Memo) MarshalJSON() ([]byte, error) {
	out := memoJSON{ID: m.ID, Text: m.Text, UpdatedAt: m.UpdatedAt}
	if m.FolderID != "" {
		id := m.FolderID
		out.FolderID = &id
	}
	if !m.CreatedAt.IsZero() {
		created := m.CreatedAt
		out.CreatedAt = &created
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts null, missing or empty folderId as unfiled and a
// missing createdAt as absent.
func (m *Memo) UnmarshalJSON(data []byte) error {
	var in memoJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*m = Memo{ID: in.ID, Text: in.Text, UpdatedAt: in.UpdatedAt}
	if in.FolderID != nil {
		m.FolderID = *in.FolderID
	}
	if in.CreatedAt != nil {
		m.CreatedAt = *in.CreatedAt
	}
	return nil
}

// Created returns CreatedAt, falling back to UpdatedAt for memos persisted
// before creation times were recorded.
func (m Memo) Created() time.Time {
	if m.CreatedAt.IsZero() {
		return m.UpdatedAt
	}
	return m.CreatedAt
}

// IsBlank reports whether the memo has no non-whitespace text.
func (m Memo) IsBlank() bool {
	return strings.TrimSpace(m.Text) == ""
}

// Folder is a named, coloured grouping of memos.
type Folder struct {
	ID        string    `json:"id" validate:"required"`
	Name      string    `json:"name" validate:"required"`
	Color     string    `json:"color" validate:"required,palette"`
	CreatedAt time.Time `json:"createdAt"`
}

// FontSize is the editor text size preference.
type FontSize string

const (
	FontSmall  FontSize = "small"
	FontMedium FontSize = "medium"
	FontLarge  FontSize = "large"
)

// Settings holds process-wide preferences.
type Settings struct {
	FontSize FontSize `json:"fontSize" validate:"oneof=small medium large"`
}

// DefaultSettings returns the settings used when none are persisted.
func DefaultSettings() Settings {
	return Settings{FontSize: FontMedium}
}

// SortOrder selects how lists are ordered.
type SortOrder string

const (
	SortUpdated SortOrder = "updated"
	SortCreated SortOrder = "created"
	SortName    SortOrder = "name"
)

// Next returns the order that follows o in the toggle cycle.
func (o SortOrder) Next() SortOrder {
	switch o {
	case SortUpdated:
		return SortCreated
	case SortCreated:
		return SortName
	default:
		return SortUpdated
	}
}

// Label returns a short display name.
func (o SortOrder) Label() string {
	switch o {
	case SortCreated:
		return "Created"
	case SortName:
		return "Name"
	default:
		return "Updated"
	}
}

// Valid reports whether o is a known sort order.
func (o SortOrder) Valid() bool {
	return o == SortUpdated || o == SortCreated || o == SortName
}

// Palette is the fixed set of folder colours.
var Palette = []string{
	"#FF2D55", "#5856D6", "#007AFF", "#34C759",
	"#FF9500", "#AF52DE", "#FF3B30", "#8E8E93",
}

// NormalizeColor upper-cases a hex colour for palette comparison.
func NormalizeColor(c string) string {
	return strings.ToUpper(strings.TrimSpace(c))
}

// IsPaletteColor reports whether c is one of the Palette colours.
func IsPaletteColor(c string) bool {
	c = NormalizeColor(c)
	for _, p := range Palette {
		if p == c {
			return true
		}
	}
	return false
}

// Data is the complete persisted document model.
type Data struct {
	Memos    []Memo
	Folders  []Folder
	Settings Settings
	Sort     SortOrder
}
