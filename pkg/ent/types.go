package ent

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Folder is a system mailbox folder.
type Folder string

// System folders.
const (
	FolderInbox  Folder = "Inbox"
	FolderSent   Folder = "Sent"
	FolderDrafts Folder = "Drafts"
	FolderTrash  Folder = "Trash"
)

// Folders lists every valid system folder.
func Folders() []Folder {
	return []Folder{FolderInbox, FolderSent, FolderDrafts, FolderTrash}
}

// Valid reports whether f is a system folder.
func (f Folder) Valid() bool {
	switch f {
	case FolderInbox, FolderSent, FolderDrafts, FolderTrash:
		return true
	default:
		return false
	}
}

// ParseFolder matches a folder name case-insensitively.
func ParseFolder(name string) (Folder, error) {
	for _, folder := range Folders() {
		if strings.EqualFold(string(folder), name) {
			return folder, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidFolder, name)
}

// SearchQuery filters the users visible to the current account.
type SearchQuery struct {
	// Classes restricts the search to class ids.
	Classes []string `json:"classes"`
	// Functions restricts the search to function ids.
	Functions []string `json:"functions"`
	Mood      bool     `json:"mood"`
	// Profiles restricts the search to profiles (Student, Teacher, ...).
	Profiles []string `json:"profiles"`
	// Search is the free-text query.
	Search string `json:"search"`
}

// Normalized returns a copy whose list filters are never null on the wire.
func (q *SearchQuery) Normalized() *SearchQuery {
	out := *q

	if out.Classes == nil {
		out.Classes = []string{}
	}

	if out.Functions == nil {
		out.Functions = []string{}
	}

	if out.Profiles == nil {
		out.Profiles = []string{}
	}

	return &out
}

// EncodeFormValue percent-encodes a login form value. Space becomes '+' and
// every character outside [A-Za-z0-9-_.~] is escaped, including ! ' ( ) *
// which the portal's form parser would otherwise treat as syntax.
func EncodeFormValue(value string) string {
	return url.QueryEscape(value)
}

// ParseBirthDate decodes a "YYYY-MM-DD" portal date at midnight UTC.
func ParseBirthDate(value string) (time.Time, error) {
	parts := strings.Split(value, "-")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidBirthDate, value)
	}

	fields := make([]int, len(parts))

	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidBirthDate, value)
		}

		fields[i] = n
	}

	return time.Date(fields[0], time.Month(fields[1]), fields[2], 0, 0, 0, 0, time.UTC), nil
}
