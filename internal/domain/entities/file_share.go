package entities

import "time"

// AccessLevel is a bit-flag set attached to a share. It is advisory
// metadata returned on redemption; enforcement at the point of use is
// the caller's responsibility.
type AccessLevel int

const (
	AccessNone    AccessLevel = 0
	AccessView    AccessLevel = 1
	AccessComment AccessLevel = 2
	AccessEdit    AccessLevel = 4
)

// Has reports whether the level includes the given flag.
func (a AccessLevel) Has(flag AccessLevel) bool {
	return a&flag != 0
}

// FileShare binds an opaque bearer token to a file or folder target
// with an access level and optional expiry. Records are immutable once
// created; expiry is checked lazily at redemption time.
type FileShare struct {
	ID             string      `json:"id"`
	FileID         *string     `json:"fileId,omitempty"`
	FolderID       *string     `json:"folderId,omitempty"`
	OwnerID        string      `json:"ownerId"`
	SharedToUserID string      `json:"sharedToUserId,omitempty"`
	SharedToEmail  string      `json:"sharedToEmail,omitempty"`
	AccessLevel    AccessLevel `json:"accessLevel"`
	ExpirationDate *time.Time  `json:"expirationDate,omitempty"`
	Token          string      `json:"-"`
	Audit
}

// Expired reports whether the share has lapsed as of now.
func (s *FileShare) Expired(now time.Time) bool {
	return s.ExpirationDate != nil && s.ExpirationDate.Before(now)
}
