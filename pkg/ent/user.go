package ent

import (
	"context"
	"time"
)

// School is a school membership of a user.
type School struct {
	Classes []string `json:"classes" yaml:"classes"`
	Name    string   `json:"name"    yaml:"name"`
	ID      string   `json:"id"      yaml:"id"`
}

// Hobby is a profile interest.
type Hobby struct {
	Visibility string `json:"visibility" yaml:"visibility"`
	Category   string `json:"category"   yaml:"category"`
	Values     string `json:"values"     yaml:"values"`
}

// User is a full user profile.
type User struct {
	ID          string   `json:"id"          yaml:"id"`
	Login       string   `json:"login"       yaml:"login"`
	DisplayName string   `json:"displayName" yaml:"displayName"`
	Type        []string `json:"type"        yaml:"type"`
	Schools     []School `json:"schools"     yaml:"schools"`
	Motto       string   `json:"motto"       yaml:"motto"`
	Mood        string   `json:"mood"        yaml:"mood"`
	Health      string   `json:"health"      yaml:"health"`
	Address     string   `json:"address"     yaml:"address"`
	Email       string   `json:"email"       yaml:"email"`
	Tel         string   `json:"tel"         yaml:"tel"`
	Mobile      string   `json:"mobile"      yaml:"mobile"`
	Birthdate   string   `json:"birthdate"   yaml:"birthdate"`
	Hobbies     []Hobby  `json:"hobbies"     yaml:"hobbies"`

	session Session
}

// NewUser returns an empty User bound to session, ready to be decoded into.
func NewUser(session Session) *User {
	return &User{session: session}
}

// SendMessage sends a message to this user, in addition to any recipient
// of config, and returns the message id.
func (u *User) SendMessage(ctx context.Context, config *MessageConfig) (string, error) {
	return sendTo(ctx, u.session, u.ID, config)
}

// AvatarURL returns the URL of the user's avatar thumbnail.
func (u *User) AvatarURL() string {
	return u.session.AvatarURL(u.ID)
}

// UserPreview is the reduced profile returned by searches.
type UserPreview struct {
	ID               string `json:"id"               yaml:"id"`
	DisplayName      string `json:"displayName"      yaml:"displayName"`
	GroupDisplayName string `json:"groupDisplayName" yaml:"groupDisplayName"`
	Profile          string `json:"profile"          yaml:"profile"`

	session Session
}

// NewUserPreview returns an empty UserPreview bound to session, ready to be decoded into.
func NewUserPreview(session Session) *UserPreview {
	return &UserPreview{session: session}
}

// SendMessage sends a message to this user, in addition to any recipient
// of config, and returns the message id.
func (p *UserPreview) SendMessage(ctx context.Context, config *MessageConfig) (string, error) {
	return sendTo(ctx, p.session, p.ID, config)
}

// FetchUser fetches the full profile behind this preview.
func (p *UserPreview) FetchUser(ctx context.Context) (*User, error) {
	return p.session.FetchUser(ctx, p.ID)
}

// AvatarURL returns the URL of the user's avatar thumbnail.
func (p *UserPreview) AvatarURL() string {
	return p.session.AvatarURL(p.ID)
}

func sendTo(ctx context.Context, session Session, id string, config *MessageConfig) (string, error) {
	outgoing, err := BuildOutgoing(config, WithExtraRecipients(id))
	if err != nil {
		return "", err
	}

	return session.SendOutgoing(ctx, outgoing, "")
}

// AuthorizedAction is a secured action granted to the current user.
type AuthorizedAction struct {
	Name        string `json:"name"        yaml:"name"`
	DisplayName string `json:"displayName" yaml:"displayName"`
	Type        string `json:"type"        yaml:"type"`
}

// Widget is a portal widget available to the current user.
type Widget struct {
	Application string `json:"application" yaml:"application"`
	I18n        string `json:"i18n"        yaml:"i18n"`
	Name        string `json:"name"        yaml:"name"`
	Path        string `json:"path"        yaml:"path"`
	Mandatory   bool   `json:"mandatory"   yaml:"mandatory"`
	ID          string `json:"id"          yaml:"id"`
	JS          string `json:"js"          yaml:"js"`
}

// UserInfo describes the account the session is logged in as.
type UserInfo struct {
	UserID              string             `json:"userId"              yaml:"userId"`
	Login               string             `json:"login"               yaml:"login"`
	Username            string             `json:"username"            yaml:"username"`
	FirstName           string             `json:"firstName"           yaml:"firstName"`
	LastName            string             `json:"lastName"            yaml:"lastName"`
	ExternalID          string             `json:"externalId"          yaml:"externalId"`
	Type                string             `json:"type"                yaml:"type"`
	Level               string             `json:"level"               yaml:"level"`
	BirthDate           time.Time          `json:"birthDate"           yaml:"birthDate"`
	HasPassword         bool               `json:"hasPw"               yaml:"hasPw"`
	HasApp              bool               `json:"hasApp"              yaml:"hasApp"`
	NeedRevalidateTerms bool               `json:"needRevalidateTerms" yaml:"needRevalidateTerms"`
	DeletePending       bool               `json:"deletePending"       yaml:"deletePending"`
	Classes             []string           `json:"classes"             yaml:"classes"`
	ClassNames          []string           `json:"classNames"          yaml:"classNames"`
	Structures          []string           `json:"structures"          yaml:"structures"`
	StructureNames      []string           `json:"structureNames"      yaml:"structureNames"`
	UAI                 []string           `json:"uai"                 yaml:"uai"`
	GroupsIDs           []string           `json:"groupsIds"           yaml:"groupsIds"`
	ChildrenIDs         []string           `json:"childrenIds"         yaml:"childrenIds"`
	AuthorizedActions   []AuthorizedAction `json:"authorizedActions"   yaml:"authorizedActions"`
	Widgets             []Widget           `json:"widgets"             yaml:"widgets"`
	Apps                []*App             `json:"apps"                yaml:"apps"`
}
