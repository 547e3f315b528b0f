package ent

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/fivetwenty-io/ent-client/internal/constants"
	"github.com/fivetwenty-io/ent-client/internal/htmltext"
)

// Attachment describes a file attached to a message.
type Attachment struct {
	ID          string `json:"id"          yaml:"id"`
	Filename    string `json:"filename"    yaml:"filename"`
	ContentType string `json:"contentType" yaml:"contentType"`
	Size        int64  `json:"size"        yaml:"size"`
}

// Message is a mailbox message.
type Message struct {
	Attachments   []Attachment `json:"attachments"      yaml:"attachments"`
	Bcc           []string     `json:"bcc"              yaml:"bcc"`
	Cc            []string     `json:"cc"               yaml:"cc"`
	Date          int64        `json:"date"             yaml:"date"`
	DisplayNames  [][]string   `json:"displayNames"     yaml:"displayNames"`
	From          string       `json:"from"             yaml:"from"`
	HasAttachment bool         `json:"hasAttachment"    yaml:"hasAttachment"`
	ID            string       `json:"id"               yaml:"id"`
	ParentID      string       `json:"parent_id"        yaml:"parent_id"`
	Response      bool         `json:"response"         yaml:"response"`
	State         string       `json:"state"            yaml:"state"`
	Subject       string       `json:"subject"          yaml:"subject"`
	SystemFolder  string       `json:"systemFolder"     yaml:"systemFolder"`
	ThreadID      string       `json:"thread_id"        yaml:"thread_id"`
	To            []string     `json:"to"               yaml:"to"`
	Unread        bool         `json:"unread"           yaml:"unread"`
	// Body is only present when the originating payload carried it, or
	// after FetchBody backfilled it.
	Body string `json:"body,omitempty" yaml:"body,omitempty"`

	session   Session
	bodyMu    sync.Mutex
	bodyKnown bool
}

// NewMessage returns an empty Message bound to session, ready to be decoded into.
func NewMessage(session Session) *Message {
	return &Message{session: session}
}

// UnmarshalJSON decodes a message payload and records whether it carried
// a body, even an empty one.
func (m *Message) UnmarshalJSON(data []byte) error {
	type plain Message

	err := json.Unmarshal(data, (*plain)(m))
	if err != nil {
		return err
	}

	var present struct {
		Body *string `json:"body"`
	}

	err = json.Unmarshal(data, &present)
	if err != nil {
		return err
	}

	m.bodyKnown = present.Body != nil

	return nil
}

// Time returns the message timestamp.
func (m *Message) Time() time.Time {
	return time.UnixMilli(m.Date)
}

// DisplayName returns the display name the message payload associates
// with a user id, or the id itself when none is known.
func (m *Message) DisplayName(id string) string {
	for _, pair := range m.DisplayNames {
		if len(pair) >= 2 && pair[0] == id {
			return pair[1]
		}
	}

	return id
}

// FetchBody returns the message body, fetching it once when the
// originating payload did not carry it. With parse, the HTML body is
// converted to plain text.
func (m *Message) FetchBody(ctx context.Context, parse bool) (string, error) {
	m.bodyMu.Lock()
	defer m.bodyMu.Unlock()

	if !m.bodyKnown && m.Body == "" {
		fetched, err := m.session.FetchMessage(ctx, m.ID, false)
		if err != nil {
			return "", fmt.Errorf("fetching message body: %w", err)
		}

		m.Body = fetched.Body
		m.bodyKnown = true
	}

	if parse {
		return htmltext.Convert(m.Body), nil
	}

	return m.Body, nil
}

// FetchAuthor fetches the profile of the sender.
func (m *Message) FetchAuthor(ctx context.Context) (*User, error) {
	return m.session.FetchUser(ctx, m.From)
}

// Reply answers the sender of this message and returns the reply id.
// Recipients in config are ignored. With ParseBody, the original message
// is quoted below the reply.
func (m *Message) Reply(ctx context.Context, config *MessageConfig) (string, error) {
	if config == nil {
		config = &MessageConfig{}
	}

	opts := []OutgoingOption{
		WithRecipients(m.From),
		WithDefaultSubject(constants.ReplySubjectPrefix + m.Subject),
	}

	if config.ParseBody {
		quote, err := m.quote(ctx)
		if err != nil {
			return "", err
		}

		opts = append(opts, WithQuote(quote))
	}

	outgoing, err := BuildOutgoing(config, opts...)
	if err != nil {
		return "", err
	}

	return m.session.SendOutgoing(ctx, outgoing, m.ID)
}

// MoveToTrash moves the message to the trash folder.
func (m *Message) MoveToTrash(ctx context.Context) error {
	return m.session.TrashMessage(ctx, m.ID)
}

func (m *Message) quote(ctx context.Context) (string, error) {
	author, err := m.FetchAuthor(ctx)
	if err != nil {
		return "", fmt.Errorf("quoting original message: %w", err)
	}

	body, err := m.FetchBody(ctx, false)
	if err != nil {
		return "", fmt.Errorf("quoting original message: %w", err)
	}

	return RenderQuote(author.DisplayName, FormatFrenchDate(m.Time()), m.Subject, body), nil
}
