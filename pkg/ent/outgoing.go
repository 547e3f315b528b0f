package ent

import (
	"fmt"
	"strings"

	"github.com/fivetwenty-io/ent-client/internal/constants"
)

// MessageConfig describes a message to send.
type MessageConfig struct {
	// To lists recipient user ids. At least one is required.
	To  []string
	Cc  []string
	Bcc []string
	// Subject defaults to "(Aucun objet)".
	Subject string
	Body    string
	// ParseBody converts a plain-text body into the portal's HTML markup,
	// one block per line.
	ParseBody bool
	Signature string
	// Attachments lists ids of attachments already uploaded to the portal.
	Attachments []string
}

// OutgoingMessage is the payload posted to the draft and send endpoints.
type OutgoingMessage struct {
	Attachments []string `json:"attachments"`
	Bcc         []string `json:"bcc"`
	Body        string   `json:"body"`
	Cc          []string `json:"cc"`
	Subject     string   `json:"subject"`
	To          []string `json:"to"`
}

// OutgoingOption overrides part of a MessageConfig while building.
type OutgoingOption func(*outgoingOverrides)

type outgoingOverrides struct {
	to             []string
	extraTo        []string
	defaultSubject string
	quote          string
}

// WithRecipients replaces the recipients of the config.
func WithRecipients(to ...string) OutgoingOption {
	return func(o *outgoingOverrides) {
		o.to = to
	}
}

// WithExtraRecipients adds recipients to those of the config.
func WithExtraRecipients(to ...string) OutgoingOption {
	return func(o *outgoingOverrides) {
		o.extraTo = append(o.extraTo, to...)
	}
}

// WithDefaultSubject sets the subject used when the config has none.
func WithDefaultSubject(subject string) OutgoingOption {
	return func(o *outgoingOverrides) {
		o.defaultSubject = subject
	}
}

// WithQuote appends an already rendered quote block after the signature.
func WithQuote(quote string) OutgoingOption {
	return func(o *outgoingOverrides) {
		o.quote = quote
	}
}

// BuildOutgoing renders config into the wire payload. Both sending and
// replying go through this function.
func BuildOutgoing(config *MessageConfig, opts ...OutgoingOption) (*OutgoingMessage, error) {
	if config == nil {
		config = &MessageConfig{}
	}

	overrides := &outgoingOverrides{defaultSubject: constants.DefaultSubject}
	for _, opt := range opts {
		opt(overrides)
	}

	to := config.To
	if overrides.to != nil {
		to = overrides.to
	}

	to = appendUnique(nonEmpty(to), nonEmpty(overrides.extraTo)...)
	if len(to) == 0 {
		return nil, ErrNoDestination
	}

	subject := config.Subject
	if subject == "" {
		subject = overrides.defaultSubject
	}

	var body strings.Builder

	if config.ParseBody {
		for _, line := range strings.Split(config.Body, "\n") {
			fmt.Fprintf(&body, constants.BodyLineTemplate, line)
		}
	} else {
		body.WriteString(config.Body)
	}

	if config.Signature != "" {
		fmt.Fprintf(&body, constants.SignatureTemplate, config.Signature)
	}

	body.WriteString(overrides.quote)

	return &OutgoingMessage{
		Attachments: nonNil(config.Attachments),
		Bcc:         nonNil(config.Bcc),
		Body:        body.String(),
		Cc:          nonNil(config.Cc),
		Subject:     subject,
		To:          to,
	}, nil
}

// RenderQuote renders the block quoting an original message below a reply.
func RenderQuote(author, date, subject, body string) string {
	return fmt.Sprintf(constants.QuoteTemplate, author, date, subject, body)
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}

	return values
}

// nonEmpty returns a copy of ids without empty entries.
func nonEmpty(ids []string) []string {
	result := make([]string, 0, len(ids))

	for _, id := range ids {
		if id != "" {
			result = append(result, id)
		}
	}

	return result
}

func appendUnique(values []string, extra ...string) []string {
	for _, value := range extra {
		found := false

		for _, existing := range values {
			if existing == value {
				found = true

				break
			}
		}

		if !found {
			values = append(values, value)
		}
	}

	return values
}
