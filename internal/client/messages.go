package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/fivetwenty-io/ent-client/internal/constants"
	"github.com/fivetwenty-io/ent-client/internal/htmltext"
	internalhttp "github.com/fivetwenty-io/ent-client/internal/http"
	"github.com/fivetwenty-io/ent-client/pkg/ent"
)

// FetchMessages implements ent.MessagesClient.FetchMessages. An invalid
// folder is rejected before any request is sent.
func (c *Client) FetchMessages(ctx context.Context, folder ent.Folder, page int) ([]*ent.Message, error) {
	if !folder.Valid() {
		return nil, fmt.Errorf("%w: %q", ent.ErrInvalidFolder, folder)
	}

	query := url.Values{
		"folder": {string(folder)},
		"page":   {strconv.Itoa(page)},
		"unread": {"false"},
	}

	resp, err := c.httpClient.Get(ctx, constants.PathMessageList, query)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}

	var items []json.RawMessage

	if resp.Body != nil {
		err = json.Unmarshal(resp.Body, &items)
		if err != nil {
			return nil, fmt.Errorf("parsing messages list: %w", err)
		}
	}

	messages := make([]*ent.Message, 0, len(items))

	for _, item := range items {
		message := ent.NewMessage(c)

		err = json.Unmarshal(item, message)
		if err != nil {
			return nil, fmt.Errorf("parsing message: %w", err)
		}

		messages = append(messages, message)
	}

	return messages, nil
}

// FetchMessage implements ent.MessagesClient.FetchMessage. With parse, the
// body of the returned message is plain text.
func (c *Client) FetchMessage(ctx context.Context, id string, parse bool) (*ent.Message, error) {
	resp, err := c.httpClient.Get(ctx, constants.PathMessage+url.PathEscape(id), nil)
	if err != nil {
		return nil, fmt.Errorf("getting message %s: %w", id, err)
	}

	message := ent.NewMessage(c)

	if resp.Body != nil {
		err = json.Unmarshal(resp.Body, message)
		if err != nil {
			return nil, fmt.Errorf("parsing message: %w", err)
		}
	}

	if parse {
		message.Body = htmltext.Convert(message.Body)
	}

	return message, nil
}

// SendMessage implements ent.MessagesClient.SendMessage.
func (c *Client) SendMessage(ctx context.Context, config *ent.MessageConfig) (string, error) {
	outgoing, err := ent.BuildOutgoing(config)
	if err != nil {
		return "", err
	}

	return c.SendOutgoing(ctx, outgoing, "")
}

// ReplyMessage implements ent.MessagesClient.ReplyMessage.
func (c *Client) ReplyMessage(ctx context.Context, original *ent.Message, config *ent.MessageConfig) (string, error) {
	if original == nil {
		return "", fmt.Errorf("%w: original message is required", ent.ErrInvalidArgument)
	}

	return original.Reply(ctx, config)
}

// SendOutgoing implements ent.MessagesClient.SendOutgoing: the message is
// saved as a draft, then the draft is sent. Both steps carry the payload.
func (c *Client) SendOutgoing(ctx context.Context, message *ent.OutgoingMessage, inReplyTo string) (string, error) {
	draftQuery := url.Values{}
	if inReplyTo != "" {
		draftQuery.Set("In-Reply-To", inReplyTo)
	}

	resp, err := c.httpClient.Do(ctx, &internalhttp.Request{
		Method: http.MethodPost,
		Path:   constants.PathDraft,
		Query:  draftQuery,
		Body:   message,
	})
	if err != nil {
		return "", fmt.Errorf("creating draft: %w", err)
	}

	draftID, err := decodeID(resp.Body)
	if err != nil {
		return "", fmt.Errorf("creating draft: %w", err)
	}

	sendQuery := url.Values{"id": {draftID}}
	if inReplyTo != "" {
		sendQuery.Set("In-Reply-To", inReplyTo)
	}

	resp, err = c.httpClient.Do(ctx, &internalhttp.Request{
		Method: http.MethodPost,
		Path:   constants.PathSend,
		Query:  sendQuery,
		Body:   message,
	})
	if err != nil {
		return "", fmt.Errorf("sending draft %s: %w", draftID, err)
	}

	id, err := decodeID(resp.Body)
	if err != nil {
		return "", fmt.Errorf("sending draft %s: %w", draftID, err)
	}

	if c.logger != nil {
		c.logger.Info("message sent", map[string]interface{}{"id": id, "recipients": len(message.To)})
	}

	return id, nil
}

// TrashMessage implements ent.MessagesClient.TrashMessage.
func (c *Client) TrashMessage(ctx context.Context, id string) error {
	_, err := c.httpClient.Do(ctx, &internalhttp.Request{
		Method: http.MethodPut,
		Path:   constants.PathTrash,
		Query:  url.Values{"id": {id}},
	})
	if err != nil {
		return fmt.Errorf("moving message %s to trash: %w", id, err)
	}

	return nil
}

// decodeID reads the "id" field the draft and send endpoints answer with.
// Some portal versions send it as a number.
func decodeID(data json.RawMessage) (string, error) {
	var payload struct {
		ID json.RawMessage `json:"id"`
	}

	if len(data) == 0 || json.Unmarshal(data, &payload) != nil || len(payload.ID) == 0 {
		return "", ent.ErrMissingMessageID
	}

	var id string

	err := json.Unmarshal(payload.ID, &id)
	if err == nil && id != "" {
		return id, nil
	}

	var number json.Number

	err = json.Unmarshal(payload.ID, &number)
	if err != nil || number == "" {
		return "", ent.ErrMissingMessageID
	}

	return number.String(), nil
}
