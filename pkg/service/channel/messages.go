package channel

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/zap8600/go-discordapi/pkg/model"
	"github.com/zap8600/go-discordapi/pkg/rest"
)

// bulkDeleteMin and bulkDeleteMax bound the message count the bulk-delete
// endpoint accepts.
const (
	bulkDeleteMin = 2
	bulkDeleteMax = 100
)

// MessagesQuery narrows a channel message listing. At most one of Before,
// After and Around may be set.
type MessagesQuery struct {
	Limit  int
	Before model.Snowflake
	After  model.Snowflake
	Around model.Snowflake
}

func (q *MessagesQuery) encode() (string, error) {
	if q == nil {
		return "", nil
	}
	anchors := 0
	v := url.Values{}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if !q.Before.IsZero() {
		v.Set("before", q.Before.String())
		anchors++
	}
	if !q.After.IsZero() {
		v.Set("after", q.After.String())
		anchors++
	}
	if !q.Around.IsZero() {
		v.Set("around", q.Around.String())
		anchors++
	}
	if anchors > 1 {
		return "", fmt.Errorf("channel: before, after and around are mutually exclusive")
	}
	if len(v) == 0 {
		return "", nil
	}
	return "?" + v.Encode(), nil
}

type Messages interface {
	GetMessages(ctx context.Context, channelID model.Snowflake, query *MessagesQuery) ([]*model.Message, error)
	GetMessage(ctx context.Context, channelID, messageID model.Snowflake) (*model.Message, error)
	CreateMessage(ctx context.Context, channelID model.Snowflake, content string) (*model.Message, error)
	CreateMessageComplex(ctx context.Context, channelID model.Snowflake, create *model.MessageCreate) (*model.Message, error)
	EditMessage(ctx context.Context, channelID, messageID model.Snowflake, content string) (*model.Message, error)
	DeleteMessage(ctx context.Context, channelID, messageID model.Snowflake) error
	BulkDeleteMessages(ctx context.Context, channelID model.Snowflake, messageIDs []model.Snowflake) error
	CrosspostMessage(ctx context.Context, channelID, messageID model.Snowflake) (*model.Message, error)
}

type messages struct {
	rest *rest.Client
}

func NewMessagesClient(rc *rest.Client) *messages {
	return &messages{
		rest: rc,
	}
}

func (c *messages) GetMessages(ctx context.Context, channelID model.Snowflake, query *MessagesQuery) ([]*model.Message, error) {
	qs, err := query.encode()
	if err != nil {
		return nil, err
	}
	route := rest.NewRoute(http.MethodGet, "/channels/%s/messages", channelID)
	route.Path += qs

	var msgs []*model.Message
	if err := c.rest.Do(ctx, route, nil, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (c *messages) GetMessage(ctx context.Context, channelID, messageID model.Snowflake) (*model.Message, error) {
	route := rest.NewRoute(http.MethodGet, "/channels/%s/messages/%s", channelID, messageID)

	var msg model.Message
	if err := c.rest.Do(ctx, route, nil, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (c *messages) CreateMessage(ctx context.Context, channelID model.Snowflake, content string) (*model.Message, error) {
	return c.CreateMessageComplex(ctx, channelID, &model.MessageCreate{Content: content})
}

func (c *messages) CreateMessageComplex(ctx context.Context, channelID model.Snowflake, create *model.MessageCreate) (*model.Message, error) {
	if create == nil {
		return nil, fmt.Errorf("channel: nil message payload")
	}
	if strings.TrimSpace(create.Content) == "" && len(create.Embeds) == 0 {
		return nil, fmt.Errorf("channel: message needs content or embeds")
	}
	if create.Nonce == "" {
		create.Nonce = uuid.NewString()
	}
	route := rest.NewRoute(http.MethodPost, "/channels/%s/messages", channelID)

	var msg model.Message
	if err := c.rest.Do(ctx, route, create, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (c *messages) EditMessage(ctx context.Context, channelID, messageID model.Snowflake, content string) (*model.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("channel: empty message content")
	}
	route := rest.NewRoute(http.MethodPatch, "/channels/%s/messages/%s", channelID, messageID)

	edit := &model.MessageEdit{Content: &content}
	var msg model.Message
	if err := c.rest.Do(ctx, route, edit, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (c *messages) DeleteMessage(ctx context.Context, channelID, messageID model.Snowflake) error {
	route := rest.NewRoute(http.MethodDelete, "/channels/%s/messages/%s", channelID, messageID)

	return c.rest.Do(ctx, route, nil, nil)
}

func (c *messages) BulkDeleteMessages(ctx context.Context, channelID model.Snowflake, messageIDs []model.Snowflake) error {
	if len(messageIDs) < bulkDeleteMin || len(messageIDs) > bulkDeleteMax {
		return fmt.Errorf("channel: bulk delete takes %d to %d messages, got %d", bulkDeleteMin, bulkDeleteMax, len(messageIDs))
	}
	route := rest.NewRoute(http.MethodPost, "/channels/%s/messages/bulk-delete", channelID)

	return c.rest.Do(ctx, route, &model.BulkDelete{Messages: messageIDs}, nil)
}

func (c *messages) CrosspostMessage(ctx context.Context, channelID, messageID model.Snowflake) (*model.Message, error) {
	route := rest.NewRoute(http.MethodPost, "/channels/%s/messages/%s/crosspost", channelID, messageID)

	var msg model.Message
	if err := c.rest.Do(ctx, route, nil, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
