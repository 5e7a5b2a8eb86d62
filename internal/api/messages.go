package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dtroode/creatorhub/internal/model"
)

const messagesPath = "/messages"

// Messages reads and sends direct messages.
type Messages struct {
	doer Doer
}

func NewMessages(doer Doer) *Messages {
	return &Messages{doer: doer}
}

// List returns the messages exchanged between from and to, in either
// direction, in the order the server returned them. Messages outside the
// pair are dropped.
func (m *Messages) List(ctx context.Context, from, to model.ID) ([]model.Message, error) {
	path := messagesPath + "?from=" + url.QueryEscape(from.String()) + "&to=" + url.QueryEscape(to.String())
	resp, err := get(ctx, m.doer, path)
	if err != nil {
		return nil, err
	}
	all, err := decodeList[model.Message](resp)
	if err != nil {
		return nil, err
	}

	conv := model.Conversation{A: from, B: to}
	out := make([]model.Message, 0, len(all))
	for _, msg := range all {
		if conv.Includes(msg) {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (m *Messages) Create(ctx context.Context, in model.NewMessage) (model.Message, error) {
	resp, err := send(ctx, m.doer, http.MethodPost, messagesPath, in)
	if err != nil {
		return model.Message{}, err
	}
	return decode[model.Message](resp)
}
