package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/target/schoolsite-ui/internal/domain/content"
	"github.com/target/schoolsite-ui/internal/ports"
)

const adminMessagesPath = "/admin/messages"

// MessageRepository reads and deletes contact messages through the admin API.
// Read state is kept in the admin session, not in the backend.
type MessageRepository struct {
	client ports.APIClient
}

// NewMessageRepository constructs a MessageRepository over the authenticated client.
func NewMessageRepository(client ports.APIClient) *MessageRepository {
	return &MessageRepository{client: client}
}

// List returns every contact message.
func (r *MessageRepository) List(ctx context.Context) ([]content.Message, error) {
	msgs, err := fetchList[content.Message](ctx, r.client, adminMessagesPath)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return msgs, nil
}

// Delete removes a contact message.
func (r *MessageRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("message ID is required")
	}
	if err := send(ctx, r.client, http.MethodDelete, resourcePath(adminMessagesPath, id), nil); err != nil {
		return fmt.Errorf("delete message %s: %w", id, err)
	}
	return nil
}
