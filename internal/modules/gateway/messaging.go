package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"inkspace/internal/domain"
	"inkspace/internal/pkg/metrics"
	"inkspace/internal/repository"
	"inkspace/internal/storage"
)

func (g *Gateway) FetchNotifications(ctx context.Context, userID string) (list []domain.Notification, err error) {
	defer metrics.Observe("fetch_notifications", time.Now(), &err)

	list, err = g.repos.Notifications.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch notifications: %w", err)
	}
	return list, nil
}

// MarkNotificationsAsRead marks every notification of the user read.
func (g *Gateway) MarkNotificationsAsRead(ctx context.Context, userID string) (err error) {
	defer metrics.Observe("mark_notifications_read", time.Now(), &err)

	if err := g.repos.Notifications.MarkAllRead(ctx, userID); err != nil {
		return fmt.Errorf("mark notifications read: %w", err)
	}
	return nil
}

func (g *Gateway) FetchConversations(ctx context.Context, userID string) (list []domain.Conversation, err error) {
	defer metrics.Observe("fetch_conversations", time.Now(), &err)

	list, err = g.repos.Chat.ListConversations(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch conversations: %w", err)
	}
	return list, nil
}

// FindOrCreateConversation returns the single conversation between a and b,
// creating it on first contact.
func (g *Gateway) FindOrCreateConversation(ctx context.Context, a, b string) (conv *domain.Conversation, err error) {
	defer metrics.Observe("find_or_create_conversation", time.Now(), &err)

	if a == "" || b == "" || a == b {
		return nil, fmt.Errorf("find or create conversation: %w", ErrInvalidInput)
	}
	conv, err = findOrCreateConversation(ctx, g.repos, a, b)
	if repository.IsUniqueViolation(err) {
		// Lost a race with a concurrent first contact.
		conv, err = g.repos.Chat.FindConversation(ctx, a, b)
	}
	if err != nil {
		return nil, fmt.Errorf("find or create conversation: %w", err)
	}
	return conv, nil
}

func findOrCreateConversation(ctx context.Context, r *repository.Set, a, b string) (*domain.Conversation, error) {
	conv, err := r.Chat.FindConversation(ctx, a, b)
	if err == nil {
		return conv, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	conv = &domain.Conversation{Participant1ID: a, Participant2ID: b}
	if err := r.Chat.CreateConversation(ctx, conv); err != nil {
		return nil, err
	}
	return conv, nil
}

// FetchMessages returns the conversation's messages oldest first. Only its
// participants and admins may read it.
func (g *Gateway) FetchMessages(ctx context.Context, conversationID, viewerID string) (list []domain.Message, err error) {
	defer metrics.Observe("fetch_messages", time.Now(), &err)

	conv, err := g.repos.Chat.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("fetch messages: %w", err)
	}
	if !conv.HasParticipant(viewerID) {
		viewer, err := g.repos.Profiles.GetByID(ctx, viewerID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("fetch messages: %w", err)
		}
		if viewer == nil || viewer.Role != domain.RoleAdmin {
			return nil, fmt.Errorf("fetch messages: %w", ErrNotParticipant)
		}
	}

	list, err = g.repos.Chat.ListMessages(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("fetch messages: %w", err)
	}
	return list, nil
}

// SendMessage posts a message from a participant. An attachment is stored
// under the sender's prefix before the message row is written.
func (g *Gateway) SendMessage(ctx context.Context, conversationID, senderID, content string, attachment *storage.Upload) (msg *domain.Message, err error) {
	defer metrics.Observe("send_message", time.Now(), &err)

	content = strings.TrimSpace(content)
	if content == "" && attachment == nil {
		return nil, fmt.Errorf("send message: empty: %w", ErrInvalidInput)
	}
	conv, err := g.repos.Chat.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}
	if !conv.HasParticipant(senderID) {
		return nil, fmt.Errorf("send message: %w", ErrNotParticipant)
	}

	msg = &domain.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
		CreatedAt:      g.now().UTC(),
	}
	var obj storedObject
	if attachment != nil {
		obj, err = g.putObject(ctx, senderID, *attachment)
		if err != nil {
			return nil, fmt.Errorf("send message: %w", err)
		}
		msg.AttachmentURL = obj.url
		msg.AttachmentType = obj.mimeType
	}
	if err := g.repos.Chat.CreateMessage(ctx, msg); err != nil {
		if obj.key != "" {
			g.discardObject(ctx, obj.key)
		}
		return nil, fmt.Errorf("send message: %w", err)
	}
	return msg, nil
}
