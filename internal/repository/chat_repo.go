package repository

import (
	"context"
	"time"

	"inkspace/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// conversationRow keeps participant1_id < participant2_id so the unique index
// covers the unordered pair.
type conversationRow struct {
	ID             string    `gorm:"column:id;primaryKey"`
	Participant1ID string    `gorm:"column:participant1_id;uniqueIndex:idx_conversation_pair"`
	Participant2ID string    `gorm:"column:participant2_id;uniqueIndex:idx_conversation_pair"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (conversationRow) TableName() string { return "conversations" }

type messageRow struct {
	ID             string    `gorm:"column:id;primaryKey"`
	ConversationID string    `gorm:"column:conversation_id;index"`
	SenderID       string    `gorm:"column:sender_id"`
	Content        string    `gorm:"column:content"`
	AttachmentURL  string    `gorm:"column:attachment_url"`
	AttachmentType string    `gorm:"column:attachment_type"`
	CreatedAt      time.Time `gorm:"column:created_at;index"`
}

func (messageRow) TableName() string { return "messages" }

func toDomainConversation(m conversationRow) *domain.Conversation {
	return &domain.Conversation{
		ID:             m.ID,
		Participant1ID: m.Participant1ID,
		Participant2ID: m.Participant2ID,
		CreatedAt:      m.CreatedAt,
	}
}

func toConversationRow(c *domain.Conversation) conversationRow {
	return conversationRow{
		ID:             c.ID,
		Participant1ID: c.Participant1ID,
		Participant2ID: c.Participant2ID,
		CreatedAt:      c.CreatedAt,
	}
}

func toDomainMessage(m messageRow) *domain.Message {
	return &domain.Message{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Content:        m.Content,
		AttachmentURL:  m.AttachmentURL,
		AttachmentType: m.AttachmentType,
		CreatedAt:      m.CreatedAt,
	}
}

func toMessageRow(msg *domain.Message) messageRow {
	return messageRow{
		ID:             msg.ID,
		ConversationID: msg.ConversationID,
		SenderID:       msg.SenderID,
		Content:        msg.Content,
		AttachmentURL:  msg.AttachmentURL,
		AttachmentType: msg.AttachmentType,
		CreatedAt:      msg.CreatedAt,
	}
}

// FindConversation returns the conversation between a and b in either order.
func (r *ChatRepository) FindConversation(ctx context.Context, a, b string) (*domain.Conversation, error) {
	p1, p2 := domain.OrderedPair(a, b)
	var m conversationRow
	err := r.db.WithContext(ctx).
		Where("participant1_id = ? AND participant2_id = ?", p1, p2).
		First(&m).Error
	if err != nil {
		return nil, notFound(err)
	}
	return toDomainConversation(m), nil
}

func (r *ChatRepository) CreateConversation(ctx context.Context, c *domain.Conversation) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.Participant1ID, c.Participant2ID = domain.OrderedPair(c.Participant1ID, c.Participant2ID)
	m := toConversationRow(c)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*c = *toDomainConversation(m)
	return nil
}

func (r *ChatRepository) GetConversation(ctx context.Context, id string) (*domain.Conversation, error) {
	var m conversationRow
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return toDomainConversation(m), nil
}

func (r *ChatRepository) ListConversations(ctx context.Context, userID string) ([]domain.Conversation, error) {
	var rows []conversationRow
	err := r.db.WithContext(ctx).
		Where("participant1_id = ? OR participant2_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Conversation, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainConversation(m))
	}
	return out, nil
}

func (r *ChatRepository) CreateMessage(ctx context.Context, msg *domain.Message) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	m := toMessageRow(msg)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*msg = *toDomainMessage(m)
	return nil
}

// ListMessages returns the conversation's messages oldest first.
func (r *ChatRepository) ListMessages(ctx context.Context, conversationID string) ([]domain.Message, error) {
	var rows []messageRow
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Message, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainMessage(m))
	}
	return out, nil
}
