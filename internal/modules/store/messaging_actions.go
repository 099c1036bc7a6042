package store

import (
	"context"

	"inkspace/internal/domain"
	"inkspace/internal/storage"
)

// FetchNotifications refreshes the signed-in user's notifications.
func (s *Store) FetchNotifications(ctx context.Context) ([]domain.Notification, error) {
	const action = "fetch notifications"
	list, err := s.gw.FetchNotifications(ctx, s.User().ID)
	if err != nil {
		return nil, s.fail(action, err, "We couldn't load your notifications.")
	}
	s.update(func(st *State) { st.Notifications = list })
	s.pollMu.Lock()
	s.lastUnread = domain.CountUnread(list)
	s.pollMu.Unlock()
	return list, nil
}

// MarkNotificationsAsRead marks every notification of the user as read.
func (s *Store) MarkNotificationsAsRead(ctx context.Context) error {
	const action = "mark notifications as read"
	if err := s.gw.MarkNotificationsAsRead(ctx, s.User().ID); err != nil {
		return s.fail(action, err, "We couldn't update your notifications.")
	}
	s.update(func(st *State) {
		list := make([]domain.Notification, len(st.Notifications))
		for i, n := range st.Notifications {
			n.Read = true
			list[i] = n
		}
		st.Notifications = list
	})
	s.pollMu.Lock()
	s.lastUnread = 0
	s.pollMu.Unlock()
	return nil
}

func (s *Store) LoadConversations(ctx context.Context) ([]domain.Conversation, error) {
	const action = "load conversations"
	list, err := s.gw.FetchConversations(ctx, s.User().ID)
	if err != nil {
		return nil, s.fail(action, err, "We couldn't load your messages.")
	}
	s.update(func(st *State) { st.Conversations = list })
	return list, nil
}

// OpenConversation makes id the active conversation and loads its messages.
// When another conversation was opened while the fetch was in flight, the
// result is dropped.
func (s *Store) OpenConversation(ctx context.Context, id string) ([]domain.Message, error) {
	const action = "open conversation"
	u := s.User()
	conv, ok := lookup(s, func(st *State) *domain.Conversation {
		for i := range st.Conversations {
			if st.Conversations[i].ID == id {
				return &st.Conversations[i]
			}
		}
		return nil
	})
	if ok && !conv.HasParticipant(u.ID) && !isAdmin(u) {
		return nil, s.fail(action, ErrForbidden, "")
	}
	s.update(func(st *State) {
		st.ActiveConversationID = id
		st.Messages = nil
	})

	msgs, err := s.gw.FetchMessages(ctx, id, u.ID)
	if err != nil {
		cleared := read(s, func(st *State) bool {
			if st.ActiveConversationID != id {
				return false
			}
			st.ActiveConversationID = ""
			return true
		})
		if !cleared {
			return nil, nil
		}
		return nil, s.fail(action, err, "We couldn't load this conversation.")
	}
	applied := read(s, func(st *State) bool {
		if st.ActiveConversationID != id {
			return false
		}
		st.Messages = msgs
		return true
	})
	if !applied {
		s.log.Debug().Str("conversation_id", id).Msg("dropping messages of inactive conversation")
		return nil, nil
	}
	return msgs, nil
}

// CloseConversation clears the active conversation.
func (s *Store) CloseConversation() {
	s.update(func(st *State) {
		st.ActiveConversationID = ""
		st.Messages = nil
	})
}

// SendMessage posts to the active conversation.
func (s *Store) SendMessage(ctx context.Context, content string, attachment *storage.Upload) (*domain.Message, error) {
	const action = "send message"
	convID := s.activeConversation()
	if convID == "" {
		return nil, s.fail(action, ErrNoConversation, "Open a conversation first.")
	}
	msg, err := s.gw.SendMessage(ctx, convID, s.User().ID, content, attachment)
	if err != nil {
		return nil, s.fail(action, err, "Your message was not sent.")
	}
	s.update(func(st *State) {
		if st.ActiveConversationID == convID {
			st.Messages = append(st.Messages, *msg)
		}
	})
	return msg, nil
}

// StartConversation opens the conversation with otherUserID, creating it
// when the two have never talked.
func (s *Store) StartConversation(ctx context.Context, otherUserID string) (*domain.Conversation, error) {
	const action = "start conversation"
	conv, err := s.gw.FindOrCreateConversation(ctx, s.User().ID, otherUserID)
	if err != nil {
		return nil, s.fail(action, err, "We couldn't start a conversation.")
	}
	s.update(func(st *State) { st.Conversations = upsert(st.Conversations, *conv, conversationKey) })
	if _, err := s.OpenConversation(ctx, conv.ID); err != nil {
		return conv, err
	}
	return conv, nil
}

func (s *Store) activeConversation() string {
	return read(s, func(st *State) string { return st.ActiveConversationID })
}
