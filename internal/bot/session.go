package bot

import (
	"context"
	"fmt"
	"time"
)

// State шаг мастера внесения картины.
type State string

const (
	StateIdle           State = ""
	StateWaitingTitle   State = "waiting_title"
	StateWaitingDate    State = "waiting_date"
	StateWaitingMonths  State = "waiting_months"
	StateWaitingConfirm State = "waiting_confirm"
)

const sessionTTL = 24 * time.Hour

// Session данные, накопленные мастером для одного чата.
type Session struct {
	State        State  `json:"state"`
	Title        string `json:"title,omitempty"`
	DateTransfer string `json:"date_transfer,omitempty"`
	Months       int    `json:"months,omitempty"`
}

// KeyValue хранилище, поверх которого живут сессии.
type KeyValue interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, keys ...string) error
}

// SessionStore хранит состояние мастера в Redis, поэтому диалог переживает
// перезапуск бота. Незавершённая сессия истекает через сутки.
type SessionStore struct {
	kv KeyValue
}

// NewSessionStore создаёт хранилище сессий.
func NewSessionStore(kv KeyValue) *SessionStore {
	return &SessionStore{kv: kv}
}

func sessionKey(chatID int64) string {
	return fmt.Sprintf("session:%d", chatID)
}

// Load возвращает сессию чата или пустую, если её нет.
func (s *SessionStore) Load(ctx context.Context, chatID int64) (Session, error) {
	const op = "bot.SessionStore.Load"
	var sess Session
	found, err := s.kv.Get(ctx, sessionKey(chatID), &sess)
	if err != nil {
		return Session{}, fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return Session{}, nil
	}
	return sess, nil
}

// Save сохраняет сессию и продлевает её срок жизни.
func (s *SessionStore) Save(ctx context.Context, chatID int64, sess Session) error {
	const op = "bot.SessionStore.Save"
	if err := s.kv.Set(ctx, sessionKey(chatID), sess, sessionTTL); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Clear удаляет сессию чата.
func (s *SessionStore) Clear(ctx context.Context, chatID int64) error {
	const op = "bot.SessionStore.Clear"
	if err := s.kv.Invalidate(ctx, sessionKey(chatID)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
