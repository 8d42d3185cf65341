package conversation

import (
	"context"
	"errors"
	"sync"

	"github.com/looplab/fsm"
)

const (
	StateIdle            = "idle"
	StateAwaitingContact = "awaiting_contact"

	EventRequestContact  = "request_contact"
	EventContactAccepted = "contact_accepted"
	EventCancel          = "cancel"
)

// Store holds the one-shot continuation of every chat. Only chats that
// are waiting for something have an entry; state is lost on restart.
type Store struct {
	mu    sync.Mutex
	chats map[int64]*fsm.FSM
}

func NewStore() *Store {
	return &Store{chats: make(map[int64]*fsm.FSM)}
}

func newChatFSM() *fsm.FSM {
	return fsm.NewFSM(
		StateIdle,
		fsm.Events{
			{Name: EventRequestContact, Src: []string{StateIdle, StateAwaitingContact}, Dst: StateAwaitingContact},
			{Name: EventContactAccepted, Src: []string{StateAwaitingContact}, Dst: StateIdle},
			{Name: EventCancel, Src: []string{StateAwaitingContact}, Dst: StateIdle},
		},
		fsm.Callbacks{},
	)
}

// State reports where the chat is; chats without an entry are idle.
func (s *Store) State(chatID int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m, ok := s.chats[chatID]; ok {
		return m.Current()
	}
	return StateIdle
}

func (s *Store) AwaitingContact(chatID int64) bool {
	return s.State(chatID) == StateAwaitingContact
}

// RequestContact arms the continuation. Arming an armed chat is a no-op.
func (s *Store) RequestContact(ctx context.Context, chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.chats[chatID]
	if !ok {
		m = newChatFSM()
		s.chats[chatID] = m
	}
	return ignoreNoTransition(m.Event(ctx, EventRequestContact))
}

// ContactAccepted consumes the continuation after a valid contact.
func (s *Store) ContactAccepted(ctx context.Context, chatID int64) error {
	return s.leave(ctx, chatID, EventContactAccepted)
}

// Cancel drops a pending continuation and reports whether there was one.
func (s *Store) Cancel(ctx context.Context, chatID int64) bool {
	return s.leave(ctx, chatID, EventCancel) == nil
}

func (s *Store) leave(ctx context.Context, chatID int64, event string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.chats[chatID]
	if !ok {
		return fsm.InvalidEventError{Event: event, State: StateIdle}
	}
	if err := m.Event(ctx, event); err != nil {
		return err
	}
	delete(s.chats, chatID)
	return nil
}

func ignoreNoTransition(err error) error {
	var noTransition fsm.NoTransitionError
	if errors.As(err, &noTransition) {
		return nil
	}
	return err
}
