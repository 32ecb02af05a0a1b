/*
PURPOSE:
  Bounded multi-turn conversation history for interactive chat.

REQUIREMENTS:
  User-specified:
  - Keep at most maxTurns exchanges (one user + one assistant message
    per turn), evicting the oldest messages first.
  - Roll back a failed user turn so history never holds an orphaned
    question without its reply.

  Implementation-discovered:
  - The system prompt is injected at payload-build time, never stored,
    so it cannot be evicted by trimming.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine (interactive loop)
  - Uses: internal/model

ERROR HANDLING:
  - None; all operations succeed on any state (Rollback on an empty
    session is a no-op).

IMPLEMENTATION RULES:
  - Trim after every append: FIFO, one message at a time. Eviction may
    split a user/assistant pair at the boundary; old context loss only
    degrades quality.
  - Single caller, no locking.

USAGE:
  s := session.New(10)
  s.AppendUser("hello")
  msgs := s.Messages(systemPrompt)

RELATED FILES:
  - internal/engine/interactive.go

MAINTENANCE:
  - None.
*/

package session

import "github.com/sotalab/llm-bridge/internal/model"

// Session holds the retained conversation history.
type Session struct {
	maxTurns int
	history  []model.Message
}

// New creates a Session bounded to maxTurns exchanges.
func New(maxTurns int) *Session {
	return &Session{maxTurns: maxTurns}
}

// AppendUser records an operator message and trims.
func (s *Session) AppendUser(text string) {
	s.history = append(s.history, model.Message{Role: model.RoleUser, Content: text})
	s.trim()
}

// AppendAssistant records a model reply and trims.
func (s *Session) AppendAssistant(text string) {
	s.history = append(s.history, model.Message{Role: model.RoleAssistant, Content: text})
	s.trim()
}

// Rollback removes the most recently appended message. Used after a
// failed exchange to drop the user turn that never got its reply.
func (s *Session) Rollback() {
	if len(s.history) > 0 {
		s.history = s.history[:len(s.history)-1]
	}
}

// Reset clears the retained history.
func (s *Session) Reset() {
	s.history = s.history[:0]
}

// Len returns the number of retained messages (not turns).
func (s *Session) Len() int {
	return len(s.history)
}

// Turns returns the number of complete exchanges currently retained.
func (s *Session) Turns() int {
	return len(s.history) / 2
}

// Messages builds the request payload: exactly one system message
// first, then the retained history oldest-first. The returned slice is
// a fresh copy; the caller may not mutate session state through it.
func (s *Session) Messages(systemPrompt string) []model.Message {
	msgs := make([]model.Message, 0, len(s.history)+1)
	msgs = append(msgs, model.Message{Role: model.RoleSystem, Content: systemPrompt})
	msgs = append(msgs, s.history...)
	return msgs
}

func (s *Session) trim() {
	bound := s.maxTurns * 2
	for len(s.history) > bound {
		s.history = s.history[1:]
	}
}
