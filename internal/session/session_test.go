package session

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sotalab/llm-bridge/internal/model"
)

func TestMessages_SystemPromptFirst(t *testing.T) {
	s := New(10)
	s.AppendUser("hello")
	s.AppendAssistant("hi there")

	msgs := s.Messages("be brief")
	require.Len(t, msgs, 3)
	assert.Equal(t, model.Message{Role: model.RoleSystem, Content: "be brief"}, msgs[0])
	assert.Equal(t, model.Message{Role: model.RoleUser, Content: "hello"}, msgs[1])
	assert.Equal(t, model.Message{Role: model.RoleAssistant, Content: "hi there"}, msgs[2])
}

func TestTrim_BoundHoldsAfterAnyAppendSequence(t *testing.T) {
	const maxTurns = 3
	s := New(maxTurns)

	for i := 0; i < 20; i++ {
		s.AppendUser(fmt.Sprintf("q%d", i))
		assert.LessOrEqual(t, s.Len(), maxTurns*2)
		s.AppendAssistant(fmt.Sprintf("a%d", i))
		assert.LessOrEqual(t, s.Len(), maxTurns*2)
	}

	// Oldest messages evicted first: the survivors are the last three turns.
	msgs := s.Messages("sys")[1:]
	require.Len(t, msgs, maxTurns*2)
	assert.Equal(t, "q17", msgs[0].Content)
	assert.Equal(t, "a19", msgs[len(msgs)-1].Content)
}

func TestRollback_RestoresExactPriorState(t *testing.T) {
	s := New(10)
	s.AppendUser("first")
	s.AppendAssistant("reply")

	before := s.Messages("sys")

	s.AppendUser("doomed")
	s.Rollback()

	assert.Equal(t, before, s.Messages("sys"))
	assert.Equal(t, 2, s.Len())
}

func TestRollback_EmptySessionIsNoop(t *testing.T) {
	s := New(10)
	s.Rollback()
	assert.Zero(t, s.Len())
}

func TestReset_ClearsHistoryOnly(t *testing.T) {
	s := New(10)
	s.AppendUser("hello")
	s.AppendAssistant("hi")
	s.Reset()

	assert.Zero(t, s.Len())
	msgs := s.Messages("sys")
	require.Len(t, msgs, 1)
	assert.Equal(t, model.RoleSystem, msgs[0].Role)
}

func TestTurns(t *testing.T) {
	s := New(10)
	assert.Zero(t, s.Turns())
	s.AppendUser("q")
	assert.Zero(t, s.Turns())
	s.AppendAssistant("a")
	assert.Equal(t, 1, s.Turns())
}
