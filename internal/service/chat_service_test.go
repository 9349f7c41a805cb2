package service

import (
	"testing"

	"github.com/schedulr/schedulr-bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestChatService_SendEchoes(t *testing.T) {
	svc := NewChatService(zap.NewNop())

	reply, ok := svc.Send(100, "  what courses should I take?  ")
	require.True(t, ok)
	assert.Equal(t, model.ChatRoleAssistant, reply.Role)
	assert.Equal(t, "Echo: what courses should I take?", reply.Content)

	history := svc.History(100)
	require.Len(t, history, 2)
	assert.Equal(t, model.ChatRoleUser, history[0].Role)
	assert.Equal(t, "what courses should I take?", history[0].Content)
	assert.Equal(t, model.ChatRoleAssistant, history[1].Role)
}

func TestChatService_EmptyInputIgnored(t *testing.T) {
	svc := NewChatService(zap.NewNop())

	_, ok := svc.Send(100, "   ")
	assert.False(t, ok)
	assert.Empty(t, svc.History(100))
}

func TestChatService_HistoriesAreIsolated(t *testing.T) {
	svc := NewChatService(zap.NewNop())

	svc.Send(100, "hello")
	svc.Send(200, "hi there")

	assert.Len(t, svc.History(100), 2)
	assert.Len(t, svc.History(200), 2)

	svc.Clear(100)
	assert.Empty(t, svc.History(100))
	assert.Len(t, svc.History(200), 2)
}
