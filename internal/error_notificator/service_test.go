package error_notificator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- Mock types ---

type MockInfra struct {
	mock.Mock
}

func (m *MockInfra) Notify(ctx context.Context, err error, details string) error {
	args := m.Called(ctx, err, details)
	return args.Error(0)
}

// --- Tests ---

func TestService_DelegatesToInfra(t *testing.T) {
	infra := new(MockInfra)
	cause := errors.New("groq down")
	infra.On("Notify", mock.Anything, cause, "chat failure").Return(nil).Once()

	svc := NewService(infra)

	assert.NoError(t, svc.Notify(context.Background(), cause, "chat failure"))
	infra.AssertExpectations(t)
}

func TestService_PropagatesSendError(t *testing.T) {
	infra := new(MockInfra)
	infra.On("Notify", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("telegram unreachable")).Once()

	svc := NewService(infra)

	err := svc.Notify(context.Background(), errors.New("x"), "d")
	assert.EqualError(t, err, "telegram unreachable")
	infra.AssertExpectations(t)
}

func TestNop_SwallowsEverything(t *testing.T) {
	assert.NoError(t, Nop{}.Notify(context.Background(), errors.New("x"), "d"))
}

func TestNewTelegramInfra_Unconfigured(t *testing.T) {
	t.Setenv("TELEGRAM_ALERT_TOKEN", "")
	t.Setenv("TELEGRAM_ALERT_CHAT_ID", "")
	assert.Nil(t, NewTelegramInfra())

	t.Setenv("TELEGRAM_ALERT_TOKEN", "123:abc")
	assert.Nil(t, NewTelegramInfra())
}

func TestNewTelegramInfra_BadChatID(t *testing.T) {
	t.Setenv("TELEGRAM_ALERT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_ALERT_CHAT_ID", "not-a-number")
	assert.Nil(t, NewTelegramInfra())
}
