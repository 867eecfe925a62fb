package speech

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- Mock types ---

type MockSynthesizer struct {
	mock.Mock
}

func (m *MockSynthesizer) Synthesize(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}

// --- Tests ---

func TestService_Synthesize_StandardByDefault(t *testing.T) {
	standard := new(MockSynthesizer)
	personalized := new(MockSynthesizer)
	standard.On("Synthesize", mock.Anything, "halo").Return("/out/a.mp3", nil).Once()

	svc := NewService(standard, personalized)

	path, err := svc.Synthesize(context.Background(), "halo", false)
	assert.NoError(t, err)
	assert.Equal(t, "/out/a.mp3", path)

	personalized.AssertNotCalled(t, "Synthesize", mock.Anything, mock.Anything)
	standard.AssertExpectations(t)
}

func TestService_Synthesize_PersonalizedWhenTrained(t *testing.T) {
	standard := new(MockSynthesizer)
	personalized := new(MockSynthesizer)
	personalized.On("Synthesize", mock.Anything, "halo").Return("/out/a.wav", nil).Once()

	svc := NewService(standard, personalized)

	path, err := svc.Synthesize(context.Background(), "halo", true)
	assert.NoError(t, err)
	assert.Equal(t, "/out/a.wav", path)

	standard.AssertNotCalled(t, "Synthesize", mock.Anything, mock.Anything)
	personalized.AssertExpectations(t)
}

func TestService_Synthesize_PersonalizedMissingFallsBack(t *testing.T) {
	standard := new(MockSynthesizer)
	standard.On("Synthesize", mock.Anything, "halo").Return("/out/a.mp3", nil).Once()

	svc := NewService(standard, nil)
	assert.False(t, svc.PersonalizedAvailable())

	path, err := svc.Synthesize(context.Background(), "halo", true)
	assert.NoError(t, err)
	assert.Equal(t, "/out/a.mp3", path)
	standard.AssertExpectations(t)
}

func TestService_PersonalizedAvailable(t *testing.T) {
	assert.True(t, NewService(new(MockSynthesizer), new(MockSynthesizer)).PersonalizedAvailable())
	assert.False(t, NewService(new(MockSynthesizer), nil).PersonalizedAvailable())
}

func TestService_Synthesize_ErrorPropagates(t *testing.T) {
	standard := new(MockSynthesizer)
	standard.On("Synthesize", mock.Anything, "halo").
		Return("", errors.New("engine down")).Once()

	svc := NewService(standard, nil)

	_, err := svc.Synthesize(context.Background(), "halo", false)
	assert.EqualError(t, err, "engine down")
	standard.AssertExpectations(t)
}
