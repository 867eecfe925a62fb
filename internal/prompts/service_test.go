package prompts

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestService_GetOrDefault_KnownKey(t *testing.T) {
	svc := NewService(NewRepo())

	p := svc.GetOrDefault(DefaultKey)
	assert.Equal(t, DefaultKey, p.Key)
	assert.NotEmpty(t, p.System)
}

func TestService_GetOrDefault_UnknownKeyFallsBack(t *testing.T) {
	svc := NewService(NewRepo())

	p := svc.GetOrDefault("does-not-exist")
	assert.Equal(t, DefaultKey, p.Key)
	assert.NotEmpty(t, p.System)
}

func TestService_GetOrDefault_EmptyKeyFallsBack(t *testing.T) {
	svc := NewService(NewRepo())

	p := svc.GetOrDefault("")
	assert.Equal(t, DefaultKey, p.Key)
}

func TestService_List(t *testing.T) {
	svc := NewService(NewRepo())

	list := svc.List()
	assert.Len(t, list, 1)
	assert.Equal(t, DefaultKey, list[0].Key)
	assert.NotEmpty(t, list[0].Description)
}

func TestPrompt_SystemTextIsNotSerialized(t *testing.T) {
	p := Prompt{Key: "k", Description: "d", System: "secret instructions"}

	b, err := json.Marshal(p)
	assert.NoError(t, err)
	assert.NotContains(t, string(b), "secret instructions")
	assert.Contains(t, string(b), `"key":"k"`)
}
