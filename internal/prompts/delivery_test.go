package prompts

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandler_List(t *testing.T) {
	h := NewHandler(NewService(NewRepo()))

	req := httptest.NewRequest(http.MethodGet, "/prompts", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got []map[string]string
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Len(t, got, 1)
	assert.Equal(t, DefaultKey, got[0]["key"])

	// System prompts stay server-side
	_, leaked := got[0]["system"]
	assert.False(t, leaked)
}
