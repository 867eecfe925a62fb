package responses

import "sync"

// Store holds the two most recent audio artifacts for the whole process.
// Last writer wins; a reader may get audio from an interleaved request.
// Single-tenant by design.
type Store struct {
	mu            sync.RWMutex
	summary       string
	transcription string
}

func NewStore() *Store {
	return &Store{}
}

// SetLatest replaces both slots together. An empty path clears a slot.
func (s *Store) SetLatest(summaryPath, transcriptionPath string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary = summaryPath
	s.transcription = transcriptionPath
}

func (s *Store) LatestSummary() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary
}

func (s *Store) LatestTranscription() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.transcription
}
