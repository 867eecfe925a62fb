package speech

import "context"

type service struct {
	standard     Synthesizer
	personalized Synthesizer // nil when no trained bundle is present
}

func NewService(standard, personalized Synthesizer) Service {
	return &service{
		standard:     standard,
		personalized: personalized,
	}
}

func (s *service) PersonalizedAvailable() bool {
	return s.personalized != nil
}

func (s *service) Synthesize(ctx context.Context, text string, personalized bool) (string, error) {
	if personalized && s.personalized != nil {
		return s.personalized.Synthesize(ctx, text)
	}
	return s.standard.Synthesize(ctx, text)
}
