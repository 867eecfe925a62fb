package prompts

import "log"

type service struct {
	repo Repo
}

func NewService(repo Repo) Service {
	return &service{repo: repo}
}

func (s *service) GetOrDefault(key string) Prompt {
	if p, ok := s.repo.Get(key); ok {
		return p
	}

	if key != "" {
		log.Printf("[prompts] unknown key %q, falling back to %q", key, DefaultKey)
	}

	p, _ := s.repo.Get(DefaultKey)
	return p
}

func (s *service) List() []Prompt {
	return s.repo.List()
}
