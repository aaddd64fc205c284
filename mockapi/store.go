package mockapi

import (
	"sync"

	"github.com/storyspoiler/story-contract-tests/servicedef"

	"github.com/google/uuid"
)

type storyStore struct {
	stories map[string]servicedef.Story
	order   []string
	lock    sync.Mutex
}

func newStoryStore() *storyStore {
	return &storyStore{stories: make(map[string]servicedef.Story)}
}

func (s *storyStore) create(params servicedef.StoryParams) string {
	id := uuid.NewString()
	s.lock.Lock()
	defer s.lock.Unlock()
	s.stories[id] = servicedef.Story{
		ID:          id,
		Title:       params.Title,
		Description: params.Description,
		URL:         params.URL,
	}
	s.order = append(s.order, id)
	return id
}

func (s *storyStore) update(id string, params servicedef.StoryParams) bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	if _, ok := s.stories[id]; !ok {
		return false
	}
	s.stories[id] = servicedef.Story{
		ID:          id,
		Title:       params.Title,
		Description: params.Description,
		URL:         params.URL,
	}
	return true
}

func (s *storyStore) delete(id string) bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	if _, ok := s.stories[id]; !ok {
		return false
	}
	delete(s.stories, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// list never returns nil, so that an empty store encodes as [] rather than null.
func (s *storyStore) list() []servicedef.Story {
	s.lock.Lock()
	defer s.lock.Unlock()
	ret := make([]servicedef.Story, 0, len(s.order))
	for _, id := range s.order {
		ret = append(ret, s.stories[id])
	}
	return ret
}
