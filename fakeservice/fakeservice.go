// Package fakeservice is an in-memory stand-in for the remote story service,
// used by tests. It implements snooze.Service directly and can also serve
// the same REST contract over HTTP, see Handler.
package fakeservice

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/hacksnooze/snooze"
)

type account struct {
	password  string
	name      string
	createdAt time.Time
	favorites []string
}

// A Service holds users, stories and issued tokens in memory. The zero value
// is not usable, use New.
type Service struct {
	mu       sync.Mutex
	accounts map[string]*account
	tokens   map[string]string
	stories  []map[string]interface{}
	counter  int
	calls    int

	// Err, when set, makes every call fail with it, simulating an outage.
	Err error
}

// Calls returns how many service calls were made, counting failed ones.
func (s *Service) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.calls
}

func New() *Service {
	return &Service{
		accounts: map[string]*account{},
		tokens:   map[string]string{},
		stories:  []map[string]interface{}{},
	}
}

func (s *Service) ListStories() ([]map[string]interface{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	if s.Err != nil {
		return nil, s.Err
	}

	return append([]map[string]interface{}{}, s.stories...), nil
}

func (s *Service) CreateStory(token string, sub snooze.Submission) (map[string]interface{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	if s.Err != nil {
		return nil, s.Err
	}

	username, err := s.authenticate(token)
	if err != nil {
		return nil, err
	}

	s.counter++
	story := map[string]interface{}{
		"storyId":   "story-" + strconv.Itoa(s.counter),
		"title":     sub.Title,
		"author":    sub.Author,
		"url":       sub.URL,
		"username":  username,
		"createdAt": snooze.NowFunc().UTC().Format(time.RFC3339),
	}

	s.stories = append([]map[string]interface{}{story}, s.stories...)

	return story, nil
}

func (s *Service) DeleteStory(token string, storyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	if s.Err != nil {
		return s.Err
	}

	if _, err := s.authenticate(token); err != nil {
		return err
	}

	kept := s.stories[:0]
	for _, story := range s.stories {
		if story["storyId"] != storyID {
			kept = append(kept, story)
		}
	}
	s.stories = kept

	for _, acc := range s.accounts {
		acc.favorites = removeID(acc.favorites, storyID)
	}

	return nil
}

func (s *Service) Signup(username, password, name string) (map[string]interface{}, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	if s.Err != nil {
		return nil, "", s.Err
	}

	if _, ok := s.accounts[username]; ok {
		return nil, "", snooze.AuthFailed("username already taken", nil)
	}

	s.accounts[username] = &account{
		password:  password,
		name:      name,
		createdAt: snooze.NowFunc().UTC(),
	}

	token := s.issueToken(username)

	return s.profile(username), token, nil
}

func (s *Service) Login(username, password string) (map[string]interface{}, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	if s.Err != nil {
		return nil, "", s.Err
	}

	acc, ok := s.accounts[username]
	if !ok || acc.password != password {
		return nil, "", snooze.AuthFailed("invalid username or password", nil)
	}

	token := s.issueToken(username)

	return s.profile(username), token, nil
}

func (s *Service) FetchUser(token, username string) (map[string]interface{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	if s.Err != nil {
		return nil, s.Err
	}

	owner, err := s.authenticate(token)
	if err != nil {
		return nil, err
	}
	if owner != username {
		return nil, snooze.AuthFailed("token does not match user", nil)
	}

	return s.profile(username), nil
}

func (s *Service) AddFavorite(token, username, storyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	if s.Err != nil {
		return s.Err
	}

	acc, err := s.favoriteTarget(token, username, storyID)
	if err != nil {
		return err
	}

	for _, id := range acc.favorites {
		if id == storyID {
			return nil
		}
	}
	acc.favorites = append(acc.favorites, storyID)

	return nil
}

func (s *Service) RemoveFavorite(token, username, storyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	if s.Err != nil {
		return s.Err
	}

	acc, err := s.favoriteTarget(token, username, storyID)
	if err != nil {
		return err
	}

	acc.favorites = removeID(acc.favorites, storyID)

	return nil
}

// RevokeToken invalidates a previously issued token.
func (s *Service) RevokeToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tokens, token)
}

// authenticate resolves a token to its username. Callers must hold s.mu.
func (s *Service) authenticate(token string) (string, error) {
	username, ok := s.tokens[token]
	if !ok {
		return "", snooze.AuthFailed("invalid token", nil)
	}
	return username, nil
}

func (s *Service) issueToken(username string) string {
	s.counter++
	token := "token-" + strconv.Itoa(s.counter)
	s.tokens[token] = username
	return token
}

// favoriteTarget authenticates the token against the username and checks the
// story exists, returning the account whose favorites are being toggled.
func (s *Service) favoriteTarget(token, username, storyID string) (*account, error) {
	owner, err := s.authenticate(token)
	if err != nil {
		return nil, err
	}
	if owner != username {
		return nil, snooze.AuthFailed("token does not match user", nil)
	}

	for _, story := range s.stories {
		if story["storyId"] == storyID {
			return s.accounts[username], nil
		}
	}

	return nil, fmt.Errorf("no such story %q", storyID)
}

// profile assembles the user payload mapping, embedding the story data of
// favorites and self-authored stories. Callers must hold s.mu.
func (s *Service) profile(username string) map[string]interface{} {
	acc := s.accounts[username]

	favorites := []map[string]interface{}{}
	for _, id := range acc.favorites {
		for _, story := range s.stories {
			if story["storyId"] == id {
				favorites = append(favorites, story)
			}
		}
	}

	ownStories := []map[string]interface{}{}
	for _, story := range s.stories {
		if story["username"] == username {
			ownStories = append(ownStories, story)
		}
	}

	return map[string]interface{}{
		"username":   username,
		"name":       acc.name,
		"createdAt":  acc.createdAt.Format(time.RFC3339),
		"favorites":  favorites,
		"ownStories": ownStories,
	}
}

func removeID(ids []string, id string) []string {
	kept := ids[:0]
	for _, v := range ids {
		if v != id {
			kept = append(kept, v)
		}
	}
	return kept
}
