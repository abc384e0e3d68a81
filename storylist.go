package snooze

import "errors"

// A StoryList is the global feed, newest first. It shares Story values by id
// with the acting user's OwnStories and Favorites; every mutating operation
// keeps all collections holding the affected story consistent.
type StoryList struct {
	Stories []*Story

	service Service
}

// FetchStories retrieves the current feed from the remote service and wraps
// it in a new StoryList, preserving server order. There is no cached or
// partial fallback; any failure surfaces as *ServiceError.
func FetchStories(service Service) (*StoryList, error) {
	data, err := service.ListStories()
	if err != nil {
		return nil, ServiceFailed("failed to fetch stories", err)
	}

	stories := []*Story{}
	for _, sd := range data {
		story, err := NewStory(sd)
		if err != nil {
			return nil, ServiceFailed("failed to fetch stories", err)
		}
		stories = append(stories, story)
	}

	return &StoryList{Stories: stories, service: service}, nil
}

// AddStory submits a new story on behalf of user and inserts the stored
// result at the front of both the feed and user.OwnStories. Missing fields
// fail with *ValidationError before any network call; a service failure
// leaves the local collections untouched.
func (l *StoryList) AddStory(user *User, sub Submission) (*Story, error) {
	missing := []string{}
	if sub.Title == "" {
		missing = append(missing, "title")
	}
	if sub.Author == "" {
		missing = append(missing, "author")
	}
	if sub.URL == "" {
		missing = append(missing, "url")
	}
	if len(missing) > 0 {
		return nil, Invalid(missing...)
	}

	if user.LoginToken == "" {
		return nil, AuthFailed("not logged in", nil)
	}

	data, err := l.service.CreateStory(user.LoginToken, sub)
	if err != nil {
		var authErr *AuthError
		if errors.As(err, &authErr) {
			return nil, authErr
		}
		return nil, ServiceFailed("failed to add story", err)
	}

	story, err := NewStory(data)
	if err != nil {
		return nil, ServiceFailed("failed to add story", err)
	}

	l.Stories = append([]*Story{story}, l.Stories...)
	user.OwnStories = append([]*Story{story}, user.OwnStories...)

	return story, nil
}

// RemoveStory deletes a story on behalf of user and removes any entry with
// that id from the feed, user.OwnStories and user.Favorites. Removing an id
// that no collection holds is a no-op success. A service failure leaves the
// local collections untouched.
func (l *StoryList) RemoveStory(user *User, storyID string) error {
	if user.LoginToken == "" {
		return AuthFailed("not logged in", nil)
	}

	if err := l.service.DeleteStory(user.LoginToken, storyID); err != nil {
		var authErr *AuthError
		if errors.As(err, &authErr) {
			return authErr
		}
		return ServiceFailed("failed to remove story", err)
	}

	l.Stories = removeByID(l.Stories, storyID)
	user.OwnStories = removeByID(user.OwnStories, storyID)
	user.Favorites = removeByID(user.Favorites, storyID)

	return nil
}

// removeByID filters out every story with the given id, preserving order.
func removeByID(stories []*Story, storyID string) []*Story {
	kept := make([]*Story, 0, len(stories))
	for _, s := range stories {
		if s.StoryID != storyID {
			kept = append(kept, s)
		}
	}
	return kept
}
