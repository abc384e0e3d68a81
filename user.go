package snooze

import (
	"errors"
	"sync"
	"time"

	"github.com/mitchellh/mapstructure"
)

// A User is the currently logged-in person. It owns the login token required
// by every mutating call, plus the two per-user story collections: favorites
// and self-authored stories. Neither collection ever holds two entries with
// the same story id.
type User struct {
	Username   string
	Name       string
	CreatedAt  time.Time
	Favorites  []*Story
	OwnStories []*Story
	LoginToken string

	service Service

	// favMu serializes favorite toggles so that two rapid toggles on the
	// same story cannot interleave and lose an update.
	favMu sync.Mutex
}

type userData struct {
	Username   string                   `mapstructure:"username"`
	Name       string                   `mapstructure:"name"`
	CreatedAt  time.Time                `mapstructure:"createdAt"`
	Favorites  []map[string]interface{} `mapstructure:"favorites"`
	OwnStories []map[string]interface{} `mapstructure:"ownStories"`
}

// NewUser builds a User from a server profile mapping and a login token.
// The favorites and ownStories sequences are deep-copied into Story values
// and default to empty when absent from the server data.
func NewUser(data map[string]interface{}, token string, service Service) (*User, error) {
	var ud userData
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.StringToTimeHookFunc(time.RFC3339),
		Result:     &ud,
	})
	if err != nil {
		return nil, err
	}

	if err := dec.Decode(data); err != nil {
		return nil, err
	}

	user := &User{
		Username:   ud.Username,
		Name:       ud.Name,
		CreatedAt:  ud.CreatedAt,
		Favorites:  []*Story{},
		OwnStories: []*Story{},
		LoginToken: token,
		service:    service,
	}

	for _, sd := range ud.Favorites {
		story, err := NewStory(sd)
		if err != nil {
			return nil, err
		}
		user.Favorites = append(user.Favorites, story)
	}

	for _, sd := range ud.OwnStories {
		story, err := NewStory(sd)
		if err != nil {
			return nil, err
		}
		user.OwnStories = append(user.OwnStories, story)
	}

	return user, nil
}

// Signup registers a new account with the remote service and returns the
// logged-in User holding a fresh token. Rejections, a duplicate username for
// instance, surface as *AuthError with the service's reason.
func Signup(service Service, username, password, name string) (*User, error) {
	data, token, err := service.Signup(username, password, name)
	if err != nil {
		var authErr *AuthError
		if errors.As(err, &authErr) {
			return nil, authErr
		}
		return nil, ServiceFailed("failed to sign up", err)
	}

	user, err := NewUser(data, token, service)
	if err != nil {
		return nil, ServiceFailed("failed to sign up", err)
	}

	return user, nil
}

// Login authenticates an existing account and returns the logged-in User
// holding a fresh token. Bad credentials surface as *AuthError.
func Login(service Service, username, password string) (*User, error) {
	data, token, err := service.Login(username, password)
	if err != nil {
		var authErr *AuthError
		if errors.As(err, &authErr) {
			return nil, authErr
		}
		return nil, ServiceFailed("failed to log in", err)
	}

	user, err := NewUser(data, token, service)
	if err != nil {
		return nil, ServiceFailed("failed to log in", err)
	}

	return user, nil
}

// LoginViaStoredCredentials attempts a silent re-authentication with a
// previously persisted token. It is a best-effort startup path: any failure,
// an expired token or an unreachable service, yields (nil, nil) so that the
// caller proceeds logged-out instead of aborting initialization. A missing
// token or username means "no remembered session" and is also (nil, nil).
func LoginViaStoredCredentials(service Service, token, username string) (*User, error) {
	if token == "" || username == "" {
		return nil, nil
	}

	data, err := service.FetchUser(token, username)
	if err != nil {
		return nil, nil
	}

	user, err := NewUser(data, token, service)
	if err != nil {
		return nil, nil
	}

	return user, nil
}

// AddFavorite marks a story as a favorite of this user. The local list is
// only mutated once the service confirms the change, so a failed call leaves
// local and server state consistent.
func (u *User) AddFavorite(story *Story) error {
	u.favMu.Lock()
	defer u.favMu.Unlock()

	if u.LoginToken == "" {
		return AuthFailed("not logged in", nil)
	}

	if err := u.service.AddFavorite(u.LoginToken, u.Username, story.StoryID); err != nil {
		var authErr *AuthError
		if errors.As(err, &authErr) {
			return authErr
		}
		return ServiceFailed("failed to add favorite", err)
	}

	if !u.hasFavorite(story.StoryID) {
		u.Favorites = append(u.Favorites, story)
	}

	return nil
}

// RemoveFavorite unmarks a story as a favorite of this user. Like
// AddFavorite, the local list only changes after the service confirms.
func (u *User) RemoveFavorite(story *Story) error {
	u.favMu.Lock()
	defer u.favMu.Unlock()

	if u.LoginToken == "" {
		return AuthFailed("not logged in", nil)
	}

	if err := u.service.RemoveFavorite(u.LoginToken, u.Username, story.StoryID); err != nil {
		var authErr *AuthError
		if errors.As(err, &authErr) {
			return authErr
		}
		return ServiceFailed("failed to remove favorite", err)
	}

	u.Favorites = removeByID(u.Favorites, story.StoryID)

	return nil
}

// IsFavorite reports whether the given story is among this user's favorites.
func (u *User) IsFavorite(story *Story) bool {
	u.favMu.Lock()
	defer u.favMu.Unlock()

	return u.hasFavorite(story.StoryID)
}

func (u *User) hasFavorite(storyID string) bool {
	for _, s := range u.Favorites {
		if s.StoryID == storyID {
			return true
		}
	}
	return false
}
