package snooze

// A Submission holds the three user-provided fields of a new story.
type Submission struct {
	Title  string
	Author string
	URL    string
}

// Service is the boundary with the remote story API. The model only ever
// talks to the service through this interface, which makes it injectable
// with a test double. Payloads cross the boundary as mappings of the raw
// JSON data; the model decodes them into Story and User values.
//
// Mutating calls authenticate with the login token. Implementations are
// expected to return *AuthError for rejected credentials or tokens and plain
// transport errors otherwise; the model wraps the latter into *ServiceError
// with a stable per-operation message.
type Service interface {
	// ListStories returns the global feed, newest first.
	ListStories() ([]map[string]interface{}, error)
	// CreateStory submits a new story and returns the stored story data,
	// including its server-assigned id.
	CreateStory(token string, sub Submission) (map[string]interface{}, error)
	// DeleteStory removes a story by id. Deleting an id that does not exist
	// is not an error.
	DeleteStory(token string, storyID string) error
	// Signup registers a new account and returns the profile data and a
	// fresh login token.
	Signup(username, password, name string) (map[string]interface{}, string, error)
	// Login authenticates an existing account and returns the profile data
	// and a fresh login token.
	Login(username, password string) (map[string]interface{}, string, error)
	// FetchUser looks up a profile by username, authenticated with the token.
	FetchUser(token, username string) (map[string]interface{}, error)
	AddFavorite(token, username, storyID string) error
	RemoveFavorite(token, username, storyID string) error
}
