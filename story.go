package snooze

import (
	"net/url"
	"time"

	"github.com/mitchellh/mapstructure"
)

// A Story is a single submitted link as returned by the remote service.
// Stories are value objects: once built from server data they are never
// mutated in place, only added to or removed from collections. StoryID is
// the sole identity key across every collection holding stories.
type Story struct {
	StoryID   string    `mapstructure:"storyId"`
	Title     string    `mapstructure:"title"`
	Author    string    `mapstructure:"author"`
	URL       string    `mapstructure:"url"`
	Username  string    `mapstructure:"username"`
	CreatedAt time.Time `mapstructure:"createdAt"`
}

// NewStory builds a Story from a server payload mapping. Fields are copied
// verbatim, the createdAt timestamp is parsed from its RFC3339 form. No
// further validation happens at this layer.
func NewStory(data map[string]interface{}) (*Story, error) {
	var story Story
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.StringToTimeHookFunc(time.RFC3339),
		Result:     &story,
	})
	if err != nil {
		return nil, err
	}

	if err := dec.Decode(data); err != nil {
		return nil, err
	}

	return &story, nil
}

// Hostname parses the story URL and returns its host component, suitable for
// displaying next to the title. A story whose URL cannot be parsed as an
// absolute URL with a host yields a MalformedURL error; callers must not
// swallow it since rendering depends on the result.
func (s *Story) Hostname() (string, error) {
	u, err := url.Parse(s.URL)
	if err != nil {
		return "", MalformedURL(s.URL, err)
	}

	if !u.IsAbs() || u.Host == "" {
		return "", MalformedURL(s.URL, nil)
	}

	return u.Host, nil
}
