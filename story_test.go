package snooze

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewStory(t *testing.T) {
	r := require.New(t)

	story, err := NewStory(map[string]interface{}{
		"storyId":   "abc-123",
		"title":     "Foobar",
		"author":    "Alice A",
		"url":       "http://foobar.com/post",
		"username":  "alice",
		"createdAt": "2020-01-01T12:00:00Z",
	})
	r.NoError(err)

	r.Equal("abc-123", story.StoryID)
	r.Equal("Foobar", story.Title)
	r.Equal("Alice A", story.Author)
	r.Equal("http://foobar.com/post", story.URL)
	r.Equal("alice", story.Username)

	want, _ := time.Parse(time.RFC3339, "2020-01-01T12:00:00Z")
	r.Equal(want, story.CreatedAt)
}

func TestNewStoryMissingFields(t *testing.T) {
	r := require.New(t)

	// no validation at this layer, absent fields stay zero
	story, err := NewStory(map[string]interface{}{"storyId": "abc-123"})
	r.NoError(err)
	r.Equal("abc-123", story.StoryID)
	r.Equal("", story.Title)
	r.True(story.CreatedAt.IsZero())
}

func TestHostname(t *testing.T) {
	r := require.New(t)

	cases := map[string]string{
		"https://news.example.com/a/b?x=1": "news.example.com",
		"http://foobar.com":                "foobar.com",
		// any absolute URL with a host works, the scheme is not ours to police
		"ftp://files.foobar.com/pub": "files.foobar.com",
	}
	for raw, want := range cases {
		story := &Story{URL: raw}
		host, err := story.Hostname()
		r.NoError(err, raw)
		r.Equal(want, host, raw)
	}
}

func TestHostnameMalformed(t *testing.T) {
	for _, raw := range []string{"not a url", "foobar.com/no-scheme", "mailto:alice@foobar.com", ""} {
		story := &Story{URL: raw}
		_, err := story.Hostname()
		require.Error(t, err, raw)
		require.IsType(t, &MalformedURLError{}, err, raw)
	}
}
