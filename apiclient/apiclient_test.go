package apiclient_test

import (
	"errors"
	"net/http/httptest"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/rs/zerolog"

	"github.com/hacksnooze/snooze"
	"github.com/hacksnooze/snooze/apiclient"
	"github.com/hacksnooze/snooze/fakeservice"
)

// newTestClient spins up the fake service behind a real HTTP server and
// points a Client at it.
func newTestClient(c *qt.C) (*apiclient.Client, *fakeservice.Service) {
	svc := fakeservice.New()
	ts := httptest.NewServer(svc.Handler())
	c.Cleanup(ts.Close)

	return apiclient.New(ts.URL, zerolog.Nop()), svc
}

func TestClientStories(t *testing.T) {
	c := qt.New(t)

	c.Run("list on an empty feed", func(c *qt.C) {
		client, _ := newTestClient(c)

		stories, err := client.ListStories()
		c.Assert(err, qt.IsNil)
		c.Assert(stories, qt.HasLen, 0)
	})

	c.Run("create then list then delete", func(c *qt.C) {
		client, _ := newTestClient(c)

		_, token, err := client.Signup("alice", "pw123", "Alice A")
		c.Assert(err, qt.IsNil)

		created, err := client.CreateStory(token, snooze.Submission{
			Title:  "Foobar",
			Author: "Alice A",
			URL:    "http://foobar.com",
		})
		c.Assert(err, qt.IsNil)
		c.Assert(created["title"], qt.Equals, "Foobar")
		c.Assert(created["username"], qt.Equals, "alice")
		c.Assert(created["storyId"], qt.Not(qt.Equals), "")

		stories, err := client.ListStories()
		c.Assert(err, qt.IsNil)
		c.Assert(stories, qt.HasLen, 1)
		c.Assert(stories[0]["storyId"], qt.Equals, created["storyId"])

		err = client.DeleteStory(token, created["storyId"].(string))
		c.Assert(err, qt.IsNil)

		stories, err = client.ListStories()
		c.Assert(err, qt.IsNil)
		c.Assert(stories, qt.HasLen, 0)
	})

	c.Run("create with an invalid token fails with AuthError", func(c *qt.C) {
		client, _ := newTestClient(c)

		_, err := client.CreateStory("bogus", snooze.Submission{
			Title:  "Foobar",
			Author: "Alice A",
			URL:    "http://foobar.com",
		})

		var authErr *snooze.AuthError
		c.Assert(errors.As(err, &authErr), qt.IsTrue)
	})
}

func TestClientAuth(t *testing.T) {
	c := qt.New(t)

	c.Run("signup and login round-trip the profile and token", func(c *qt.C) {
		client, _ := newTestClient(c)

		user, token, err := client.Signup("alice", "pw123", "Alice A")
		c.Assert(err, qt.IsNil)
		c.Assert(token, qt.Not(qt.Equals), "")
		c.Assert(user["username"], qt.Equals, "alice")
		c.Assert(user["name"], qt.Equals, "Alice A")

		user, token2, err := client.Login("alice", "pw123")
		c.Assert(err, qt.IsNil)
		c.Assert(token2, qt.Not(qt.Equals), "")
		c.Assert(token2, qt.Not(qt.Equals), token)
		c.Assert(user["name"], qt.Equals, "Alice A")
	})

	c.Run("login rejection carries the server reason", func(c *qt.C) {
		client, _ := newTestClient(c)

		_, _, err := client.Signup("alice", "pw123", "Alice A")
		c.Assert(err, qt.IsNil)

		_, _, err = client.Login("alice", "wrong")
		var authErr *snooze.AuthError
		c.Assert(errors.As(err, &authErr), qt.IsTrue)
		c.Assert(authErr.UserMessage(), qt.Equals, "invalid username or password")
	})

	c.Run("fetch user requires a matching token", func(c *qt.C) {
		client, _ := newTestClient(c)

		_, token, err := client.Signup("alice", "pw123", "Alice A")
		c.Assert(err, qt.IsNil)

		user, err := client.FetchUser(token, "alice")
		c.Assert(err, qt.IsNil)
		c.Assert(user["username"], qt.Equals, "alice")

		_, err = client.FetchUser("bogus", "alice")
		var authErr *snooze.AuthError
		c.Assert(errors.As(err, &authErr), qt.IsTrue)
	})

	c.Run("unreachable server is a plain error, not an AuthError", func(c *qt.C) {
		client := apiclient.New("http://127.0.0.1:1", zerolog.Nop())

		_, err := client.ListStories()
		c.Assert(err, qt.Not(qt.IsNil))
		var authErr *snooze.AuthError
		c.Assert(errors.As(err, &authErr), qt.IsFalse)
	})
}

func TestClientFavorites(t *testing.T) {
	c := qt.New(t)

	client, _ := newTestClient(c)

	_, token, err := client.Signup("alice", "pw123", "Alice A")
	c.Assert(err, qt.IsNil)

	created, err := client.CreateStory(token, snooze.Submission{
		Title:  "Foobar",
		Author: "Alice A",
		URL:    "http://foobar.com",
	})
	c.Assert(err, qt.IsNil)
	id := created["storyId"].(string)

	c.Assert(client.AddFavorite(token, "alice", id), qt.IsNil)

	user, err := client.FetchUser(token, "alice")
	c.Assert(err, qt.IsNil)
	favorites := user["favorites"].([]interface{})
	c.Assert(favorites, qt.HasLen, 1)

	c.Assert(client.RemoveFavorite(token, "alice", id), qt.IsNil)

	user, err = client.FetchUser(token, "alice")
	c.Assert(err, qt.IsNil)
	c.Assert(user["favorites"].([]interface{}), qt.HasLen, 0)
}
