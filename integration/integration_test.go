package integration

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/hacksnooze/snooze"
)

func TestAccountLifecycle(t *testing.T) {
	c := qt.New(t)
	tc := newTestContext(c)

	// sign up and receive a token
	alice, err := tc.session.Signup("alice", "pw123", "Alice A")
	c.Assert(err, qt.IsNil)
	c.Assert(alice.LoginToken, qt.Not(qt.Equals), "")
	firstToken := alice.LoginToken

	// log out, then back in: same profile, fresh token
	c.Assert(tc.session.Logout(), qt.IsNil)
	c.Assert(tc.session.Current(), qt.IsNil)

	again, err := tc.session.Login("alice", "pw123")
	c.Assert(err, qt.IsNil)
	c.Assert(again.Username, qt.Equals, "alice")
	c.Assert(again.Name, qt.Equals, "Alice A")
	c.Assert(again.LoginToken, qt.Not(qt.Equals), firstToken)
}

func TestRememberedSession(t *testing.T) {
	c := qt.New(t)

	c.Run("restore after a reload", func(c *qt.C) {
		tc := newTestContext(c)

		_, err := tc.session.Signup("alice", "pw123", "Alice A")
		c.Assert(err, qt.IsNil)

		reloaded := tc.newSession()
		user := reloaded.Restore()
		c.Assert(user, qt.Not(qt.IsNil))
		c.Assert(user.Username, qt.Equals, "alice")
	})

	c.Run("an invalid stored token means logged out, not an error", func(c *qt.C) {
		tc := newTestContext(c)

		_, err := tc.session.Signup("alice", "pw123", "Alice A")
		c.Assert(err, qt.IsNil)

		c.Assert(tc.store.Save(snooze.Credentials{Token: "bogus", Username: "alice"}), qt.IsNil)

		reloaded := tc.newSession()
		c.Assert(reloaded.Restore(), qt.IsNil)
		c.Assert(reloaded.Current(), qt.IsNil)
	})

	c.Run("logout forgets the session across reloads", func(c *qt.C) {
		tc := newTestContext(c)

		_, err := tc.session.Signup("alice", "pw123", "Alice A")
		c.Assert(err, qt.IsNil)
		c.Assert(tc.session.Logout(), qt.IsNil)

		reloaded := tc.newSession()
		c.Assert(reloaded.Restore(), qt.IsNil)
	})
}

func TestStoryFlow(t *testing.T) {
	c := qt.New(t)
	tc := newTestContext(c)

	alice, err := tc.session.Signup("alice", "pw123", "Alice A")
	c.Assert(err, qt.IsNil)

	story, list := tc.submit(alice, "Foobar", "http://foobar.com/post")

	c.Assert(list.Stories[0].StoryID, qt.Equals, story.StoryID)
	c.Assert(alice.OwnStories[0].StoryID, qt.Equals, story.StoryID)

	host, err := story.Hostname()
	c.Assert(err, qt.IsNil)
	c.Assert(host, qt.Equals, "foobar.com")

	// another user sees the story and favorites it
	bob, err := snooze.Signup(tc.client, "bob", "pw456", "Bob B")
	c.Assert(err, qt.IsNil)

	feed, err := snooze.FetchStories(tc.client)
	c.Assert(err, qt.IsNil)
	c.Assert(feed.Stories, qt.HasLen, 1)

	c.Assert(bob.AddFavorite(feed.Stories[0]), qt.IsNil)
	c.Assert(bob.IsFavorite(feed.Stories[0]), qt.IsTrue)

	// the favorite survives a fresh login
	bobAgain, err := snooze.Login(tc.client, "bob", "pw456")
	c.Assert(err, qt.IsNil)
	c.Assert(bobAgain.Favorites, qt.HasLen, 1)
	c.Assert(bobAgain.Favorites[0].StoryID, qt.Equals, story.StoryID)

	// alice removes her story; every collection drops it
	c.Assert(alice.AddFavorite(story), qt.IsNil)
	c.Assert(list.RemoveStory(alice, story.StoryID), qt.IsNil)
	c.Assert(list.Stories, qt.HasLen, 0)
	c.Assert(alice.OwnStories, qt.HasLen, 0)
	c.Assert(alice.Favorites, qt.HasLen, 0)

	// removing it again is still a success
	c.Assert(list.RemoveStory(alice, story.StoryID), qt.IsNil)

	feed, err = snooze.FetchStories(tc.client)
	c.Assert(err, qt.IsNil)
	c.Assert(feed.Stories, qt.HasLen, 0)
}

func TestValidationOverHTTP(t *testing.T) {
	c := qt.New(t)
	tc := newTestContext(c)

	alice, err := tc.session.Signup("alice", "pw123", "Alice A")
	c.Assert(err, qt.IsNil)

	list, err := snooze.FetchStories(tc.client)
	c.Assert(err, qt.IsNil)

	_, err = list.AddStory(alice, snooze.Submission{URL: "http://foobar.com"})
	c.Assert(err, qt.ErrorMatches, `ValidationError: .*title.*`)
	c.Assert(list.Stories, qt.HasLen, 0)
}
