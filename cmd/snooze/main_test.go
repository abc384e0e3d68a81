package main

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/hacksnooze/snooze"
)

func TestFindStory(t *testing.T) {
	c := qt.New(t)

	onFeed := &snooze.Story{StoryID: "story-1", Title: "Foobar"}
	offFeed := &snooze.Story{StoryID: "story-2", Title: "Gone from the feed"}
	feed := []*snooze.Story{onFeed}
	favorites := []*snooze.Story{offFeed, onFeed}

	c.Run("resolves from the feed first", func(c *qt.C) {
		c.Assert(findStory("story-1", feed, favorites), qt.Equals, onFeed)
	})

	c.Run("falls back to favorites for stories no longer on the feed", func(c *qt.C) {
		c.Assert(findStory("story-2", feed, favorites), qt.Equals, offFeed)
	})

	c.Run("unknown id yields nil", func(c *qt.C) {
		c.Assert(findStory("nope", feed, favorites), qt.IsNil)
	})
}
