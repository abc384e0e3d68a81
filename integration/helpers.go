package integration

import (
	"net/http/httptest"
	"path/filepath"

	qt "github.com/frankban/quicktest"
	"github.com/rs/zerolog"

	"github.com/hacksnooze/snooze"
	"github.com/hacksnooze/snooze/apiclient"
	"github.com/hacksnooze/snooze/fakeservice"
	"github.com/hacksnooze/snooze/sessionfile"
)

// testingLogWriter is an output target for zerolog which will print on the
// testing logger.
type testingLogWriter struct {
	c *qt.C
}

// Write outputs the passed bytes on the test logger.
func (l *testingLogWriter) Write(p []byte) (n int, err error) {
	str := string(p[0 : len(p)-1]) // drop the final \n
	l.c.Log(str)
	return len(p), nil
}

// A struct to hold the whole client stack wired against an in-memory service
// served over real HTTP. Provides a few helpers for convenience.
type testContext struct {
	c       *qt.C
	backend *fakeservice.Service
	server  *httptest.Server
	client  *apiclient.Client
	store   *sessionfile.Store
	session *snooze.Session
}

// newTestContext boots the fake service behind an httptest server and builds
// the client, session store and session against it.
func newTestContext(c *qt.C) *testContext {
	tc := testContext{c: c}

	w := testingLogWriter{c}
	output := zerolog.ConsoleWriter{Out: &w, NoColor: true}
	logger := zerolog.New(output)

	tc.backend = fakeservice.New()
	tc.server = httptest.NewServer(tc.backend.Handler())
	c.Cleanup(tc.server.Close)

	tc.client = apiclient.New(tc.server.URL, logger)
	tc.store = sessionfile.New(filepath.Join(c.TempDir(), "session.json"))
	tc.session = snooze.NewSession(tc.client, tc.store, logger)

	return &tc
}

// newSession returns a fresh session over the same store and service, as
// after a page reload.
func (tc *testContext) newSession() *snooze.Session {
	w := testingLogWriter{tc.c}
	output := zerolog.ConsoleWriter{Out: &w, NoColor: true}
	logger := zerolog.New(output)

	return snooze.NewSession(tc.client, tc.store, logger)
}

// submit creates a story through the model on behalf of user and returns it
// along with the refreshed feed.
func (tc *testContext) submit(user *snooze.User, title, url string) (*snooze.Story, *snooze.StoryList) {
	list, err := snooze.FetchStories(tc.client)
	tc.c.Assert(err, qt.IsNil)

	story, err := list.AddStory(user, snooze.Submission{Title: title, Author: user.Name, URL: url})
	tc.c.Assert(err, qt.IsNil)

	return story, list
}
