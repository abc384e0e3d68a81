package scrape

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestTitle(t *testing.T) {
	c := qt.New(t)

	c.Run("returns the trimmed page title", func(c *qt.C) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `<html><head><title>
				Foobar Weekly
			</title></head><body></body></html>`)
		}))
		c.Cleanup(ts.Close)

		title, err := Title(ts.URL)
		c.Assert(err, qt.IsNil)
		c.Assert(title, qt.Equals, "Foobar Weekly")
	})

	c.Run("page without a title is an error", func(c *qt.C) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `<html><body>nothing here</body></html>`)
		}))
		c.Cleanup(ts.Close)

		_, err := Title(ts.URL)
		c.Assert(err, qt.Not(qt.IsNil))
	})

	c.Run("non-200 response is an error", func(c *qt.C) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gone", http.StatusNotFound)
		}))
		c.Cleanup(ts.Close)

		_, err := Title(ts.URL)
		c.Assert(err, qt.Not(qt.IsNil))
	})
}
