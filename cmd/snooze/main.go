// Command snooze is a terminal client for a Hack-or-Snooze-style story
// service: browse the shared feed, submit and remove stories, and manage
// favorites. It is purely a presentation layer over the snooze model; all
// state changes go through the model's operations and the feed is re-read
// after each one.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/hacksnooze/snooze"
	"github.com/hacksnooze/snooze/apiclient"
	"github.com/hacksnooze/snooze/cmd"
	"github.com/hacksnooze/snooze/scrape"
	"github.com/hacksnooze/snooze/sessionfile"
)

const usage = `usage: snooze <command> [flags]

commands:
  signup      create an account and log in
  login       log in with an existing account
  logout      log out and forget the session
  stories     show the shared feed
  submit      submit a new story
  remove      remove one of your stories
  favorites   show your favorite stories
  favorite    add a story to your favorites
  unfavorite  remove a story from your favorites
  me          show your profile
`

func main() {
	cfg := cmd.DefaultConfig()
	if err := cfg.Load(); err != nil {
		log.Fatal().Err(err).Msg("Cannot read configuration")
	}
	logger := cmd.SetupLogger(cfg)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	client := apiclient.New(cfg.APIBaseURL, logger)
	store := sessionfile.New(cfg.SessionFile)
	session := snooze.NewSession(client, store, logger)

	app := &app{session: session, service: client}

	var err error
	switch os.Args[1] {
	case "signup":
		err = app.signup(os.Args[2:])
	case "login":
		err = app.login(os.Args[2:])
	case "logout":
		err = app.logout()
	case "stories":
		err = app.stories()
	case "submit":
		err = app.submit(os.Args[2:])
	case "remove":
		err = app.remove(os.Args[2:])
	case "favorites":
		err = app.favorites()
	case "favorite":
		err = app.toggleFavorite(os.Args[2:], true)
	case "unfavorite":
		err = app.toggleFavorite(os.Args[2:], false)
	case "me":
		err = app.me()
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, notice(err))
		logger.Debug().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}

// notice translates a model error into the message shown to the user; this
// is the only place errors become notifications.
func notice(err error) string {
	if um, ok := err.(snooze.UserMessager); ok {
		return um.UserMessage()
	}
	return "Something went wrong: " + err.Error()
}

type app struct {
	session *snooze.Session
	service snooze.Service
}

// restore silently logs in with any remembered credentials, mirroring the
// startup path of the original page: failures mean "proceed logged-out".
func (a *app) restore() *snooze.User {
	return a.session.Restore()
}

// requireUser is restore for commands that only make sense logged in.
func (a *app) requireUser() (*snooze.User, error) {
	user := a.restore()
	if user == nil {
		return nil, snooze.AuthFailed("You are not logged in. Try 'snooze login'.", nil)
	}
	return user, nil
}

func (a *app) signup(args []string) error {
	fs := flag.NewFlagSet("signup", flag.ExitOnError)
	username := fs.String("username", "", "account username")
	password := fs.String("password", "", "account password")
	name := fs.String("name", "", "display name")
	fs.Parse(args)

	user, err := a.session.Signup(*username, *password, *name)
	if err != nil {
		return err
	}

	fmt.Printf("Welcome, %v! You are now logged in as %v.\n", user.Name, user.Username)
	return nil
}

func (a *app) login(args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	username := fs.String("username", "", "account username")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	user, err := a.session.Login(*username, *password)
	if err != nil {
		return err
	}

	fmt.Printf("Welcome back, %v!\n", user.Name)
	return nil
}

func (a *app) logout() error {
	if err := a.session.Logout(); err != nil {
		return err
	}

	fmt.Println("Logged out.")
	return nil
}

func (a *app) stories() error {
	user := a.restore()

	list, err := snooze.FetchStories(a.service)
	if err != nil {
		return err
	}

	for i, story := range list.Stories {
		marker := " "
		if user != nil && user.IsFavorite(story) {
			marker = "*"
		}
		fmt.Printf("%2d.%v %v\n", i+1, marker, renderStory(story))
	}

	return nil
}

func (a *app) submit(args []string) error {
	fs := flag.NewFlagSet("submit", flag.ExitOnError)
	title := fs.String("title", "", "story title (fetched from the page when omitted)")
	author := fs.String("author", "", "story author (defaults to your display name)")
	url := fs.String("url", "", "story link")
	fs.Parse(args)

	user, err := a.requireUser()
	if err != nil {
		return err
	}

	if *title == "" && *url != "" {
		t, err := scrape.Title(*url)
		if err == nil {
			*title = t
		}
	}
	if *author == "" {
		*author = user.Name
	}

	list, err := snooze.FetchStories(a.service)
	if err != nil {
		return err
	}

	story, err := list.AddStory(user, snooze.Submission{Title: *title, Author: *author, URL: *url})
	if err != nil {
		return err
	}

	fmt.Printf("Submitted %v\n", renderStory(story))
	return nil
}

func (a *app) remove(args []string) error {
	fs := flag.NewFlagSet("remove", flag.ExitOnError)
	id := fs.String("id", "", "story id")
	fs.Parse(args)

	user, err := a.requireUser()
	if err != nil {
		return err
	}

	list, err := snooze.FetchStories(a.service)
	if err != nil {
		return err
	}

	if err := list.RemoveStory(user, *id); err != nil {
		return err
	}

	fmt.Println("Removed.")
	return nil
}

func (a *app) favorites() error {
	user, err := a.requireUser()
	if err != nil {
		return err
	}

	if len(user.Favorites) == 0 {
		fmt.Println("No favorites yet.")
		return nil
	}

	for i, story := range user.Favorites {
		fmt.Printf("%2d. %v\n", i+1, renderStory(story))
	}

	return nil
}

func (a *app) toggleFavorite(args []string, add bool) error {
	name := "favorite"
	if !add {
		name = "unfavorite"
	}
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	id := fs.String("id", "", "story id")
	fs.Parse(args)

	user, err := a.requireUser()
	if err != nil {
		return err
	}

	list, err := snooze.FetchStories(a.service)
	if err != nil {
		return err
	}

	story := findStory(*id, list.Stories, user.Favorites)
	if story == nil {
		return snooze.Invalid("id")
	}

	if add {
		err = user.AddFavorite(story)
	} else {
		err = user.RemoveFavorite(story)
	}
	if err != nil {
		return err
	}

	fmt.Println("Done.")
	return nil
}

func (a *app) me() error {
	user, err := a.requireUser()
	if err != nil {
		return err
	}

	fmt.Printf("%v (%v), joined %v\n", user.Name, user.Username, user.CreatedAt.Format("2006-01-02"))
	fmt.Printf("%d stories submitted, %d favorites\n", len(user.OwnStories), len(user.Favorites))

	return nil
}

// findStory resolves a story id against the given collections in order. The
// feed comes first, then the user's favorites, so a favorited story that has
// since dropped off the feed can still be unfavorited.
func findStory(id string, collections ...[]*snooze.Story) *snooze.Story {
	for _, stories := range collections {
		for _, s := range stories {
			if s.StoryID == id {
				return s
			}
		}
	}
	return nil
}

// renderStory formats a story the way the original feed shows it: title,
// hostname, poster, id for follow-up commands.
func renderStory(story *snooze.Story) string {
	host, err := story.Hostname()
	if err != nil {
		host = "invalid link"
	}

	return fmt.Sprintf("%v (%v) by %v [%v]", story.Title, host, story.Username, story.StoryID)
}
