package fakeservice

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/hacksnooze/snooze"
)

// Handler exposes the fake service over the real REST contract, so the HTTP
// client can be exercised end to end against an httptest server.
func (s *Service) Handler() http.Handler {
	router := httprouter.New()

	router.GET("/stories", s.handleListStories)
	router.POST("/stories", s.handleCreateStory)
	router.DELETE("/stories/:id", s.handleDeleteStory)
	router.POST("/signup", s.handleSignup)
	router.POST("/login", s.handleLogin)
	router.GET("/users/:username", s.handleFetchUser)
	router.POST("/users/:username/favorites/:storyId", s.handleAddFavorite)
	router.DELETE("/users/:username/favorites/:storyId", s.handleRemoveFavorite)

	return router
}

func (s *Service) handleListStories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	stories, err := s.ListStories()
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, map[string]interface{}{"stories": stories})
}

func (s *Service) handleCreateStory(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		Token string `json:"token"`
		Story struct {
			Title  string `json:"title"`
			Author string `json:"author"`
			URL    string `json:"url"`
		} `json:"story"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sub := snooze.Submission{Title: body.Story.Title, Author: body.Story.Author, URL: body.Story.URL}
	story, err := s.CreateStory(body.Token, sub)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, map[string]interface{}{"story": story})
}

func (s *Service) handleDeleteStory(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	token, err := decodeToken(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.DeleteStory(token, params.ByName("id")); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, map[string]interface{}{})
}

func (s *Service) handleSignup(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		User struct {
			Username string `json:"username"`
			Password string `json:"password"`
			Name     string `json:"name"`
		} `json:"user"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, token, err := s.Signup(body.User.Username, body.User.Password, body.User.Name)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, map[string]interface{}{"user": user, "token": token})
}

func (s *Service) handleLogin(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		User struct {
			Username string `json:"username"`
			Password string `json:"password"`
		} `json:"user"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, token, err := s.Login(body.User.Username, body.User.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, map[string]interface{}{"user": user, "token": token})
}

func (s *Service) handleFetchUser(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	token := r.URL.Query().Get("token")

	user, err := s.FetchUser(token, params.ByName("username"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, map[string]interface{}{"user": user})
}

func (s *Service) handleAddFavorite(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	token, err := decodeToken(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.AddFavorite(token, params.ByName("username"), params.ByName("storyId")); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, map[string]interface{}{})
}

func (s *Service) handleRemoveFavorite(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	token, err := decodeToken(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.RemoveFavorite(token, params.ByName("username"), params.ByName("storyId")); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, map[string]interface{}{})
}

func decodeToken(r *http.Request) (string, error) {
	var body struct {
		Token string `json:"token"`
	}
	err := json.NewDecoder(r.Body).Decode(&body)
	return body.Token, err
}

func respondJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var authErr *snooze.AuthError
	if errors.As(err, &authErr) {
		status = http.StatusUnauthorized
	}

	msg := err.Error()
	if um, ok := err.(snooze.UserMessager); ok {
		msg = um.UserMessage()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{"message": msg},
	})
}
