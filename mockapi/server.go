// Package mockapi is an in-memory stand-in for the Story Spoiler API. It answers the same
// endpoints with the same status codes and messages as the real service, so the test suite can
// be exercised without network access.
package mockapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/storyspoiler/story-contract-tests/framework"
	"github.com/storyspoiler/story-contract-tests/servicedef"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
)

const tokenLifetime = time.Hour

// Server holds the mock API's state: the one account that may log in, the key it signs access
// tokens with, and the stories created so far.
type Server struct {
	username   string
	password   string
	signingKey []byte
	store      *storyStore
	logger     framework.Logger
	router     chi.Router
}

// NewServer creates a Server that accepts only the given credentials.
func NewServer(username, password string, logger framework.Logger) *Server {
	if logger == nil {
		logger = framework.NullLogger()
	}
	s := &Server{
		username:   username,
		password:   password,
		signingKey: []byte("mock-story-api:" + username),
		store:      newStoryStore(),
		logger:     logger,
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(s.logRequests)
	r.Post(servicedef.AuthenticationPath, s.authenticate)
	r.Group(func(r chi.Router) {
		r.Use(s.requireToken)
		r.Post(servicedef.CreateStoryPath, s.createStory)
		r.Put(servicedef.EditStoryPathPrefix+"{id}", s.editStory)
		r.Get(servicedef.AllStoriesPath, s.listStories)
		r.Delete(servicedef.DeleteStoryPathPrefix+"{id}", s.deleteStory)
	})
	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Stories returns the stories that currently exist, in creation order.
func (s *Server) Stories() []servicedef.Story {
	return s.store.list()
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Printf("%s %s -> %d", r.Method, r.URL.Path, ww.Status())
	})
}

func (s *Server) authenticate(w http.ResponseWriter, r *http.Request) {
	var params servicedef.AuthenticationParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeMessage(w, http.StatusBadRequest, "Malformed request body")
		return
	}
	if params.Username != s.username || params.Password != s.password {
		writeMessage(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	now := time.Now()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   params.Username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
	}).SignedString(s.signingKey)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Could not issue token")
		return
	}
	writeJSON(w, http.StatusOK, servicedef.AuthenticationResponse{AccessToken: token})
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, err := jwt.Parse(strings.TrimPrefix(header, "Bearer "),
			func(*jwt.Token) (interface{}, error) { return s.signingKey, nil },
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithSubject(s.username),
			jwt.WithExpirationRequired(),
		)
		if err != nil {
			s.logger.Printf("Rejected token: %s", err)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) createStory(w http.ResponseWriter, r *http.Request) {
	var params servicedef.StoryParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeMessage(w, http.StatusBadRequest, "Malformed request body")
		return
	}
	if params.Title == "" || params.Description == "" {
		writeMessage(w, http.StatusBadRequest, "Title and description are required")
		return
	}
	id := s.store.create(params)
	writeJSON(w, http.StatusCreated, servicedef.StoryResponse{Msg: servicedef.MessageCreated, StoryID: id})
}

func (s *Server) editStory(w http.ResponseWriter, r *http.Request) {
	var params servicedef.StoryParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeMessage(w, http.StatusBadRequest, "Malformed request body")
		return
	}
	if !s.store.update(chi.URLParam(r, "id"), params) {
		writeMessage(w, http.StatusNotFound, servicedef.MessageNoSpoilers)
		return
	}
	writeMessage(w, http.StatusOK, servicedef.MessageEdited)
}

func (s *Server) listStories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.list())
}

func (s *Server) deleteStory(w http.ResponseWriter, r *http.Request) {
	if !s.store.delete(chi.URLParam(r, "id")) {
		writeMessage(w, http.StatusBadRequest, servicedef.MessageUnableToDelete)
		return
	}
	writeMessage(w, http.StatusOK, servicedef.MessageDeleted)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, servicedef.StoryResponse{Msg: message})
}
