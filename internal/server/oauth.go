package server

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"

	"miniblog/internal/models"
)

var (
	googleOauthConfig = &oauth2.Config{
		RedirectURL:  os.Getenv("OAUTH_BASE_URL") + "/auth/google/callback",
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email"},
		Endpoint:     google.Endpoint,
	}

	githubOauthConfig = &oauth2.Config{
		RedirectURL:  os.Getenv("OAUTH_BASE_URL") + "/auth/github/callback",
		ClientID:     os.Getenv("GITHUB_CLIENT_ID"),
		ClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
		Scopes:       []string{"user:email"},
		Endpoint:     github.Endpoint,
	}

	oauthState = uuid.NewString()
)

// registerOAuth wires provider sign-in only for providers with credentials in
// the environment.
func (s *Server) registerOAuth(mux *http.ServeMux) {
	if googleOauthConfig.ClientID != "" {
		mux.HandleFunc("/auth/google/login", oauthLogin(googleOauthConfig))
		mux.HandleFunc("/auth/google/callback",
			s.oauthCallback(googleOauthConfig, "https://www.googleapis.com/oauth2/v2/userinfo", parseGoogleUser))
	}
	if githubOauthConfig.ClientID != "" {
		mux.HandleFunc("/auth/github/login", oauthLogin(githubOauthConfig))
		mux.HandleFunc("/auth/github/callback",
			s.oauthCallback(githubOauthConfig, "https://api.github.com/user", parseGithubUser))
	}
}

func oauthLogin(cfg *oauth2.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, cfg.AuthCodeURL(oauthState), http.StatusTemporaryRedirect)
	}
}

func (s *Server) oauthCallback(cfg *oauth2.Config, userInfoURL string, parseUser func([]byte) (string, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.FormValue("state") != oauthState {
			http.Error(w, "invalid oauth state", http.StatusBadRequest)
			return
		}
		token, err := cfg.Exchange(context.Background(), r.FormValue("code"))
		if err != nil {
			log.Printf("oauth code exchange: %v", err)
			http.Redirect(w, r, "/signin", http.StatusSeeOther)
			return
		}
		resp, err := cfg.Client(context.Background(), token).Get(userInfoURL)
		if err != nil {
			log.Printf("oauth userinfo fetch: %v", err)
			http.Redirect(w, r, "/signin", http.StatusSeeOther)
			return
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			log.Printf("oauth userinfo read: %v", err)
			http.Redirect(w, r, "/signin", http.StatusSeeOther)
			return
		}
		name, err := parseUser(body)
		if err != nil || name == "" {
			log.Printf("oauth userinfo parse: %v", err)
			http.Redirect(w, r, "/signin", http.StatusSeeOther)
			return
		}
		user, err := models.FindOrCreateOAuthUser(s.DB, name)
		if err != nil {
			log.Printf("oauth user lookup: %v", err)
			http.Error(w, "could not sign in", http.StatusInternalServerError)
			return
		}
		if err := s.startSession(w, user); err != nil {
			log.Printf("creating session: %v", err)
			http.Error(w, "could not create session", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func parseGoogleUser(body []byte) (string, error) {
	var info struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(body, &info); err != nil {
		return "", err
	}
	return info.Email, nil
}

func parseGithubUser(body []byte) (string, error) {
	var info struct {
		Login string `json:"login"`
	}
	if err := json.Unmarshal(body, &info); err != nil {
		return "", err
	}
	return info.Login, nil
}
