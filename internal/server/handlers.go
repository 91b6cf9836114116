package server

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"miniblog/internal/models"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	posts, err := models.ListPosts(s.DB)
	if err != nil {
		log.Printf("listing posts: %v", err)
		http.Error(w, "could not load posts", http.StatusInternalServerError)
		return
	}
	s.render(w, "index", map[string]any{
		"Posts": posts,
		"User":  s.currentUser(r),
	})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.render(w, "signup", map[string]any{"User": s.currentUser(r)})

	case http.MethodPost:
		name := r.FormValue("name")
		password := r.FormValue("password")
		if err := validateCredentials(name, password); err != nil {
			s.render(w, "signup", map[string]any{"Error": err.Error()})
			return
		}
		user, err := models.CreateUser(s.DB, name, password)
		if errors.Is(err, models.ErrNameTaken) {
			s.render(w, "signup", map[string]any{"Error": "that name is already taken"})
			return
		}
		if err != nil {
			log.Printf("creating user: %v", err)
			http.Error(w, "could not create account", http.StatusInternalServerError)
			return
		}
		if err := s.startSession(w, user); err != nil {
			log.Printf("creating session: %v", err)
			http.Error(w, "could not create session", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleSignin(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.render(w, "signin", map[string]any{
			"User":   s.currentUser(r),
			"Google": googleOauthConfig.ClientID != "",
			"Github": githubOauthConfig.ClientID != "",
		})

	case http.MethodPost:
		name := r.FormValue("name")
		password := r.FormValue("password")
		user, err := models.Authenticate(s.DB, name, password)
		if errors.Is(err, models.ErrInvalidCredentials) {
			s.render(w, "signin", map[string]any{"Error": "invalid name or password"})
			return
		}
		if err != nil {
			log.Printf("authenticating %q: %v", name, err)
			http.Error(w, "could not sign in", http.StatusInternalServerError)
			return
		}
		if err := s.startSession(w, user); err != nil {
			log.Printf("creating session: %v", err)
			http.Error(w, "could not create session", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleSignout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(s.CookieName)
	if err == nil {
		if err := models.RevokeSession(s.DB, cookie.Value); err != nil {
			log.Printf("revoking session: %v", err)
		}
		http.SetCookie(w, &http.Cookie{Name: s.CookieName, Path: "/", MaxAge: -1})
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleAccount(w http.ResponseWriter, r *http.Request, user *models.User) {
	switch r.Method {
	case http.MethodGet:
		s.render(w, "account", map[string]any{"User": user})

	case http.MethodPost:
		newName := r.FormValue("new_name")
		newPassword := r.FormValue("new_password")
		if err := validateCredentials(newName, newPassword); err != nil {
			s.render(w, "account", map[string]any{"User": user, "Error": err.Error()})
			return
		}
		err := models.UpdateUser(s.DB, user.ID, newName, newPassword)
		if errors.Is(err, models.ErrNameTaken) {
			s.render(w, "account", map[string]any{"User": user, "Error": "that name is already taken"})
			return
		}
		if err != nil {
			log.Printf("updating user %d: %v", user.ID, err)
			http.Error(w, "could not update account", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleAddPost(w http.ResponseWriter, r *http.Request, user *models.User) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	title := r.FormValue("title")
	body := r.FormValue("content")
	if err := validatePostFields(title, body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, err := models.CreatePost(s.DB, user, title, body); err != nil {
		log.Printf("creating post: %v", err)
		http.Error(w, "could not create post", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleEditPost(w http.ResponseWriter, r *http.Request, user *models.User) {
	id, ok := pathID(r.URL.Path, "/edit-post/")
	if !ok {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		post, err := models.GetPost(s.DB, id)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		if post.CreatorID != user.ID {
			http.Error(w, "you are not the creator of this post", http.StatusForbidden)
			return
		}
		s.render(w, "edit_post", map[string]any{"User": user, "Post": post})

	case http.MethodPost:
		title := r.FormValue("title")
		body := r.FormValue("content")
		if err := validatePostFields(title, body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		err := models.UpdatePost(s.DB, id, user, title, body)
		switch {
		case errors.Is(err, models.ErrNotAuthorized):
			http.Error(w, "you are not the creator of this post", http.StatusForbidden)
		case errors.Is(err, sql.ErrNoRows):
			http.NotFound(w, r)
		case err != nil:
			log.Printf("updating post %d: %v", id, err)
			http.Error(w, "could not update post", http.StatusInternalServerError)
		default:
			http.Redirect(w, r, "/", http.StatusSeeOther)
		}
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request, user *models.User) {
	id, ok := pathID(r.URL.Path, "/delete-post/")
	if !ok {
		http.NotFound(w, r)
		return
	}
	err := models.DeletePost(s.DB, id, user.ID)
	switch {
	case errors.Is(err, models.ErrNotAuthorized):
		http.Error(w, "you are not the creator of this post", http.StatusForbidden)
	case err != nil:
		log.Printf("deleting post %d: %v", id, err)
		http.Error(w, "could not delete post", http.StatusInternalServerError)
	default:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func (s *Server) startSession(w http.ResponseWriter, user *models.User) error {
	sid := uuid.NewString()
	expires := time.Now().Add(24 * time.Hour)
	if err := models.CreateSession(s.DB, user.ID, sid, expires); err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{Name: s.CookieName, Value: sid, Path: "/", Expires: expires, HttpOnly: true})
	return nil
}
