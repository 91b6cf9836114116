package server

import (
	"net/http"
)

// Memory-mode handlers. These mirror the database-backed ones but carry the
// author name and category in the form itself, since there are no accounts.

func (s *Server) handleLiteIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.render(w, "lite_index", map[string]any{
		"Lite":       true,
		"Posts":      s.Mem.List(),
		"Categories": s.Mem.Categories(),
	})
}

func (s *Server) handleLiteAddPost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	title := r.FormValue("title")
	name := r.FormValue("name")
	content := r.FormValue("content")
	category := r.FormValue("category")
	if err := validateLitePost(title, name, content); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.Mem.Create(title, name, content, category)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLiteEditPost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r.URL.Path, "/edit-post/")
	if !ok {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		post, ok := s.Mem.Get(id)
		if !ok {
			http.NotFound(w, r)
			return
		}
		s.render(w, "lite_edit", map[string]any{"Lite": true, "Post": post})

	case http.MethodPost:
		title := r.FormValue("title")
		name := r.FormValue("name")
		content := r.FormValue("content")
		if err := validateLitePost(title, name, content); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if !s.Mem.Update(id, title, name, content) {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleLiteDeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r.URL.Path, "/delete-post/")
	if !ok {
		http.NotFound(w, r)
		return
	}
	s.Mem.Delete(id)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
