package server

import (
	"database/sql"
	"html/template"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"miniblog/internal/memory"
	"miniblog/internal/models"
)

type Server struct {
	DB  *sql.DB       // nil in memory mode
	Mem *memory.Store // nil in database mode

	tmpl map[string]*template.Template

	CookieName string
}

// New builds a database-backed server: accounts, cookie sessions and
// owner-guarded posts.
func New(db *sql.DB, templateDir string) (*Server, error) {
	templates, err := parseTemplates(templateDir)
	if err != nil {
		return nil, err
	}
	return &Server{DB: db, tmpl: templates, CookieName: "session_id"}, nil
}

// NewMemory builds a server over the in-process store. No accounts exist in
// this mode, so every post is editable by anyone.
func NewMemory(store *memory.Store, templateDir string) (*Server, error) {
	templates, err := parseTemplates(templateDir)
	if err != nil {
		return nil, err
	}
	return &Server{Mem: store, tmpl: templates}, nil
}

func parseTemplates(templateDir string) (map[string]*template.Template, error) {
	templates := map[string]*template.Template{}
	layout := filepath.Join(templateDir, "layout.html")
	pages, err := filepath.Glob(filepath.Join(templateDir, "*.html"))
	if err != nil {
		return nil, err
	}
	for _, page := range pages {
		if filepath.Base(page) == "layout.html" {
			continue
		}
		t, err := template.ParseFiles(layout, page)
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(filepath.Base(page), ".html")
		templates[name] = t
	}
	return templates, nil
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	if s.Mem != nil {
		mux.HandleFunc("/", s.handleLiteIndex)
		mux.HandleFunc("/add-post", s.handleLiteAddPost)
		mux.HandleFunc("/edit-post/", s.handleLiteEditPost)
		mux.HandleFunc("/delete-post/", s.handleLiteDeletePost)
	} else {
		mux.HandleFunc("/", s.handleIndex)
		mux.HandleFunc("/signup", s.handleSignup)
		mux.HandleFunc("/signin", s.handleSignin)
		mux.HandleFunc("/signout", s.handleSignout)
		mux.HandleFunc("/account", s.requireAuth(s.handleAccount))
		mux.HandleFunc("/add-post", s.requireAuth(s.handleAddPost))
		mux.HandleFunc("/edit-post/", s.requireAuth(s.handleEditPost))
		mux.HandleFunc("/delete-post/", s.requireAuth(s.handleDeletePost))
		s.registerOAuth(mux)
	}
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))
	return mux
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.routes().ServeHTTP(w, r)
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	t, ok := s.tmpl[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}
	if err := t.ExecuteTemplate(w, "layout", data); err != nil {
		http.Error(w, "render error", http.StatusInternalServerError)
	}
}

// middleware
func (s *Server) requireAuth(next func(http.ResponseWriter, *http.Request, *models.User)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := s.currentUser(r)
		if user == nil {
			http.Redirect(w, r, "/signin", http.StatusSeeOther)
			return
		}
		next(w, r, user)
	}
}

func (s *Server) currentUser(r *http.Request) *models.User {
	cookie, err := r.Cookie(s.CookieName)
	if err != nil {
		return nil
	}
	sess, err := models.GetSession(s.DB, cookie.Value)
	if err != nil || sess.RevokedAt != nil || sess.ExpiresAt.Before(time.Now()) {
		return nil
	}
	user, err := models.GetUser(s.DB, sess.UserID)
	if err != nil {
		return nil
	}
	return user
}

// pathID extracts the numeric id from paths like /edit-post/3.
func pathID(path, prefix string) (int, bool) {
	raw := strings.TrimPrefix(path, prefix)
	id, err := strconv.Atoi(raw)
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}
