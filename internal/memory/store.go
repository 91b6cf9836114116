// Package memory keeps posts in process memory, the storage mode the server
// falls back to when no database path is configured. There are no accounts in
// this mode: the post form carries a free-form author name, and anyone may
// edit or delete any post.
package memory

import (
	"sync"
	"time"
)

const dateLayout = "1/2/2006, 3:04 PM"

type Post struct {
	ID       int
	Title    string
	Name     string
	Date     string
	Content  string
	Category string
}

// Store guards all state with one mutex. Post ids come from a counter that
// only ever increases, so an id freed by a delete is never handed out again.
type Store struct {
	mu         sync.Mutex
	nextID     int
	posts      []Post
	categories []string
	seen       map[string]bool
	now        func() time.Time
}

func NewStore() *Store {
	s := &Store{seen: make(map[string]bool), now: time.Now}
	for _, c := range []string{"Tech", "Lifestyle", "Education"} {
		s.ensureLocked(c)
	}
	seed := []Post{
		{Title: "Understanding Cloud Computing", Name: "Charlie", Date: "8/28/2024, 9:00 AM",
			Content: "Cloud computing offers businesses scalable and flexible computing resources, reducing costs and improving efficiency.", Category: "Tech"},
		{Title: "Healthy Lifestyle Tips", Name: "Bob", Date: "9/3/2024, 2:45 PM",
			Content: "Maintaining a healthy lifestyle requires a balanced diet, regular exercise, and mental well-being practices.", Category: "Lifestyle"},
		{Title: "The Future of Tech", Name: "Alice", Date: "9/5/2024, 10:30 AM",
			Content: "Technology is advancing faster than ever, with AI and machine learning paving the way for new innovations.", Category: "Tech"},
	}
	for _, p := range seed {
		p.ID = s.nextID
		s.nextID++
		s.posts = append(s.posts, p)
	}
	return s
}

func (s *Store) Create(title, name, content, category string) Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLocked(category)
	p := Post{
		ID:       s.nextID,
		Title:    title,
		Name:     name,
		Date:     s.now().Format(dateLayout),
		Content:  content,
		Category: category,
	}
	s.nextID++
	s.posts = append(s.posts, p)
	return p
}

func (s *Store) List() []Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Post, len(s.posts))
	copy(out, s.posts)
	return out
}

func (s *Store) Get(id int) (Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.posts {
		if p.ID == id {
			return p, true
		}
	}
	return Post{}, false
}

// Update overwrites title, author name, content and date. Id and category
// stay as they were. Returns false when the id is unknown.
func (s *Store) Update(id int, title, name, content string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID == id {
			s.posts[i].Title = title
			s.posts[i].Name = name
			s.posts[i].Content = content
			s.posts[i].Date = s.now().Format(dateLayout)
			return true
		}
	}
	return false
}

// Delete is idempotent: an unknown id is a no-op.
func (s *Store) Delete(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.posts {
		if p.ID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			return
		}
	}
}

// Ensure adds the category label if it is not registered yet. The registry
// never shrinks, even when the last post in a category is deleted.
func (s *Store) Ensure(category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLocked(category)
}

func (s *Store) ensureLocked(category string) {
	if category == "" || s.seen[category] {
		return
	}
	s.seen[category] = true
	s.categories = append(s.categories, category)
}

func (s *Store) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.categories))
	copy(out, s.categories)
	return out
}
