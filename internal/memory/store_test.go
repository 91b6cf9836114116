package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSeedData(t *testing.T) {
	s := NewStore()
	require.Len(t, s.List(), 3)
	require.Equal(t, []string{"Tech", "Lifestyle", "Education"}, s.Categories())
}

func TestCreateThenList(t *testing.T) {
	s := NewStore()
	s.now = func() time.Time { return time.Date(2024, 9, 5, 10, 30, 0, 0, time.UTC) }

	p := s.Create("T", "alice", "C", "Tech")
	require.Equal(t, "9/5/2024, 10:30 AM", p.Date)

	posts := s.List()
	last := posts[len(posts)-1]
	require.Equal(t, p.ID, last.ID)
	require.Equal(t, "T", last.Title)
	require.Equal(t, "C", last.Content)
	require.Equal(t, "Tech", last.Category)
}

func TestIDsNeverReused(t *testing.T) {
	s := NewStore()
	a := s.Create("a", "x", "a", "")
	b := s.Create("b", "x", "b", "")
	s.Delete(b.ID)
	c := s.Create("c", "x", "c", "")
	require.Greater(t, c.ID, b.ID, "ids come from a counter, not the collection size")
	require.Greater(t, b.ID, a.ID)
}

func TestUpdateKeepsIDAndCategory(t *testing.T) {
	s := NewStore()
	p := s.Create("T", "alice", "C", "Tech")

	require.True(t, s.Update(p.ID, "T2", "bob", "C2"))

	got, ok := s.Get(p.ID)
	require.True(t, ok)
	require.Equal(t, p.ID, got.ID)
	require.Equal(t, "Tech", got.Category)
	require.Equal(t, "T2", got.Title)
	require.Equal(t, "bob", got.Name)
	require.Equal(t, "C2", got.Content)

	require.False(t, s.Update(9999, "x", "x", "x"))
}

func TestDeleteIdempotent(t *testing.T) {
	s := NewStore()
	p := s.Create("T", "alice", "C", "")
	before := len(s.List())

	s.Delete(p.ID)
	s.Delete(p.ID)
	require.Len(t, s.List(), before-1)

	_, ok := s.Get(p.ID)
	require.False(t, ok)
}

func TestCategoryRegistry(t *testing.T) {
	s := NewStore()

	s.Ensure("Tech")
	require.Len(t, s.Categories(), 3, "ensure is idempotent")

	s.Create("T", "alice", "C", "Travel")
	require.Contains(t, s.Categories(), "Travel")

	// deleting every Travel post does not prune the registry
	for _, p := range s.List() {
		if p.Category == "Travel" {
			s.Delete(p.ID)
		}
	}
	require.Contains(t, s.Categories(), "Travel")
}
