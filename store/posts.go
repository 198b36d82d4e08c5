package store

import (
	"sync"

	"github.com/oseikofi/campusfeed/models"
)

// Posts is the ordered in-memory post collection. Insertion order is the
// canonical read order; removal deletes the whole post including its
// replies. All methods return copies so callers never hold references into
// the guarded slice.
type Posts struct {
	mu    sync.Mutex
	items []models.Post
}

// NewPosts creates an empty post store.
func NewPosts() *Posts {
	return &Posts{}
}

// Append adds a post at the end of the feed.
func (s *Posts) Append(post models.Post) {
	s.mu.Lock()
	s.items = append(s.items, post)
	s.mu.Unlock()
}

// FindByID returns a copy of the post with the given id.
func (s *Posts) FindByID(id string) (models.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			return clonePost(s.items[i]), true
		}
	}
	return models.Post{}, false
}

// AppendReply appends a reply to the post's reply sequence, preserving
// insertion order, and returns a copy of the updated post.
func (s *Posts) AppendReply(postID string, reply models.Reply) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == postID {
			s.items[i].Replies = append(s.items[i].Replies, reply)
			return clonePost(s.items[i]), nil
		}
	}
	return models.Post{}, ErrPostNotFound
}

// Remove deletes a post after checking ownership and returns the removed
// post so the caller can cascade media cleanup over it and its replies.
func (s *Posts) Remove(postID, requester string) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID != postID {
			continue
		}
		if s.items[i].Sender != requester {
			return models.Post{}, ErrNotOwner
		}
		removed := s.items[i]
		s.items = append(s.items[:i], s.items[i+1:]...)
		return removed, nil
	}
	return models.Post{}, ErrPostNotFound
}

// SnapshotFor returns the posts visible to the user (general room plus the
// user's own school room) in existing insertion order.
func (s *Posts) SnapshotFor(user models.User) []models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]models.Post, 0)
	for i := range s.items {
		if user.CanAccess(s.items[i].Room) {
			snapshot = append(snapshot, clonePost(s.items[i]))
		}
	}
	return snapshot
}

// Len returns the number of stored posts.
func (s *Posts) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func clonePost(p models.Post) models.Post {
	out := p
	if p.Replies != nil {
		out.Replies = make([]models.Reply, len(p.Replies))
		copy(out.Replies, p.Replies)
	}
	return out
}
