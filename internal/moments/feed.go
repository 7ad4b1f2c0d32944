// Package moments models the friend-circle feed: posts with likes and
// threaded comments, newest first.
package moments

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"phonechat/internal/logging"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned for an unknown post ID.
	ErrNotFound = errors.New("post not found")
	// ErrEmptyComment is returned when a comment has no author or content.
	ErrEmptyComment = errors.New("empty comment")
)

// Comment is one line under a post. To is set for replies.
type Comment struct {
	By      string
	To      string
	Content string
}

// Post is one friend-circle entry.
type Post struct {
	ID       string
	UserName string
	Avatar   string
	Text     string
	Likes    []string
	Comments []Comment
	At       time.Time
}

func (p Post) clone() Post {
	p.Likes = slices.Clone(p.Likes)
	p.Comments = slices.Clone(p.Comments)
	return p
}

// LikedBy reports whether user has liked the post.
func (p Post) LikedBy(user string) bool {
	return slices.Contains(p.Likes, user)
}

// Feed holds posts ordered newest first.
type Feed struct {
	posts []Post
}

// NewFeed builds a feed from posts, assigning IDs where missing.
func NewFeed(posts []Post) *Feed {
	f := &Feed{}
	for _, p := range posts {
		f.Add(p)
	}
	return f
}

// Add inserts a post keeping newest-first order and returns its ID.
func (f *Feed) Add(p Post) string {
	p = p.clone()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	i := sort.Search(len(f.posts), func(i int) bool { return f.posts[i].At.Before(p.At) })
	f.posts = slices.Insert(f.posts, i, p)
	logging.Get(logging.CategoryMoments).Debug("add post %s by %s", p.ID, p.UserName)
	return p.ID
}

// Posts returns copies of the posts in display order.
func (f *Feed) Posts() []Post {
	out := make([]Post, len(f.posts))
	for i, p := range f.posts {
		out[i] = p.clone()
	}
	return out
}

// Len returns the number of posts.
func (f *Feed) Len() int {
	return len(f.posts)
}

func (f *Feed) index(id string) (int, error) {
	for i := range f.posts {
		if f.posts[i].ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("post %s: %w", id, ErrNotFound)
}

// ToggleLike adds user to the likes of a post, or removes them if present.
// It reports whether the user likes the post afterwards.
func (f *Feed) ToggleLike(id, user string) (bool, error) {
	i, err := f.index(id)
	if err != nil {
		return false, err
	}
	p := &f.posts[i]
	if j := slices.Index(p.Likes, user); j >= 0 {
		p.Likes = slices.Delete(p.Likes, j, j+1)
		return false, nil
	}
	p.Likes = append(p.Likes, user)
	return true, nil
}

// AddComment appends a comment to a post.
func (f *Feed) AddComment(id string, c Comment) error {
	if strings.TrimSpace(c.By) == "" || strings.TrimSpace(c.Content) == "" {
		return ErrEmptyComment
	}
	i, err := f.index(id)
	if err != nil {
		return err
	}
	f.posts[i].Comments = append(f.posts[i].Comments, c)
	return nil
}

// Remove deletes a post.
func (f *Feed) Remove(id string) error {
	i, err := f.index(id)
	if err != nil {
		return err
	}
	f.posts = slices.Delete(f.posts, i, i+1)
	return nil
}

// Line renders a comment as "By: Content" or "By回复To: Content".
func (c Comment) Line() string {
	if c.To != "" {
		return c.By + "回复" + c.To + ": " + c.Content
	}
	return c.By + ": " + c.Content
}

// RelativeTime renders how long ago at was, relative to now.
func RelativeTime(at, now time.Time) string {
	d := now.Sub(at)
	switch {
	case d < time.Minute:
		return "刚刚"
	case d < time.Hour:
		return fmt.Sprintf("%d分钟前", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d小时前", int(d/time.Hour))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%d天前", int(d/(24*time.Hour)))
	default:
		at = at.In(now.Location())
		return fmt.Sprintf("%d年%d月%d日", at.Year(), int(at.Month()), at.Day())
	}
}
