package service

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/niksmo/bloomora/internal/core/domain"
)

// Care is the visitor's plant care planner.
type Care struct {
	mu    sync.RWMutex
	tasks []domain.CareTask
}

func NewCare(tasks []domain.CareTask) *Care {
	return &Care{tasks: slices.Clone(tasks)}
}

func (c *Care) Tasks() []domain.CareTask {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.tasks)
}

// DueToday returns open tasks due on the calendar day of now or earlier.
func (c *Care) DueToday(now time.Time) []domain.CareTask {
	c.mu.RLock()
	defer c.mu.RUnlock()

	y, m, d := now.Date()
	endOfDay := time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())

	var due []domain.CareTask
	for _, t := range c.tasks {
		if !t.Completed && t.Due.Before(endOfDay) {
			due = append(due, t)
		}
	}
	return due
}

func (c *Care) Complete(id string) (domain.CareTask, error) {
	const op = "Care.Complete"

	c.mu.Lock()
	defer c.mu.Unlock()

	i := slices.IndexFunc(c.tasks, func(t domain.CareTask) bool {
		return t.ID == id
	})
	if i < 0 {
		return domain.CareTask{}, fmt.Errorf("%s: %w", op, ErrTaskNotFound)
	}
	c.tasks[i].Completed = true
	return c.tasks[i], nil
}

type Blog struct {
	posts []domain.BlogPost
}

func NewBlog(posts []domain.BlogPost) Blog {
	return Blog{slices.Clone(posts)}
}

func (b Blog) Posts() []domain.BlogPost {
	return slices.Clone(b.posts)
}

func (b Blog) Post(id string) (domain.BlogPost, error) {
	i := slices.IndexFunc(b.posts, func(p domain.BlogPost) bool {
		return p.ID == id
	})
	if i < 0 {
		return domain.BlogPost{}, ErrPostNotFound
	}
	return b.posts[i], nil
}
