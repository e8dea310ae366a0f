package memory

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/jsamuelsen/console-client/internal/domain"
	"github.com/jsamuelsen/console-client/internal/ports"
)

// Users stores console users in insertion order.
type Users struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]*domain.UserInfo
	order  []int64
}

// NewUsers creates a user store holding seed.
func NewUsers(seed ...domain.UserInfo) *Users {
	s := &Users{nextID: 1, byID: make(map[int64]*domain.UserInfo)}
	for i := range seed {
		_, _ = s.Add(context.Background(), &seed[i])
	}

	return s
}

// Add stores a copy of user under a new ID. UserName must be unique.
func (s *Users) Add(_ context.Context, user *domain.UserInfo) (*domain.UserInfo, error) {
	name := strings.TrimSpace(user.UserName)
	if name == "" {
		return nil, domain.NewValidationError("userName", "is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.order {
		if strings.EqualFold(s.byID[id].UserName, name) {
			return nil, domain.NewConflictError("user", "user name "+name+" is taken")
		}
	}

	stored := cloneUser(user)
	stored.UserName = name
	stored.UserID = s.nextID

	if stored.Roles == nil {
		stored.Roles = []string{}
	}

	if stored.Buttons == nil {
		stored.Buttons = []string{}
	}

	s.nextID++
	s.byID[stored.UserID] = stored
	s.order = append(s.order, stored.UserID)

	return cloneUser(stored), nil
}

// Get returns the user with the given ID.
func (s *Users) Get(_ context.Context, id int64) (*domain.UserInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[id]
	if !ok {
		return nil, domain.NewNotFoundError("user", strconv.FormatInt(id, 10))
	}

	return cloneUser(u), nil
}

// FindByName returns the user with the given name, ignoring case.
func (s *Users) FindByName(_ context.Context, name string) (*domain.UserInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.order {
		if strings.EqualFold(s.byID[id].UserName, name) {
			return cloneUser(s.byID[id]), nil
		}
	}

	return nil, domain.NewNotFoundError("user", name)
}

// List returns one page of users whose name contains q.Name.
func (s *Users) List(_ context.Context, q ports.ListQuery) (*domain.UserListData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]domain.UserInfo, 0, len(s.order))

	for _, id := range s.order {
		if u := s.byID[id]; matches(u.UserName, q.Name) {
			matched = append(matched, *cloneUser(u))
		}
	}

	return paginate(matched, q), nil
}

func cloneUser(u *domain.UserInfo) *domain.UserInfo {
	c := *u
	c.Roles = slices.Clone(u.Roles)
	c.Buttons = slices.Clone(u.Buttons)

	return &c
}

var _ ports.UserStore = (*Users)(nil)
