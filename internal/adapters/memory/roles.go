package memory

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jsamuelsen/console-client/internal/domain"
	"github.com/jsamuelsen/console-client/internal/ports"
)

// Roles stores roles in insertion order. Role codes are unique.
type Roles struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]*domain.Role
	order  []int64
	now    func() time.Time
}

// NewRoles creates a role store holding seed.
func NewRoles(seed ...domain.Role) *Roles {
	s := &Roles{nextID: 1, byID: make(map[int64]*domain.Role), now: time.Now}
	for i := range seed {
		_, _ = s.Add(context.Background(), &seed[i])
	}

	return s
}

// List returns one page of roles whose name contains q.Name.
func (s *Roles) List(_ context.Context, q ports.ListQuery) (*domain.Page[domain.Role], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]domain.Role, 0, len(s.order))

	for _, id := range s.order {
		if r := s.byID[id]; matches(r.RoleName, q.Name) {
			matched = append(matched, *r)
		}
	}

	return paginate(matched, q), nil
}

// Add stores a new role.
func (s *Roles) Add(_ context.Context, role *domain.Role) (*domain.Role, error) {
	if err := validateRole(role); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.codeTakenLocked(role.RoleCode, 0) {
		return nil, domain.NewConflictError("role", "role code "+role.RoleCode+" is taken")
	}

	stored := *role
	stored.ID = s.nextID

	if stored.CreateTime == "" {
		stored.CreateTime = stamp(s.now)
	}

	s.nextID++
	s.byID[stored.ID] = &stored
	s.order = append(s.order, stored.ID)

	out := stored

	return &out, nil
}

// Update replaces the editable fields of an existing role.
func (s *Roles) Update(_ context.Context, role *domain.Role) (*domain.Role, error) {
	if err := validateRole(role); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.byID[role.ID]
	if !ok {
		return nil, domain.NewNotFoundError("role", strconv.FormatInt(role.ID, 10))
	}

	if s.codeTakenLocked(role.RoleCode, role.ID) {
		return nil, domain.NewConflictError("role", "role code "+role.RoleCode+" is taken")
	}

	existing.RoleName = role.RoleName
	existing.RoleCode = role.RoleCode
	existing.Description = role.Description
	existing.Status = role.Status

	out := *existing

	return &out, nil
}

// Delete removes every role in ids. Nothing is removed if any ID is unknown.
func (s *Roles) Delete(_ context.Context, ids []int64) error {
	if len(ids) == 0 {
		return domain.NewValidationError("id", "is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		if _, ok := s.byID[id]; !ok {
			return domain.NewNotFoundError("role", strconv.FormatInt(id, 10))
		}
	}

	for _, id := range ids {
		delete(s.byID, id)
	}

	s.order = removeIDs(s.order, ids)

	return nil
}

func (s *Roles) codeTakenLocked(code string, except int64) bool {
	for _, id := range s.order {
		if id != except && strings.EqualFold(s.byID[id].RoleCode, code) {
			return true
		}
	}

	return false
}

func validateRole(role *domain.Role) error {
	if strings.TrimSpace(role.RoleName) == "" {
		return domain.NewValidationError("roleName", "is required")
	}

	if strings.TrimSpace(role.RoleCode) == "" {
		return domain.NewValidationError("roleCode", "is required")
	}

	return nil
}

func removeIDs(order, ids []int64) []int64 {
	drop := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	kept := order[:0]

	for _, id := range order {
		if _, ok := drop[id]; !ok {
			kept = append(kept, id)
		}
	}

	return kept
}

var _ ports.RoleStore = (*Roles)(nil)
