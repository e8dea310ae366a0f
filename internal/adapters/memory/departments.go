package memory

import (
	"cmp"
	"context"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jsamuelsen/console-client/internal/domain"
	"github.com/jsamuelsen/console-client/internal/ports"
)

// Departments stores the organization tree.
//
// List pages over top-level departments with their subtrees attached; a name
// filter switches to a flat list of matching departments.
type Departments struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]*domain.Department
	now    func() time.Time
}

// NewDepartments creates a department store holding seed. Parents must
// precede their children in seed.
func NewDepartments(seed ...domain.Department) *Departments {
	s := &Departments{nextID: 1, byID: make(map[int64]*domain.Department), now: time.Now}
	for i := range seed {
		_, _ = s.Add(context.Background(), &seed[i])
	}

	return s
}

// List returns one page of departments.
func (s *Departments) List(_ context.Context, q ports.ListQuery) (*domain.Page[domain.Department], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if q.Name != "" {
		var flat []domain.Department

		for _, d := range s.sortedLocked() {
			if matches(d.Name, q.Name) {
				flat = append(flat, *d)
			}
		}

		return paginate(flat, q), nil
	}

	var roots []domain.Department

	for _, d := range s.sortedLocked() {
		if d.IsTopLevel() {
			roots = append(roots, *s.subtreeLocked(d))
		}
	}

	return paginate(roots, q), nil
}

// Add stores a new department under ParentID (zero for top level).
func (s *Departments) Add(_ context.Context, dept *domain.Department) (*domain.Department, error) {
	if strings.TrimSpace(dept.Name) == "" {
		return nil, domain.NewValidationError("name", "is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if dept.ParentID != 0 {
		if _, ok := s.byID[dept.ParentID]; !ok {
			return nil, domain.NewNotFoundError("department", strconv.FormatInt(dept.ParentID, 10))
		}
	}

	stored := *dept
	stored.ID = s.nextID
	stored.Children = nil

	if stored.CreateTime == "" {
		stored.CreateTime = stamp(s.now)
	}

	s.nextID++
	s.byID[stored.ID] = &stored

	out := stored

	return &out, nil
}

// Update replaces the editable fields of a department. A department cannot
// be moved under itself or one of its descendants.
func (s *Departments) Update(_ context.Context, dept *domain.Department) (*domain.Department, error) {
	if strings.TrimSpace(dept.Name) == "" {
		return nil, domain.NewValidationError("name", "is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.byID[dept.ID]
	if !ok {
		return nil, domain.NewNotFoundError("department", strconv.FormatInt(dept.ID, 10))
	}

	if dept.ParentID != 0 {
		if _, ok := s.byID[dept.ParentID]; !ok {
			return nil, domain.NewNotFoundError("department", strconv.FormatInt(dept.ParentID, 10))
		}

		if _, cyclic := s.descendantsLocked(dept.ID)[dept.ParentID]; cyclic {
			return nil, domain.NewValidationError("parentId", "must not be the department itself or a descendant")
		}
	}

	existing.Name = dept.Name
	existing.ParentID = dept.ParentID
	existing.Sort = dept.Sort
	existing.Status = dept.Status
	existing.Leader = dept.Leader
	existing.Phone = dept.Phone
	existing.Email = dept.Email

	out := *existing

	return &out, nil
}

// Top returns every department that may become a parent of excludeID, that is
// all departments outside its subtree. Zero excludes nothing.
func (s *Departments) Top(_ context.Context, excludeID int64) ([]domain.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	excluded := map[int64]struct{}{}
	if excludeID != 0 {
		excluded = s.descendantsLocked(excludeID)
	}

	out := []domain.Department{}

	for _, d := range s.sortedLocked() {
		if _, skip := excluded[d.ID]; !skip {
			out = append(out, *d)
		}
	}

	return out, nil
}

// Delete removes every department in ids. A department whose children are
// not deleted with it is a conflict; nothing is removed in that case.
func (s *Departments) Delete(_ context.Context, ids []int64) error {
	if len(ids) == 0 {
		return domain.NewValidationError("id", "is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	drop := make(map[int64]struct{}, len(ids))

	for _, id := range ids {
		if _, ok := s.byID[id]; !ok {
			return domain.NewNotFoundError("department", strconv.FormatInt(id, 10))
		}

		drop[id] = struct{}{}
	}

	for _, d := range s.byID {
		if _, parentDropped := drop[d.ParentID]; !parentDropped {
			continue
		}

		if _, childDropped := drop[d.ID]; !childDropped {
			return domain.NewConflictError("department",
				"department "+strconv.FormatInt(d.ParentID, 10)+" still has sub-departments")
		}
	}

	for id := range drop {
		delete(s.byID, id)
	}

	return nil
}

// sortedLocked returns every department ordered by Sort, then ID.
func (s *Departments) sortedLocked() []*domain.Department {
	all := make([]*domain.Department, 0, len(s.byID))
	for _, d := range s.byID {
		all = append(all, d)
	}

	slices.SortFunc(all, func(a, b *domain.Department) int {
		return cmp.Or(cmp.Compare(a.Sort, b.Sort), cmp.Compare(a.ID, b.ID))
	})

	return all
}

// subtreeLocked returns a copy of d with its children attached recursively.
func (s *Departments) subtreeLocked(d *domain.Department) *domain.Department {
	node := *d
	node.Children = nil

	for _, c := range s.sortedLocked() {
		if c.ParentID == d.ID {
			node.Children = append(node.Children, s.subtreeLocked(c))
		}
	}

	return &node
}

// descendantsLocked returns id and the IDs of everything below it.
func (s *Departments) descendantsLocked(id int64) map[int64]struct{} {
	out := map[int64]struct{}{id: {}}

	for changed := true; changed; {
		changed = false

		for _, d := range s.byID {
			if _, in := out[d.ID]; in {
				continue
			}

			if _, parentIn := out[d.ParentID]; parentIn && d.ParentID != 0 {
				out[d.ID] = struct{}{}
				changed = true
			}
		}
	}

	return out
}

var _ ports.DepartmentStore = (*Departments)(nil)
