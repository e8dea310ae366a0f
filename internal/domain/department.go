package domain

// Department is a node in the organization tree.
// ParentID is zero for top-level departments.
type Department struct {
	ID         int64         `json:"id"`
	Name       string        `json:"name"`
	ParentID   int64         `json:"parentId"`
	Sort       int           `json:"sort"`
	Status     int           `json:"status"`
	Leader     string        `json:"leader,omitempty"`
	Phone      string        `json:"phone,omitempty"`
	Email      string        `json:"email,omitempty"`
	CreateTime string        `json:"createTime,omitempty"`
	Children   []*Department `json:"children,omitempty"`
}

// IsTopLevel reports whether the department has no parent.
func (d *Department) IsTopLevel() bool {
	return d.ParentID == 0
}
