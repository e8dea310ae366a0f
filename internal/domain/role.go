package domain

// Role is a named permission set.
type Role struct {
	ID          int64  `json:"id"`
	RoleName    string `json:"roleName"`
	RoleCode    string `json:"roleCode"`
	Description string `json:"description,omitempty"`
	Status      int    `json:"status"`
	CreateTime  string `json:"createTime,omitempty"`
}
