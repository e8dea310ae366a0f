package domain

// UserInfo describes a console user and what they may see.
type UserInfo struct {
	UserID   int64    `json:"userId"`
	UserName string   `json:"userName"`
	Roles    []string `json:"roles"`
	Buttons  []string `json:"buttons"`
	Avatar   string   `json:"avatar,omitempty"`
	Email    string   `json:"email,omitempty"`
	Phone    string   `json:"phone,omitempty"`
}

// UserListData is the page returned by /user/list.
type UserListData = Page[UserInfo]
