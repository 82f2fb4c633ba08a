package model

const (
	UserStatusActive   = "Ativo"
	UserStatusInactive = "Inativo"
)

// User is an operator account of the web application.
type User struct {
	ID           int    `json:"id"`
	Name         string `json:"nome"`
	PasswordHash string `json:"-"` // Do not expose password hash in JSON responses
	Status       string `json:"status"`
	IsAdmin      bool   `json:"isAdmin"`
}

// IsActive reports whether the account may log in.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// ValidUserStatus reports whether s is one of the user status values.
func ValidUserStatus(s string) bool {
	return s == UserStatusActive || s == UserStatusInactive
}

// CreateUserRequest is the JSON body of POST /usuarios/adicionar.
type CreateUserRequest struct {
	Name     string  `json:"nome" binding:"required"`
	Password string  `json:"senha" binding:"required"`
	Status   *string `json:"status,omitempty"`
	IsAdmin  *bool   `json:"isAdmin,omitempty"`
}

// UpdateUserRequest is the JSON body of POST /usuarios/atualizar/:id.
// Absent fields are left unchanged; an empty password means no change.
type UpdateUserRequest struct {
	Name     *string `json:"nome,omitempty"`
	Status   *string `json:"status,omitempty"`
	IsAdmin  *bool   `json:"isAdmin,omitempty"`
	Password *string `json:"senha,omitempty"`
}
