package model

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

type User struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
