package fileshelf

// Role is the backend role of a user.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleUser       Role = "user"
)

func (r Role) Valid() bool {
	return r == RoleSuperAdmin || r == RoleUser
}

type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleSuperAdmin
}

// UserPatch holds the editable fields of a user. Nil fields are left untouched.
type UserPatch struct {
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty"`
	Role     *Role   `json:"role,omitempty"`
}
