package adminsession

import "time"

const (
	CookieName = "admin_token"

	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// Admin is the identity attached to a valid session.
type Admin struct {
	ID       string `db:"admin_id" json:"id"`
	Email    string `db:"email" json:"email"`
	FullName string `db:"full_name" json:"full_name"`
	Role     string `db:"role" json:"role"`
}

type AdminAccount struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         string    `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

func (a *AdminAccount) Admin() *Admin {
	return &Admin{ID: a.ID, Email: a.Email, FullName: a.FullName, Role: a.Role}
}

type Session struct {
	Token     string    `db:"token" json:"-"`
	AdminID   string    `db:"admin_id" json:"admin_id"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AdminResponse struct {
	Admin *Admin `json:"admin"`
}
