package domain

import (
	"context"
	"time"
)

// Role is the closed set of application roles. A user's role is fixed at
// signup; there is no promotion path.
type Role string

const (
	RoleAdmin  Role = "admin"
	RolePlayer Role = "player"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RolePlayer
}

// Actor identifies the authenticated caller of a service operation.
// Services re-check Role on every gated operation so the workflow rules hold
// regardless of how they are invoked.
type Actor struct {
	ID   string
	Role Role
}

// User represents a registered user
// swagger:model User
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser returns a new User with the given fields. ID is typically set by the repository on create.
func NewUser(name, email, passwordHash, salt string, role Role, createdAt, updatedAt time.Time) *User {
	return &User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Salt:         salt,
		Role:         role,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}

// UserSummary is the user projection embedded in joined read views.
// swagger:model UserSummary
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email string, role Role, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated actor.
type TokenVerifier interface {
	Verify(token string) (Actor, error)
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, user *User) error
	// List returns a page of users ordered by created_at descending plus the
	// total user count.
	List(ctx context.Context, params PaginationParams) ([]*User, int, error)
}

// AuthService defines signup and login.
type AuthService interface {
	// SignUp creates a player account.
	SignUp(ctx context.Context, name, email, password string) (*User, error)
	// SignUpAdmin creates an admin account; adminCode must match the
	// configured signup code.
	SignUpAdmin(ctx context.Context, name, email, password, adminCode string) (*User, error)
	// Login authenticates and issues a token. expectedRole gates which login
	// form the account may use (admin login vs player login).
	Login(ctx context.Context, email, password string, expectedRole Role) (token string, user *User, err error)
}

// UserService defines profile operations.
type UserService interface {
	GetByID(ctx context.Context, id string) (*User, error)
	// UpdateProfile updates name and/or email for the given user.
	UpdateProfile(ctx context.Context, userID, name, email string) (*User, error)
	// ListUsers returns a page of all users with the total count. Admin only.
	ListUsers(ctx context.Context, actor Actor, params PaginationParams) ([]*User, int, error)
}
