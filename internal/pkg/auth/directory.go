package auth

import (
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/sparkcreatives/donations-api/app/models"
	"github.com/sparkcreatives/donations-api/internal/pkg/env"
)

var ErrAuthenticationFailed = errors.New("auth: authentication failed")

// Directory holds the staff accounts this API authenticates. Accounts are
// seeded at startup from environment-provided passwords; a real user store
// can replace this without touching the token layer.
type Directory struct {
	users map[string]*models.StaffUser
}

// NewDirectoryFromEnv seeds the default admin and reviewer accounts. The
// password defaults exist for local development only.
func NewDirectoryFromEnv() *Directory {
	d := &Directory{users: make(map[string]*models.StaffUser)}
	d.seed(&models.StaffUser{
		Username: "admin",
		FullName: "Administrator",
		Email:    "admin@sparkcreatives.org",
		Roles:    []string{models.RoleAdmin, models.RoleUser},
	}, env.GetEnv("SPARK_ADMIN_PASSWORD", "admin123"))
	d.seed(&models.StaffUser{
		Username: "reviewer",
		FullName: "Document Reviewer",
		Email:    "reviewer@sparkcreatives.org",
		Roles:    []string{models.RoleReviewer, models.RoleUser},
	}, env.GetEnv("SPARK_REVIEWER_PASSWORD", "reviewer123"))
	return d
}

func (d *Directory) seed(user *models.StaffUser, password string) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("seeding %s failed: %v", user.Username, err)
		return
	}
	user.PasswordHash = string(hash)
	d.users[user.Username] = user
}

// Get returns a user by username, or nil.
func (d *Directory) Get(username string) *models.StaffUser {
	return d.users[username]
}

// Authenticate verifies a username/password pair against the directory.
func (d *Directory) Authenticate(username, password string) (*models.StaffUser, error) {
	user := d.users[username]
	if user == nil {
		log.Printf("authentication failed: user %s not found", username)
		return nil, ErrAuthenticationFailed
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Printf("authentication failed: invalid password for user %s", username)
		return nil, ErrAuthenticationFailed
	}
	if user.Disabled {
		log.Printf("authentication failed: user %s is disabled", username)
		return nil, ErrAuthenticationFailed
	}
	return user, nil
}
