package models

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// CreateUser hashes the password and inserts the account. Name uniqueness is
// enforced by the UNIQUE constraint, not a pre-check, so concurrent signups
// with the same name cannot both succeed.
func CreateUser(db *sql.DB, name, password string) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	res, err := db.Exec(`INSERT INTO users (name, password) VALUES (?, ?)`, name, string(hash))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.name") {
			return nil, ErrNameTaken
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return GetUser(db, int(id))
}

func GetUser(db *sql.DB, id int) (*User, error) {
	row := db.QueryRow(`SELECT user_id, name, password, created_at FROM users WHERE user_id = ?`, id)
	var u User
	if err := row.Scan(&u.ID, &u.Name, &u.Password, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func GetUserByName(db *sql.DB, name string) (*User, error) {
	row := db.QueryRow(`SELECT user_id, name, password, created_at FROM users WHERE name = ?`, name)
	var u User
	if err := row.Scan(&u.ID, &u.Name, &u.Password, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// Authenticate returns ErrInvalidCredentials both for an unknown name and for
// a wrong password, so callers cannot enumerate accounts.
func Authenticate(db *sql.DB, name, password string) (*User, error) {
	u, err := GetUserByName(db, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// UpdateUser replaces both the login name and the password. The UNIQUE
// constraint rejects a rename onto another account's name; the row being
// updated never conflicts with itself.
func UpdateUser(db *sql.DB, userID int, newName, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = db.Exec(`UPDATE users SET name = ?, password = ? WHERE user_id = ?`, newName, string(hash), userID)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: users.name") {
		return ErrNameTaken
	}
	return err
}

// FindOrCreateOAuthUser backs the OAuth callbacks. Accounts created here get a
// random credential; the provider is their only sign-in path unless they set a
// password on the account page.
func FindOrCreateOAuthUser(db *sql.DB, name string) (*User, error) {
	u, err := GetUserByName(db, name)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	return CreateUser(db, name, uuid.NewString())
}
