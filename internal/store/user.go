package store

import (
	"database/sql"
	"fmt"

	"mealplan/internal/model"
)

type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

func scanUser(scanner interface{ Scan(...any) error }) (*model.User, error) {
	var u model.User
	err := scanner.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

const userCols = `id, email, password_hash, first_name, last_name, created_at`

func (s *UserStore) Create(email, passwordHash, firstName, lastName string) (*model.User, error) {
	result, err := s.db.Exec(
		`INSERT INTO users (email, password_hash, first_name, last_name) VALUES (?, ?, ?, ?)`,
		email, passwordHash, firstName, lastName,
	)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *UserStore) GetByID(id int64) (*model.User, error) {
	row := s.db.QueryRow(`SELECT `+userCols+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// GetByEmail looks up a user by exact email. Missing users return nil, not an
// error, so callers handle the absent case explicitly.
func (s *UserStore) GetByEmail(email string) (*model.User, error) {
	row := s.db.QueryRow(`SELECT `+userCols+` FROM users WHERE email = ?`, email)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// GetPasswordHash returns the stored hash for an email, or "" if no such
// user exists.
func (s *UserStore) GetPasswordHash(email string) (string, error) {
	var hash string
	err := s.db.QueryRow(`SELECT password_hash FROM users WHERE email = ?`, email).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get password hash: %w", err)
	}
	return hash, nil
}

// Delete removes the user by email. Sessions and owned cookbooks, recipes,
// and ingredients cascade away with the row.
func (s *UserStore) Delete(email string) error {
	_, err := s.db.Exec(`DELETE FROM users WHERE email = ?`, email)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
