package store

import (
	"database/sql"
	"fmt"
)

type IngredientStore struct {
	db *sql.DB
}

func NewIngredientStore(db *sql.DB) *IngredientStore {
	return &IngredientStore{db: db}
}

// List returns the names of all ingredients owned by the given user.
func (s *IngredientStore) List(ownerID int64) ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM ingredients WHERE owner_id = ? ORDER BY name`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	defer rows.Close()
	return collectNames(rows)
}

// Exists reports whether the owner has an ingredient with the given name.
func (s *IngredientStore) Exists(name string, ownerID int64) (bool, error) {
	var one int
	err := s.db.QueryRow(
		`SELECT 1 FROM ingredients WHERE name = ? AND owner_id = ?`,
		name, ownerID,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("ingredient exists: %w", err)
	}
	return true, nil
}

func (s *IngredientStore) Add(name string, ownerID int64) error {
	_, err := s.db.Exec(`INSERT INTO ingredients (name, owner_id) VALUES (?, ?)`, name, ownerID)
	if err != nil {
		return fmt.Errorf("insert ingredient: %w", err)
	}
	return nil
}

func (s *IngredientStore) Update(currentName, newName string, ownerID int64) error {
	_, err := s.db.Exec(
		`UPDATE ingredients SET name = ? WHERE name = ? AND owner_id = ?`,
		newName, currentName, ownerID,
	)
	if err != nil {
		return fmt.Errorf("update ingredient: %w", err)
	}
	return nil
}

// Delete removes the ingredient; pairings that reference it cascade away.
func (s *IngredientStore) Delete(name string, ownerID int64) error {
	_, err := s.db.Exec(`DELETE FROM ingredients WHERE name = ? AND owner_id = ?`, name, ownerID)
	if err != nil {
		return fmt.Errorf("delete ingredient: %w", err)
	}
	return nil
}
