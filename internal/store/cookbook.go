package store

import (
	"database/sql"
	"fmt"

	"mealplan/internal/model"
)

type CookbookStore struct {
	db *sql.DB
}

func NewCookbookStore(db *sql.DB) *CookbookStore {
	return &CookbookStore{db: db}
}

func scanCookbook(scanner interface{ Scan(...any) error }) (*model.Cookbook, error) {
	var c model.Cookbook
	var isBook int
	var website sql.NullString

	err := scanner.Scan(&c.Name, &isBook, &website, &c.OwnerID)
	if err != nil {
		return nil, err
	}

	c.IsBook = isBook != 0
	if website.Valid {
		c.Website = website.String
	}
	return &c, nil
}

const cookbookCols = `name, is_book, website, owner_id`

// ListNames returns the names of all cookbooks owned by the given user,
// ordered alphabetically. An unknown owner yields an empty list.
func (s *CookbookStore) ListNames(ownerID int64) ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM cookbooks WHERE owner_id = ? ORDER BY name`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list cookbook names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan cookbook name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Get returns one cookbook by name within the owner's scope, or nil if it
// does not exist.
func (s *CookbookStore) Get(name string, ownerID int64) (*model.Cookbook, error) {
	row := s.db.QueryRow(
		`SELECT `+cookbookCols+` FROM cookbooks WHERE name = ? AND owner_id = ?`,
		name, ownerID,
	)
	c, err := scanCookbook(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cookbook: %w", err)
	}
	return c, nil
}

func (s *CookbookStore) Add(name string, isBook bool, website string, ownerID int64) (*model.Cookbook, error) {
	var b int
	if isBook {
		b = 1
	}
	var site sql.NullString
	if website != "" {
		site = sql.NullString{String: website, Valid: true}
	}

	_, err := s.db.Exec(
		`INSERT INTO cookbooks (name, is_book, website, owner_id) VALUES (?, ?, ?, ?)`,
		name, b, site, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("insert cookbook: %w", err)
	}
	return s.Get(name, ownerID)
}

func (s *CookbookStore) Update(currentName, newName string, isBook bool, website string, ownerID int64) (*model.Cookbook, error) {
	var b int
	if isBook {
		b = 1
	}
	var site sql.NullString
	if website != "" {
		site = sql.NullString{String: website, Valid: true}
	}

	_, err := s.db.Exec(
		`UPDATE cookbooks SET name = ?, is_book = ?, website = ? WHERE name = ? AND owner_id = ?`,
		newName, b, site, currentName, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("update cookbook: %w", err)
	}
	return s.Get(newName, ownerID)
}

func (s *CookbookStore) Delete(name string, ownerID int64) error {
	_, err := s.db.Exec(`DELETE FROM cookbooks WHERE name = ? AND owner_id = ?`, name, ownerID)
	if err != nil {
		return fmt.Errorf("delete cookbook: %w", err)
	}
	return nil
}
