package store

import (
	"database/sql"
	"fmt"

	"mealplan/internal/model"
)

type RecipeStore struct {
	db *sql.DB
}

func NewRecipeStore(db *sql.DB) *RecipeStore {
	return &RecipeStore{db: db}
}

func scanRecipe(scanner interface{ Scan(...any) error }) (*model.Recipe, error) {
	var r model.Recipe
	var isOnline int
	var webpage sql.NullString

	err := scanner.Scan(&r.Name, &r.CookbookName, &r.Servings, &isOnline, &webpage, &r.OwnerID)
	if err != nil {
		return nil, err
	}

	r.IsOnline = isOnline != 0
	if webpage.Valid {
		r.Webpage = webpage.String
	}
	return &r, nil
}

const recipeCols = `name, cookbook_name, servings, is_online, webpage, owner_id`

// ListNames returns the names of all recipes owned by the given user.
func (s *RecipeStore) ListNames(ownerID int64) ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM recipes WHERE owner_id = ? ORDER BY name`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list recipe names: %w", err)
	}
	defer rows.Close()
	return collectNames(rows)
}

// ListNamesByCookbook returns the names of the owner's recipes filed under
// one cookbook.
func (s *RecipeStore) ListNamesByCookbook(cookbookName string, ownerID int64) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT name FROM recipes WHERE cookbook_name = ? AND owner_id = ? ORDER BY name`,
		cookbookName, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list recipes by cookbook: %w", err)
	}
	defer rows.Close()
	return collectNames(rows)
}

// Get returns one recipe by name within the owner's scope, or nil if it does
// not exist.
func (s *RecipeStore) Get(name string, ownerID int64) (*model.Recipe, error) {
	row := s.db.QueryRow(
		`SELECT `+recipeCols+` FROM recipes WHERE name = ? AND owner_id = ?`,
		name, ownerID,
	)
	r, err := scanRecipe(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return r, nil
}

func (s *RecipeStore) Add(name, cookbookName string, servings int, isOnline bool, webpage string, ownerID int64) (*model.Recipe, error) {
	var o int
	if isOnline {
		o = 1
	}
	var page sql.NullString
	if webpage != "" {
		page = sql.NullString{String: webpage, Valid: true}
	}

	_, err := s.db.Exec(
		`INSERT INTO recipes (name, cookbook_name, servings, is_online, webpage, owner_id) VALUES (?, ?, ?, ?, ?, ?)`,
		name, cookbookName, servings, o, page, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("insert recipe: %w", err)
	}
	return s.Get(name, ownerID)
}

func (s *RecipeStore) Update(currentName, newName, cookbookName string, servings int, isOnline bool, webpage string, ownerID int64) (*model.Recipe, error) {
	var o int
	if isOnline {
		o = 1
	}
	var page sql.NullString
	if webpage != "" {
		page = sql.NullString{String: webpage, Valid: true}
	}

	_, err := s.db.Exec(
		`UPDATE recipes SET name = ?, cookbook_name = ?, servings = ?, is_online = ?, webpage = ? WHERE name = ? AND owner_id = ?`,
		newName, cookbookName, servings, o, page, currentName, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("update recipe: %w", err)
	}
	return s.Get(newName, ownerID)
}

// Delete removes the recipe; its ingredient pairings go with it via the
// schema cascade.
func (s *RecipeStore) Delete(name string, ownerID int64) error {
	_, err := s.db.Exec(`DELETE FROM recipes WHERE name = ? AND owner_id = ?`, name, ownerID)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	return nil
}

// ListIngredients returns the names of the ingredients paired with a recipe.
func (s *RecipeStore) ListIngredients(recipeName string, ownerID int64) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT ingredient_name FROM recipe_ingredients WHERE recipe_name = ? AND owner_id = ? ORDER BY ingredient_name`,
		recipeName, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list recipe ingredients: %w", err)
	}
	defer rows.Close()
	return collectNames(rows)
}

// AddPairing ties an ingredient to a recipe. Both must already exist in the
// owner's scope or the insert fails on its foreign keys.
func (s *RecipeStore) AddPairing(ingredientName, recipeName string, ownerID int64) error {
	_, err := s.db.Exec(
		`INSERT INTO recipe_ingredients (recipe_name, ingredient_name, owner_id) VALUES (?, ?, ?)`,
		recipeName, ingredientName, ownerID,
	)
	if err != nil {
		return fmt.Errorf("insert pairing: %w", err)
	}
	return nil
}

func collectNames(rows *sql.Rows) ([]string, error) {
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
