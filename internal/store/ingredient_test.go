package store

import (
	"testing"

	"mealplan/internal/database"
)

func setupIngredientTestDB(t *testing.T) (*IngredientStore, int64, int64) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	us := NewUserStore(db)
	a, err := us.Create("alice@example.com", "hash-a", "Alice", "Anders")
	if err != nil {
		t.Fatalf("create user a: %v", err)
	}
	b, err := us.Create("bob@example.com", "hash-b", "Bob", "Baker")
	if err != nil {
		t.Fatalf("create user b: %v", err)
	}
	return NewIngredientStore(db), a.ID, b.ID
}

func TestIngredientAddExistsDelete(t *testing.T) {
	is, owner, _ := setupIngredientTestDB(t)

	exists, err := is.Exists("Salt", owner)
	if err != nil {
		t.Fatalf("exists before add: %v", err)
	}
	if exists {
		t.Error("ingredient should not exist before add")
	}

	if err := is.Add("Salt", owner); err != nil {
		t.Fatalf("add: %v", err)
	}

	exists, err = is.Exists("Salt", owner)
	if err != nil {
		t.Fatalf("exists after add: %v", err)
	}
	if !exists {
		t.Error("ingredient should exist after add")
	}

	if err := is.Delete("Salt", owner); err != nil {
		t.Fatalf("delete: %v", err)
	}

	exists, err = is.Exists("Salt", owner)
	if err != nil {
		t.Fatalf("exists after delete: %v", err)
	}
	if exists {
		t.Error("ingredient should be gone after delete")
	}
}

func TestIngredientAddDuplicate(t *testing.T) {
	is, owner, _ := setupIngredientTestDB(t)

	if err := is.Add("Salt", owner); err != nil {
		t.Fatalf("first add: %v", err)
	}
	err := is.Add("Salt", owner)
	if !IsUniqueViolation(err) {
		t.Errorf("expected unique violation, got %v", err)
	}
}

func TestIngredientListScopedToOwner(t *testing.T) {
	is, owner, other := setupIngredientTestDB(t)

	for _, name := range []string{"Salt", "Pepper"} {
		if err := is.Add(name, owner); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}
	if err := is.Add("Saffron", other); err != nil {
		t.Fatalf("add for other: %v", err)
	}

	names, err := is.List(owner)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("expected 2 ingredients, got %d: %v", len(names), names)
	}
	for _, n := range names {
		if n == "Saffron" {
			t.Error("listing leaked another owner's ingredient")
		}
	}
}

func TestIngredientUpdate(t *testing.T) {
	is, owner, _ := setupIngredientTestDB(t)

	if err := is.Add("Corriander", owner); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := is.Update("Corriander", "Coriander", owner); err != nil {
		t.Fatalf("update: %v", err)
	}

	exists, err := is.Exists("Coriander", owner)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !exists {
		t.Error("renamed ingredient not found")
	}
	old, err := is.Exists("Corriander", owner)
	if err != nil {
		t.Fatalf("exists old: %v", err)
	}
	if old {
		t.Error("old name should no longer exist")
	}
}
