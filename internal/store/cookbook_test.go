package store

import (
	"database/sql"
	"testing"

	"mealplan/internal/database"
)

func setupCookbookTestDB(t *testing.T) (*CookbookStore, int64, int64) {
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
	return NewCookbookStore(db), a.ID, b.ID
}

func TestCookbookAddAndGet(t *testing.T) {
	cs, owner, _ := setupCookbookTestDB(t)

	cb, err := cs.Add("Test Cookbook", true, "", owner)
	if err != nil {
		t.Fatalf("add cookbook: %v", err)
	}
	if cb.Name != "Test Cookbook" {
		t.Errorf("Name = %q, want %q", cb.Name, "Test Cookbook")
	}
	if !cb.IsBook {
		t.Error("IsBook = false, want true")
	}

	got, err := cs.Get("Test Cookbook", owner)
	if err != nil {
		t.Fatalf("get cookbook: %v", err)
	}
	if got == nil {
		t.Fatal("expected cookbook, got nil")
	}
	if got.OwnerID != owner {
		t.Errorf("OwnerID = %d, want %d", got.OwnerID, owner)
	}
}

func TestCookbookGetMissing(t *testing.T) {
	cs, owner, _ := setupCookbookTestDB(t)

	got, err := cs.Get("nope", owner)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing cookbook, got %+v", got)
	}
}

func TestCookbookAddDuplicate(t *testing.T) {
	cs, owner, _ := setupCookbookTestDB(t)

	if _, err := cs.Add("Dupe", false, "https://example.com", owner); err != nil {
		t.Fatalf("first add: %v", err)
	}
	_, err := cs.Add("Dupe", false, "https://example.com", owner)
	if err == nil {
		t.Fatal("expected error adding duplicate cookbook")
	}
	if !IsUniqueViolation(err) {
		t.Errorf("expected unique violation, got %v", err)
	}
}

func TestCookbookSameNameDifferentOwners(t *testing.T) {
	cs, ownerA, ownerB := setupCookbookTestDB(t)

	if _, err := cs.Add("Shared Name", true, "", ownerA); err != nil {
		t.Fatalf("add for owner a: %v", err)
	}
	if _, err := cs.Add("Shared Name", false, "https://example.com", ownerB); err != nil {
		t.Fatalf("add for owner b: %v", err)
	}

	a, err := cs.Get("Shared Name", ownerA)
	if err != nil || a == nil {
		t.Fatalf("get for owner a: %v %v", a, err)
	}
	if !a.IsBook {
		t.Error("owner a cookbook should be a physical book")
	}
	b, err := cs.Get("Shared Name", ownerB)
	if err != nil || b == nil {
		t.Fatalf("get for owner b: %v %v", b, err)
	}
	if b.IsBook {
		t.Error("owner b cookbook should be online")
	}
}

func TestCookbookListNamesScopedToOwner(t *testing.T) {
	cs, ownerA, ownerB := setupCookbookTestDB(t)

	for _, name := range []string{"Alpha", "Beta"} {
		if _, err := cs.Add(name, true, "", ownerA); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}
	if _, err := cs.Add("Gamma", true, "", ownerB); err != nil {
		t.Fatalf("add gamma: %v", err)
	}

	names, err := cs.ListNames(ownerA)
	if err != nil {
		t.Fatalf("list names: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("expected 2 names for owner a, got %d: %v", len(names), names)
	}
	for _, n := range names {
		if n == "Gamma" {
			t.Error("owner a listing leaked owner b's cookbook")
		}
	}

	anon, err := cs.ListNames(0)
	if err != nil {
		t.Fatalf("list names for anonymous: %v", err)
	}
	if len(anon) != 0 {
		t.Errorf("expected empty list for anonymous owner, got %v", anon)
	}
}

func TestCookbookUpdate(t *testing.T) {
	cs, owner, _ := setupCookbookTestDB(t)

	if _, err := cs.Add("Old Name", true, "", owner); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := cs.Update("Old Name", "New Name", false, "https://example.com/new", owner); err != nil {
		t.Fatalf("update: %v", err)
	}

	old, err := cs.Get("Old Name", owner)
	if err != nil {
		t.Fatalf("get old: %v", err)
	}
	if old != nil {
		t.Error("old name should no longer resolve")
	}

	got, err := cs.Get("New Name", owner)
	if err != nil {
		t.Fatalf("get new: %v", err)
	}
	if got == nil {
		t.Fatal("expected renamed cookbook")
	}
	if got.IsBook {
		t.Error("IsBook should be false after update")
	}
	if got.Website != "https://example.com/new" {
		t.Errorf("Website = %q, want %q", got.Website, "https://example.com/new")
	}
}

func TestCookbookDelete(t *testing.T) {
	cs, owner, other := setupCookbookTestDB(t)

	if _, err := cs.Add("Doomed", true, "", owner); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := cs.Add("Doomed", true, "", other); err != nil {
		t.Fatalf("add for other: %v", err)
	}

	if err := cs.Delete("Doomed", owner); err != nil {
		t.Fatalf("delete: %v", err)
	}

	got, err := cs.Get("Doomed", owner)
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if got != nil {
		t.Error("cookbook should be gone after delete")
	}

	// The other owner's row with the same name is untouched.
	kept, err := cs.Get("Doomed", other)
	if err != nil {
		t.Fatalf("get other's cookbook: %v", err)
	}
	if kept == nil {
		t.Error("delete removed another owner's cookbook")
	}
}

func TestCookbookDeletedWithOwner(t *testing.T) {
	cs, owner, _ := setupCookbookTestDB(t)

	if _, err := cs.Add("Orphan", true, "", owner); err != nil {
		t.Fatalf("add: %v", err)
	}

	us := NewUserStore(cs.db)
	if err := us.Delete("alice@example.com"); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	var count int
	if err := cs.db.QueryRow("SELECT COUNT(*) FROM cookbooks WHERE owner_id = ?", owner).Scan(&count); err != nil && err != sql.ErrNoRows {
		t.Fatalf("count cookbooks: %v", err)
	}
	if count != 0 {
		t.Errorf("expected owner's cookbooks cascaded away, found %d", count)
	}
}
