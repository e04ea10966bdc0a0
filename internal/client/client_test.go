package client

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"mealplan/internal/database"
	"mealplan/internal/server"
)

// setupTestClient points a Client at a real in-process server backed by an
// in-memory database.
func setupTestClient(t *testing.T) *Client {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := server.New(db, server.Config{}, logger)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	c, err := New(ts.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func TestClientRegisterAndLogin(t *testing.T) {
	c := setupTestClient(t)
	ctx := context.Background()

	if err := c.Register(ctx, "a@x.com", "hunter22", "Ada", "Lovelace"); err != nil {
		t.Fatalf("register: %v", err)
	}

	profile, err := c.Login(ctx, "a@x.com", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if profile.Email != "a@x.com" || profile.FirstName != "Ada" {
		t.Errorf("profile = %+v", profile)
	}

	if err := c.Logout(ctx); err != nil {
		t.Errorf("logout: %v", err)
	}
}

func TestClientLoginBadPassword(t *testing.T) {
	c := setupTestClient(t)
	ctx := context.Background()

	if err := c.Register(ctx, "a@x.com", "hunter22", "Ada", "Lovelace"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := c.Login(ctx, "a@x.com", "wrong")
	if err == nil {
		t.Fatal("expected login error")
	}
	if !strings.Contains(err.Error(), "Invalid email or password") {
		t.Errorf("error = %v", err)
	}
}

func TestClientCookbookFlow(t *testing.T) {
	c := setupTestClient(t)
	ctx := context.Background()

	if err := c.Register(ctx, "a@x.com", "pw", "A", "B"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := c.Login(ctx, "a@x.com", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}

	msg, err := c.AddCookbook(ctx, "Test Cookbook", true, "")
	if err != nil {
		t.Fatalf("add cookbook: %v", err)
	}
	if msg != "Cookbook Test Cookbook added successfully" {
		t.Errorf("message = %q", msg)
	}

	names, err := c.CookbookNames(ctx)
	if err != nil {
		t.Fatalf("cookbook names: %v", err)
	}
	if len(names) != 1 || names[0] != "Test Cookbook" {
		t.Errorf("names = %v", names)
	}

	info, err := c.CookbookInfo(ctx, "Test Cookbook")
	if err != nil {
		t.Fatalf("cookbook info: %v", err)
	}
	if !info.Validity || info.Message != "Physical book" {
		t.Errorf("info = %+v", info)
	}

	// Duplicate add surfaces the server's error message.
	if _, err := c.AddCookbook(ctx, "Test Cookbook", true, ""); err == nil {
		t.Error("expected error adding duplicate cookbook")
	}

	if _, err := c.DeleteCookbook(ctx, "Test Cookbook"); err != nil {
		t.Fatalf("delete cookbook: %v", err)
	}
	names, err = c.CookbookNames(ctx)
	if err != nil {
		t.Fatalf("cookbook names after delete: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("names after delete = %v", names)
	}
}

func TestClientRecipeFlow(t *testing.T) {
	c := setupTestClient(t)
	ctx := context.Background()

	if err := c.Register(ctx, "a@x.com", "pw", "A", "B"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := c.Login(ctx, "a@x.com", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := c.AddCookbook(ctx, "Test Cookbook", true, ""); err != nil {
		t.Fatalf("add cookbook: %v", err)
	}

	ok, err := c.CheckRecipe(ctx, "R1")
	if err != nil {
		t.Fatalf("check recipe: %v", err)
	}
	if ok {
		t.Error("recipe should not exist yet")
	}

	if _, err := c.AddRecipe(ctx, "R1", "Test Cookbook", 4, false, ""); err != nil {
		t.Fatalf("add recipe: %v", err)
	}
	ok, err = c.CheckRecipe(ctx, "R1")
	if err != nil {
		t.Fatalf("check recipe: %v", err)
	}
	if !ok {
		t.Error("recipe should exist after add")
	}

	if _, err := c.AddIngredient(ctx, "I1"); err != nil {
		t.Fatalf("add ingredient: %v", err)
	}
	if _, err := c.AddIngredientRecipePairing(ctx, "I1", "R1"); err != nil {
		t.Fatalf("pairing: %v", err)
	}

	info, err := c.RecipeInfo(ctx, "R1")
	if err != nil {
		t.Fatalf("recipe info: %v", err)
	}
	if info.RecipeName != "R1" || info.Servings != 4 {
		t.Errorf("info = %+v", info)
	}
	if len(info.Ingredients) != 1 || info.Ingredients[0] != "I1" {
		t.Errorf("ingredients = %v", info.Ingredients)
	}

	// Empty cookbook argument lists every recipe.
	names, err := c.RecipeNames(ctx, "")
	if err != nil {
		t.Fatalf("recipe names: %v", err)
	}
	if len(names) != 1 || names[0] != "R1" {
		t.Errorf("all names = %v", names)
	}
	names, err = c.RecipeNames(ctx, "Test Cookbook")
	if err != nil {
		t.Fatalf("recipe names by cookbook: %v", err)
	}
	if len(names) != 1 || names[0] != "R1" {
		t.Errorf("cookbook names = %v", names)
	}
}

func TestClientPathEscaping(t *testing.T) {
	c := setupTestClient(t)
	ctx := context.Background()

	if err := c.Register(ctx, "a@x.com", "pw", "A", "B"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := c.Login(ctx, "a@x.com", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := c.AddCookbook(ctx, "Soups & Stews", false, "https://example.com"); err != nil {
		t.Fatalf("add cookbook: %v", err)
	}

	info, err := c.CookbookInfo(ctx, "Soups & Stews")
	if err != nil {
		t.Fatalf("cookbook info: %v", err)
	}
	if !info.Validity || info.CookbookName != "Soups & Stews" {
		t.Errorf("info = %+v", info)
	}
}
