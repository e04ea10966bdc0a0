// Package client is a thin HTTP client for the meal-planning API, used by
// the terminal frontend. A cookie jar carries the session cookie between
// calls.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the API at baseURL (e.g. "http://localhost:50051").
func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
		},
	}, nil
}

// Profile is the public identity returned by a successful login.
type Profile struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type loginResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
	Profile
}

type statusResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

type messageResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// CookbookInfo mirrors the /cookbook_info envelope.
type CookbookInfo struct {
	Validity     bool     `json:"validity"`
	CookbookName string   `json:"cookbook_name"`
	Online       bool     `json:"online"`
	Message      string   `json:"message"`
	URL          string   `json:"url"`
	Recipes      []string `json:"recipes"`
}

// RecipeInfo mirrors the /recipe_info envelope.
type RecipeInfo struct {
	RecipeName   string   `json:"recipe_name"`
	CookbookName string   `json:"cookbook_name"`
	Servings     int      `json:"servings"`
	IsOnline     bool     `json:"is_online"`
	URL          string   `json:"url"`
	Ingredients  []string `json:"ingredients"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// Register creates an account. A duplicate email comes back as an error with
// the server's message.
func (c *Client) Register(ctx context.Context, email, password, firstName, lastName string) error {
	var resp statusResponse
	err := c.do(ctx, http.MethodPut, "/add_user", map[string]string{
		"email":      email,
		"password":   password,
		"first_name": firstName,
		"last_name":  lastName,
	}, &resp)
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("register: %s", resp.Message)
	}
	return nil
}

// Login authenticates and stores the session cookie for later calls.
func (c *Client) Login(ctx context.Context, email, password string) (*Profile, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/login", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("login: %s", resp.Message)
	}
	return &resp.Profile, nil
}

// Logout clears the server-side session. It never fails on the server.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/logout", nil, nil)
}

func (c *Client) CookbookNames(ctx context.Context) ([]string, error) {
	var names []string
	if err := c.do(ctx, http.MethodGet, "/cookbook_names", nil, &names); err != nil {
		return nil, err
	}
	return names, nil
}

func (c *Client) CookbookInfo(ctx context.Context, name string) (*CookbookInfo, error) {
	var info CookbookInfo
	if err := c.do(ctx, http.MethodGet, "/cookbook_info/"+url.PathEscape(name), nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// RecipeNames lists recipe names, optionally scoped to one cookbook. An
// empty cookbook name lists everything, like the terminal frontend's
// press-enter-for-all prompt.
func (c *Client) RecipeNames(ctx context.Context, cookbook string) ([]string, error) {
	path := "/all_recipe_names"
	if cookbook != "" {
		path = "/recipe_names/" + url.PathEscape(cookbook)
	}
	var names []string
	if err := c.do(ctx, http.MethodGet, path, nil, &names); err != nil {
		return nil, err
	}
	return names, nil
}

func (c *Client) RecipeInfo(ctx context.Context, name string) (*RecipeInfo, error) {
	var info RecipeInfo
	if err := c.do(ctx, http.MethodGet, "/recipe_info/"+url.PathEscape(name), nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// CheckRecipe reports whether the named recipe exists in the session's scope.
func (c *Client) CheckRecipe(ctx context.Context, name string) (bool, error) {
	var resp struct {
		Validity bool `json:"validity"`
	}
	if err := c.do(ctx, http.MethodGet, "/check_recipe/"+url.PathEscape(name), nil, &resp); err != nil {
		return false, err
	}
	return resp.Validity, nil
}

func (c *Client) AddCookbook(ctx context.Context, name string, isBook bool, website string) (string, error) {
	var resp messageResponse
	err := c.do(ctx, http.MethodPut, "/add_cookbook", map[string]any{
		"new_cookbook_name": name,
		"new_is_book":       isBook,
		"new_website":       website,
	}, &resp)
	return mutationResult(resp, err)
}

func (c *Client) DeleteCookbook(ctx context.Context, name string) (string, error) {
	var resp messageResponse
	err := c.do(ctx, http.MethodDelete, "/delete_cookbook/"+url.PathEscape(name), nil, &resp)
	return mutationResult(resp, err)
}

func (c *Client) AddRecipe(ctx context.Context, name, cookbook string, servings int, isOnline bool, webpage string) (string, error) {
	var resp messageResponse
	err := c.do(ctx, http.MethodPut, "/add_recipe", map[string]any{
		"new_recipe_name":   name,
		"new_cookbook_name": cookbook,
		"new_servings":      servings,
		"new_is_online":     isOnline,
		"new_webpage":       webpage,
	}, &resp)
	return mutationResult(resp, err)
}

func (c *Client) DeleteRecipe(ctx context.Context, name string) (string, error) {
	var resp messageResponse
	err := c.do(ctx, http.MethodDelete, "/delete_recipe/"+url.PathEscape(name), nil, &resp)
	return mutationResult(resp, err)
}

func (c *Client) AddIngredient(ctx context.Context, name string) (string, error) {
	var resp messageResponse
	err := c.do(ctx, http.MethodPut, "/add_ingredient", map[string]string{"new_ingredient": name}, &resp)
	return mutationResult(resp, err)
}

func (c *Client) DeleteIngredient(ctx context.Context, name string) (string, error) {
	var resp messageResponse
	err := c.do(ctx, http.MethodDelete, "/delete_ingredient/"+url.PathEscape(name), nil, &resp)
	return mutationResult(resp, err)
}

func (c *Client) AddIngredientRecipePairing(ctx context.Context, ingredient, recipe string) (string, error) {
	var resp messageResponse
	err := c.do(ctx, http.MethodPut, "/add_ingredient_recipe_pairing", map[string]string{
		"ingredient_name": ingredient,
		"recipe_name":     recipe,
	}, &resp)
	return mutationResult(resp, err)
}

func mutationResult(resp messageResponse, err error) (string, error) {
	if err != nil {
		return "", err
	}
	if resp.Error != "" {
		return "", fmt.Errorf("%s", resp.Error)
	}
	return resp.Message, nil
}
