package model

// Recipe belongs to a cookbook owned by the same user. CookbookName is a
// loose reference by name; the store does not enforce it.
type Recipe struct {
	Name         string `json:"name"`
	CookbookName string `json:"cookbook_name"`
	Servings     int    `json:"servings"`
	IsOnline     bool   `json:"is_online"`
	Webpage      string `json:"webpage,omitempty"`
	OwnerID      int64  `json:"owner_id"`
}
