package model

// Cookbook is a named recipe source owned by one user. A physical book has
// no website; an online cookbook should carry one (not enforced here).
type Cookbook struct {
	Name    string `json:"name"`
	IsBook  bool   `json:"is_book"`
	Website string `json:"website,omitempty"`
	OwnerID int64  `json:"owner_id"`
}
