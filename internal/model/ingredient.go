package model

type Ingredient struct {
	Name    string `json:"name"`
	OwnerID int64  `json:"owner_id"`
}
