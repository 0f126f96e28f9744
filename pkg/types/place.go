package types

// Known place categories. A catalog may carry a subset of these, in any order.
const (
	CategoryFoodDrink = "Food & Drink"
	CategoryMuseums   = "Museums"
	CategoryParks     = "Parks & Nature"
	CategoryLandmarks = "Buildings & Monuments"
)

// CategoryAll is the pseudo-category that disables category filtering.
const CategoryAll = "All"

// Place is a read-only catalog entry.
type Place struct {
	ID          int     `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Category    string  `json:"category" yaml:"category"`
	Rating      float64 `json:"rating" yaml:"rating"`
	Address     string  `json:"address" yaml:"address"`
	Image       string  `json:"image" yaml:"image"`
	Description string  `json:"description" yaml:"description"`
	Website     string  `json:"website" yaml:"website"`
}
