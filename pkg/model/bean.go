package model

// BeanInfo is a bean search result from an external roaster directory. Not
// persisted; the caller copies whatever it wants into a Recipe.
type BeanInfo struct {
	Name       string   `json:"name"`
	Roaster    string   `json:"roaster,omitempty"`
	Origin     string   `json:"origin,omitempty"`
	RoastLevel string   `json:"roastLevel,omitempty"`
	Rating     *float64 `json:"rating,omitempty"`
	Notes      string   `json:"notes,omitempty"`
	URL        string   `json:"url,omitempty"`
}
