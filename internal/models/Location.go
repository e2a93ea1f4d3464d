package models

// Location is a geocoding result: a canonical place resolved from a free-text
// query.
type Location struct {
	Name      string  `json:"name" example:"Paris"`
	Latitude  float64 `json:"latitude" example:"48.8566"`
	Longitude float64 `json:"longitude" example:"2.3522"`
	Country   string  `json:"country" example:"France"`
}
