// ABOUTME: UserProfile holds the durable trip slots remembered across turns
// ABOUTME: Destinations form an MRU list with the active one mirrored twice
package models

// UserProfile is the durable per-session record of what the user has told us.
// It lives only as long as the hosting session; nothing is written to disk.
type UserProfile struct {
	Destinations      []string  `json:"destinations,omitempty"`
	ActiveDestination string    `json:"active_destination,omitempty"`
	Destination       string    `json:"destination,omitempty"` // legacy mirror of ActiveDestination
	StartDate         string    `json:"start_date,omitempty"`
	EndDate           string    `json:"end_date,omitempty"`
	Style             string    `json:"style,omitempty"`
	CurrentLocation   string    `json:"current_location,omitempty"`
	LocationData      *Location `json:"location_data,omitempty"`
}

// Clone returns a copy whose destination list is independent of the receiver.
func (p UserProfile) Clone() UserProfile {
	out := p
	if p.Destinations != nil {
		out.Destinations = append([]string(nil), p.Destinations...)
	}
	return out
}

// CurrentDestination returns the active destination, falling back to the
// legacy field for profiles written before the MRU list existed.
func (p UserProfile) CurrentDestination() string {
	if p.ActiveDestination != "" {
		return p.ActiveDestination
	}
	return p.Destination
}

// Location is a resolved approximate user location.
type Location struct {
	LocationString string  `json:"location_string"`
	City           string  `json:"city,omitempty"`
	Region         string  `json:"region,omitempty"`
	Country        string  `json:"country,omitempty"`
	CountryCode    string  `json:"country_code,omitempty"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
}
