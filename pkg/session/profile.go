package session

// Profile carries the member attributes that pre-fill matching template
// fields. Empty attributes leave the template default in place.
type Profile struct {
	Name         string `json:"name,omitempty"`
	Designation  string `json:"designation,omitempty"`
	Constituency string `json:"constituency,omitempty"`
}

// Values maps profile attributes to the field keys they seed.
func (p Profile) Values() map[string]string {
	return map[string]string{
		"name":         p.Name,
		"designation":  p.Designation,
		"constituency": p.Constituency,
	}
}
