// Package locations is the district directory offered during sign-up.
package locations

import "strings"

// Location is a selectable district.
type Location struct {
	Name  string `json:"name"`
	State string `json:"state"`
}

var directory = []Location{
	{"Tiruppur District (East)", "Tamil Nadu"},
	{"Nilgiris District", "Tamil Nadu"},
	{"Erode District", "Tamil Nadu"},
	{"Palakkad District", "Kerala"},
	{"Idukki District", "Kerala"},
	{"Thrissur District", "Kerala"},
	{"Chennai District", "Tamil Nadu"},
	{"Coimbatore District", "Tamil Nadu"},
	{"Madurai District", "Tamil Nadu"},
	{"Salem District", "Tamil Nadu"},
	{"Tirunelveli District", "Tamil Nadu"},
	{"Thanjavur District", "Tamil Nadu"},
	{"Kochi District", "Kerala"},
	{"Thiruvananthapuram District", "Kerala"},
	{"Kozhikode District", "Kerala"},
	{"Kannur District", "Kerala"},
	{"Kollam District", "Kerala"},
	{"Alappuzha District", "Kerala"},
	{"Kottayam District", "Kerala"},
	{"Pathanamthitta District", "Kerala"},
	{"Malappuram District", "Kerala"},
	{"Wayanad District", "Kerala"},
	{"Kasaragod District", "Kerala"},
	{"Bangalore Urban District", "Karnataka"},
	{"Mysore District", "Karnataka"},
	{"Mangalore District", "Karnataka"},
	{"Hubli-Dharwad District", "Karnataka"},
	{"Belgaum District", "Karnataka"},
	{"Gulbarga District", "Karnataka"},
	{"Bellary District", "Karnataka"},
}

// All returns every location in directory order.
func All() []Location {
	return append([]Location(nil), directory...)
}

// Search returns locations whose name or state contains term, ignoring case.
// An empty term matches everything.
func Search(term string) []Location {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]Location, 0, len(directory))
	for _, l := range directory {
		if strings.Contains(strings.ToLower(l.Name), term) || strings.Contains(strings.ToLower(l.State), term) {
			out = append(out, l)
		}
	}
	return out
}

// Valid reports whether name is a directory entry.
func Valid(name string) bool {
	for _, l := range directory {
		if l.Name == name {
			return true
		}
	}
	return false
}
