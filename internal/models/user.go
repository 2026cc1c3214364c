package models

import "strings"

// User is the storefront's cached copy of the backend user record. Login
// and registration responses also carry the bearer token in the same object.
type User struct {
	Token             string `json:"token,omitempty"`
	Name              string `json:"name,omitempty"`
	Email             string `json:"email,omitempty"`
	MobileCountryCode string `json:"mobile_country_code,omitempty"`
	Mobile            string `json:"mobile,omitempty"`
}

func (u User) DisplayName() string {
	if name := strings.TrimSpace(u.Name); name != "" {
		return name
	}
	return "User"
}

func (u User) Phone() string {
	return strings.TrimSpace(u.MobileCountryCode + " " + u.Mobile)
}
