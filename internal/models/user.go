package models

import "time"

type User struct {
	ID        string       `json:"id"`
	Email     string       `json:"email"`
	Password  string       `json:"-"` // El "-" evita que se serialice en JSON
	Name      string       `json:"name"`
	Settings  UserSettings `json:"settings"`
	CreatedAt time.Time    `json:"created_at"`
}

// UserSettings son las preferencias del usuario, guardadas como JSONB
type UserSettings struct {
	Currency      string `json:"currency"`
	Language      string `json:"language"`
	Theme         string `json:"theme"`
	Notifications bool   `json:"notifications"`
}

// DefaultUserSettings son las preferencias asignadas al registrarse
func DefaultUserSettings() UserSettings {
	return UserSettings{
		Currency:      "EUR",
		Language:      "fi",
		Theme:         "light",
		Notifications: true,
	}
}
