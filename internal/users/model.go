package users

import "time"

// User is an authenticated account, keyed by the Google subject id.
type User struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullName"`
	GivenName  string    `json:"givenName"`
	FamilyName string    `json:"familyName"`
	PictureURL string    `json:"pictureUrl"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
