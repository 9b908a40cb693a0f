package model

import (
	"time"

	"github.com/google/uuid"
)

const MaxAboutMeLength = 140

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	AboutMe      *string   `json:"about_me"`
	LastSeen     time.Time `json:"last_seen"`
	CreatedAt    time.Time `json:"created_at"`
}

type UserWithoutPasswordHash struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	AboutMe   *string   `json:"about_me"`
	LastSeen  time.Time `json:"last_seen"`
	CreatedAt time.Time `json:"created_at"`
}

func UserWithoutPasswordHashFromUser(user User) UserWithoutPasswordHash {
	return UserWithoutPasswordHash{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		AboutMe:   user.AboutMe,
		LastSeen:  user.LastSeen,
		CreatedAt: user.CreatedAt,
	}
}

// User restores a User with an empty password hash.
func (u UserWithoutPasswordHash) User() User {
	return User{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		AboutMe:   u.AboutMe,
		LastSeen:  u.LastSeen,
		CreatedAt: u.CreatedAt,
	}
}
