package dto

import (
	"time"

	"github.com/BloggingApp/microblog-service/internal/model"
	"github.com/BloggingApp/microblog-service/pkg/utils"
	"github.com/google/uuid"
)

const (
	ProfileAvatarSize  = 128
	FollowerAvatarSize = 36
)

type GetUserDto struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	AvatarURL   string    `json:"avatar_url"`
	AboutMe     *string   `json:"about_me"`
	LastSeen    time.Time `json:"last_seen"`
	CreatedAt   time.Time `json:"created_at"`
	Followers   int64     `json:"followers"`
	Following   int64     `json:"following"`
	IsFollowing bool      `json:"is_following"`
}

func GetUserDtoFromUser(user model.User) *GetUserDto {
	return &GetUserDto{
		ID:        user.ID,
		Username:  user.Username,
		AvatarURL: utils.AvatarURL(user.Email, ProfileAvatarSize),
		AboutMe:   user.AboutMe,
		LastSeen:  user.LastSeen,
		CreatedAt: user.CreatedAt,
	}
}

// GetMeDto is the profile of the authenticated user, the only place the
// email is exposed.
type GetMeDto struct {
	model.UserWithoutPasswordHash
	AvatarURL string `json:"avatar_url"`
}

func GetMeDtoFromUser(user model.User) GetMeDto {
	return GetMeDto{
		UserWithoutPasswordHash: model.UserWithoutPasswordHashFromUser(user),
		AvatarURL:               utils.AvatarURL(user.Email, ProfileAvatarSize),
	}
}

type FollowerDto struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	AvatarURL string    `json:"avatar_url"`
	AboutMe   *string   `json:"about_me"`
}

func FollowerDtosFromFullFollowers(list []*model.FullFollower) []*FollowerDto {
	dtos := make([]*FollowerDto, 0, len(list))
	for _, f := range list {
		dtos = append(dtos, &FollowerDto{
			ID:        f.ID,
			Username:  f.Username,
			AvatarURL: utils.AvatarURL(f.Email, FollowerAvatarSize),
			AboutMe:   f.AboutMe,
		})
	}
	return dtos
}
