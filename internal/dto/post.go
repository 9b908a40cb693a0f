package dto

import (
	"time"

	"github.com/BloggingApp/microblog-service/internal/model"
	"github.com/BloggingApp/microblog-service/internal/pagination"
	"github.com/BloggingApp/microblog-service/pkg/utils"
	"github.com/google/uuid"
)

const PostAvatarSize = 36

type PostAuthorDto struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	AvatarURL string    `json:"avatar_url"`
}

type PostDto struct {
	ID        uuid.UUID     `json:"id"`
	Body      string        `json:"body"`
	Language  string        `json:"language"`
	CreatedAt time.Time     `json:"created_at"`
	Author    PostAuthorDto `json:"author"`
}

type PostsPage = pagination.Page[*PostDto]

func PostDtoFromFullPost(post *model.FullPost) *PostDto {
	return &PostDto{
		ID:        post.ID,
		Body:      post.Body,
		Language:  post.Language,
		CreatedAt: post.CreatedAt,
		Author: PostAuthorDto{
			ID:        post.UserID,
			Username:  post.Username,
			AvatarURL: utils.AvatarURL(post.AuthorEmail, PostAvatarSize),
		},
	}
}
