package service

import "errors"

var (
	ErrInternal               = errors.New("internal server error")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrInvalidCredentials     = errors.New("invalid username or password")
	ErrInvalidToken           = errors.New("the token is invalid or has expired")
	ErrUserNotFound           = errors.New("user not found")
	ErrUserAlreadyExists      = errors.New("user with this username or email already exists")
	ErrUsernameTaken          = errors.New("please use a different username")
	ErrEmailTaken             = errors.New("please use a different email address")
	ErrPasswordsDoNotMatch    = errors.New("passwords do not match")
	ErrPasswordTooLong        = errors.New("password must be at most 72 bytes long")
	ErrEmailTooLong           = errors.New("email must be at most 120 characters")
	ErrInvalidUsername        = errors.New("username must be between 3 and 64 characters and contain no spaces")
	ErrAboutMeTooLong         = errors.New("about me must be at most 140 characters")
	ErrInvalidUpdate          = errors.New("only username, email and about_me can be updated and they must be strings")
	ErrCannotFollowYourself   = errors.New("You cannot follow yourself!")
	ErrCannotUnfollowYourself = errors.New("You cannot unfollow yourself!")
	ErrInvalidPost            = errors.New("post body must be between 1 and 140 characters")
	ErrInvalidPage            = errors.New("page number must be a positive integer")
	ErrInvalidLanguage        = errors.New("invalid language code")
	ErrTranslationUnavailable = errors.New("the translation service is not configured")
	ErrTranslationFailed      = errors.New("the translation service failed")
)
