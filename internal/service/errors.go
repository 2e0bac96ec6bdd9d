package service

import "errors"

var (
	ErrInternal = errors.New("internal server error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden = errors.New("forbidden")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserWithEmailAlreadyExists = errors.New("user with this email already exists")
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	ErrProfileNotFound = errors.New("profile not found")
	ErrProfileAlreadyExists = errors.New("profile already exists")
	ErrUsernameTaken = errors.New("username is already taken")
	ErrUsernameCannotContainSpecialCharacters = errors.New("username cannot contain special characters")

	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrAlreadySubscribed = errors.New("already subscribed")
	ErrSelfSubscription = errors.New("cannot subscribe to yourself")
	ErrTargetNotFound = errors.New("subscription endpoint user not found")

	ErrPostNotFound = errors.New("post not found")
)
