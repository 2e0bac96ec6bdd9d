package dto

import (
	"github.com/MicroblogApp/social-service/internal/model"
	"github.com/google/uuid"
)

type CreateProfileDto struct {
	Username  string `json:"username" binding:"required,min=3,max=20"`
	FirstName string `json:"first_name" binding:"required,max=50"`
	LastName  string `json:"last_name" binding:"required,max=50"`
}

// GetProfileDto is the list/summary shape. It never carries the email.
type GetProfileDto struct {
	ID       uuid.UUID `json:"id"`
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	FullName string    `json:"full_name"`
}

// GetProfileDetailsDto is the single-resource shape: summary plus the owning
// account's email.
type GetProfileDetailsDto struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	FullName string    `json:"full_name"`
}

func GetProfileDtoFromProfile(profile model.Profile) *GetProfileDto {
	return &GetProfileDto{
		ID: profile.ID,
		UserID: profile.UserID,
		Username: profile.Username,
		FullName: profile.FullName(),
	}
}

func GetProfileDetailsDtoFromProfile(profile model.ProfileWithEmail) *GetProfileDetailsDto {
	return &GetProfileDetailsDto{
		ID: profile.ID,
		Email: profile.Email,
		UserID: profile.UserID,
		Username: profile.Username,
		FullName: profile.FullName(),
	}
}
