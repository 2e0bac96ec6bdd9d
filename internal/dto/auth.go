package dto

type CreateUserDto struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=48"`
}

type SignInDto struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=48"`
}

type RefreshTokenDto struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type RabbitMQUserRegisteredDto struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}
