package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Randle9000/phresh-api/internal/core/domain"
	"github.com/Randle9000/phresh-api/internal/infra/logger"
)

// ErrorResponse represents a generic error payload with the request ID for debugging.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// NewErrorResponse creates an error response with the request ID from context.
func NewErrorResponse(c *gin.Context, errorMsg string) ErrorResponse {
	requestID, _ := c.Request.Context().Value(logger.RequestIDKey{}).(string)

	return ErrorResponse{
		Error:     errorMsg,
		RequestID: requestID,
	}
}

// MessageResponse represents a simple message payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// AccessTokenResponse carries a freshly minted bearer token.
type AccessTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserPublic is the API view of an account. Password material never leaves
// the service.
type UserPublic struct {
	ID            string               `json:"id"`
	Email         string               `json:"email"`
	Username      string               `json:"username"`
	EmailVerified bool                 `json:"email_verified"`
	IsActive      bool                 `json:"is_active"`
	IsSuperuser   bool                 `json:"is_superuser"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
	AccessToken   *AccessTokenResponse `json:"access_token,omitempty"`
}

func newUserPublic(user *domain.User, token *domain.AccessToken) UserPublic {
	out := UserPublic{
		ID:            user.ID,
		Email:         user.Email,
		Username:      user.Username,
		EmailVerified: user.EmailVerified,
		IsActive:      user.IsActive,
		IsSuperuser:   user.IsSuperuser,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}

	if token != nil {
		out.AccessToken = &AccessTokenResponse{
			AccessToken: token.Token,
			TokenType:   token.TokenType,
		}
	}

	return out
}

// RegisterUserRequest defines the account registration payload.
type RegisterUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest defines the login form. The username field carries the email
// address, matching the OAuth2 password flow shape.
type LoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// UpdateUserRequest defines the self-service account update payload. Absent
// fields are left untouched.
type UpdateUserRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	Username *string `json:"username"`
	Password *string `json:"password"`
}

// ProfilePublic is the API view of a profile.
type ProfilePublic struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FullName    *string   `json:"full_name"`
	PhoneNumber *string   `json:"phone_number"`
	Bio         *string   `json:"bio"`
	Image       *string   `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newProfilePublic(profile *domain.Profile) ProfilePublic {
	return ProfilePublic{
		ID:          profile.ID,
		UserID:      profile.UserID,
		Username:    profile.Username,
		Email:       profile.Email,
		FullName:    profile.FullName,
		PhoneNumber: profile.PhoneNumber,
		Bio:         profile.Bio,
		Image:       profile.Image,
		CreatedAt:   profile.CreatedAt,
		UpdatedAt:   profile.UpdatedAt,
	}
}

// UpdateProfileRequest defines the owner-editable profile fields. Absent
// fields are left untouched.
type UpdateProfileRequest struct {
	FullName    *string `json:"full_name"`
	PhoneNumber *string `json:"phone_number"`
	Bio         *string `json:"bio"`
	Image       *string `json:"image"`
}

// CleaningPublic is the API view of a cleaning listing.
type CleaningPublic struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description"`
	Price        float64   `json:"price"`
	CleaningType string    `json:"cleaning_type"`
	OwnerID      string    `json:"owner"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func newCleaningPublic(cleaning *domain.Cleaning) CleaningPublic {
	return CleaningPublic{
		ID:           cleaning.ID,
		Name:         cleaning.Name,
		Description:  cleaning.Description,
		Price:        cleaning.Price,
		CleaningType: string(cleaning.CleaningType),
		OwnerID:      cleaning.OwnerID,
		CreatedAt:    cleaning.CreatedAt,
		UpdatedAt:    cleaning.UpdatedAt,
	}
}

func newCleaningList(cleanings []domain.Cleaning) []CleaningPublic {
	out := make([]CleaningPublic, 0, len(cleanings))
	for i := range cleanings {
		out = append(out, newCleaningPublic(&cleanings[i]))
	}
	return out
}

// CreateCleaningRequest defines the listing creation payload.
type CreateCleaningRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  *string `json:"description"`
	Price        float64 `json:"price" binding:"gte=0"`
	CleaningType string  `json:"cleaning_type"`
}

// UpdateCleaningRequest defines the owner-editable listing fields. Absent
// fields are left untouched.
type UpdateCleaningRequest struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	Price        *float64 `json:"price"`
	CleaningType *string  `json:"cleaning_type"`
}

// HealthResponse reports liveness.
type HealthResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
}

// ReadinessResponse reports readiness of downstream dependencies.
type ReadinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}
