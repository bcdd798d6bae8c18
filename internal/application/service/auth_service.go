package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/voltify/evdealer-api/internal/domain/entity"
	"github.com/voltify/evdealer-api/internal/domain/repository"
	"github.com/voltify/evdealer-api/pkg/apperror"
	"github.com/voltify/evdealer-api/pkg/oauth"
	"github.com/voltify/evdealer-api/pkg/utils"
)

// AuthService handles authentication-related operations
type AuthService struct {
	userRepo           repository.UserRepository
	roleRepo           repository.RoleRepository
	jwtManager         *utils.JWTManager
	googleOAuthService *oauth.GoogleOAuthService
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	jwtManager *utils.JWTManager,
	googleOAuthService *oauth.GoogleOAuthService,
) *AuthService {
	return &AuthService{
		userRepo:           userRepo,
		roleRepo:           roleRepo,
		jwtManager:         jwtManager,
		googleOAuthService: googleOAuthService,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	User         *entity.User
	AccessToken  string
	RefreshToken string
}

// Login authenticates an operator and returns tokens
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user.ID)
}

// RegisterInput represents the registration input
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Register creates a new operator account with the default sales role
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*entity.User, error) {
	existingUser, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		return nil, apperror.NewConflictError("Email already registered")
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  hashedPassword,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	defaultRole, err := s.roleRepo.GetByName(ctx, "sales")
	if err != nil {
		// Role assignment failure should not fail registration
		return user, nil
	}
	if defaultRole != nil {
		_ = s.userRepo.AssignRole(ctx, user.ID, defaultRole.ID)
	}

	return user, nil
}

// RefreshToken generates new tokens from a refresh token
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*LoginOutput, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	return s.issueTokens(ctx, userID)
}

// GetCurrentUser returns the operator for a validated token, with roles
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetWithRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// UpdateProfileInput represents a profile update
type UpdateProfileInput struct {
	UserID    uuid.UUID
	FirstName *string
	LastName  *string
	Photo     *string
}

// UpdateProfile updates the operator's profile fields
func (s *AuthService) UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Photo != nil {
		user.Photo = input.Photo
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.userRepo.GetWithRoles(ctx, user.ID)
}

// ChangePasswordInput represents a password change
type ChangePasswordInput struct {
	UserID          uuid.UUID
	CurrentPassword string
	NewPassword     string
}

// ChangePassword verifies the current password and replaces it
func (s *AuthService) ChangePassword(ctx context.Context, input *ChangePasswordInput) error {
	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewNotFoundError("User")
	}

	if !utils.CheckPasswordHash(input.CurrentPassword, user.Password) {
		return apperror.NewBadRequestError("Current password is incorrect")
	}

	hashedPassword, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}

	user.Password = hashedPassword
	return s.userRepo.Update(ctx, user)
}

// GetGoogleAuthURL returns the Google consent URL for operator SSO
func (s *AuthService) GetGoogleAuthURL(state string) (string, error) {
	if !s.googleOAuthService.IsConfigured() {
		return "", apperror.NewBadRequestError("Google OAuth is not configured")
	}
	return s.googleOAuthService.GetAuthURL(state), nil
}

// HandleGoogleCallback exchanges the authorization code, finds or creates
// the matching operator account, and issues tokens.
func (s *AuthService) HandleGoogleCallback(ctx context.Context, code string) (*LoginOutput, error) {
	token, err := s.googleOAuthService.ExchangeCode(ctx, code)
	if err != nil {
		return nil, apperror.NewBadRequestError("Invalid authorization code")
	}

	info, err := s.googleOAuthService.GetUserInfo(ctx, token)
	if err != nil {
		return nil, apperror.NewBadRequestError("Failed to fetch Google account info")
	}

	user, err := s.userRepo.GetByEmail(ctx, info.Email)
	if err != nil {
		return nil, err
	}

	if user == nil {
		providerID := info.ID
		photo := info.Picture
		user = &entity.User{
			FirstName:  info.GivenName,
			LastName:   info.FamilyName,
			Email:      info.Email,
			Provider:   "google",
			ProviderID: &providerID,
			Photo:      &photo,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
		if defaultRole, roleErr := s.roleRepo.GetByName(ctx, "sales"); roleErr == nil && defaultRole != nil {
			_ = s.userRepo.AssignRole(ctx, user.ID, defaultRole.ID)
		}
	}

	return s.issueTokens(ctx, user.ID)
}

// GoogleSuccessURL returns the frontend URL to redirect to after SSO success
func (s *AuthService) GoogleSuccessURL() string {
	return s.googleOAuthService.GetFrontendSuccessURL()
}

// GoogleErrorURL returns the frontend URL to redirect to after SSO failure
func (s *AuthService) GoogleErrorURL() string {
	return s.googleOAuthService.GetFrontendErrorURL()
}

func (s *AuthService) issueTokens(ctx context.Context, userID uuid.UUID) (*LoginOutput, error) {
	user, err := s.userRepo.GetWithRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidCredentials
	}

	roles := make([]string, 0)
	for _, role := range user.Roles {
		roles = append(roles, role.Name)
	}
	permissions := user.GetPermissions()

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, roles, permissions)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
