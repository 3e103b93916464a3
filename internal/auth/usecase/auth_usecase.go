package usecase

import (
	"fmt"
	"strings"

	"vidtube-backend/internal/auth/domain"
	"vidtube-backend/internal/auth/dto"
	"vidtube-backend/internal/auth/password"
	"vidtube-backend/internal/auth/repository"
	"vidtube-backend/internal/auth/token"
)

// authUsecase implements AuthUsecase interface
type authUsecase struct {
	userRepo repository.UserRepository
	signer   *token.Signer
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(userRepo repository.UserRepository, signer *token.Signer) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		signer:   signer,
	}
}

func (u *authUsecase) Register(req *dto.RegisterRequest) (*dto.UserResponse, error) {
	if isBlank(req.Username) || isBlank(req.Email) || isBlank(req.FullName) ||
		isBlank(req.Password) || isBlank(req.Avatar) {
		return nil, ErrMissingFields
	}

	existing, err := u.userRepo.FindByUsernameOrEmail(req.Username, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:   req.Username,
		Email:      req.Email,
		FullName:   strings.TrimSpace(req.FullName),
		Password:   hashed,
		Avatar:     req.Avatar,
		CoverImage: req.CoverImage,
	}

	if err := u.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return dto.NewUserResponse(user), nil
}

func (u *authUsecase) Login(req *dto.LoginRequest) (*dto.TokenResponse, error) {
	if isBlank(req.Username) && isBlank(req.Email) {
		return nil, ErrMissingFields
	}
	if isBlank(req.Password) {
		return nil, ErrMissingFields
	}

	user, err := u.userRepo.FindByUsernameOrEmail(req.Username, req.Email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	ok, err := password.Verify(req.Password, user.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	return u.issueTokenPair(user)
}

func (u *authUsecase) RefreshTokens(refreshToken string) (*dto.TokenResponse, error) {
	if refreshToken == "" {
		return nil, ErrUnauthorized
	}

	claims, err := u.signer.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := u.userRepo.FindByID(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidRefreshToken
	}

	// Revocation check: only the refresh token currently stored on the
	// user record is valid. Logout or a newer login invalidates older
	// tokens even before they expire.
	if user.RefreshToken == "" || user.RefreshToken != refreshToken {
		return nil, ErrInvalidRefreshToken
	}

	// Rotation: the presented token is superseded by the new pair.
	return u.issueTokenPair(user)
}

func (u *authUsecase) ChangePassword(userID, oldPassword, newPassword string) error {
	if isBlank(oldPassword) || isBlank(newPassword) {
		return ErrMissingFields
	}

	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	ok, err := password.Verify(oldPassword, user.Password)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidCredentials
	}

	hashed, err := password.Hash(newPassword)
	if err != nil {
		return err
	}

	// Only the credential column is written; the stored refresh token is
	// untouched so the existing session stays valid.
	if err := u.userRepo.UpdatePassword(user.ID, hashed); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	return nil
}

func (u *authUsecase) Logout(userID string) error {
	// Clearing an already-empty refresh token is a no-op, so logout is
	// idempotent.
	if err := u.userRepo.SetRefreshToken(userID, ""); err != nil {
		return fmt.Errorf("clear refresh token: %w", err)
	}
	return nil
}

func (u *authUsecase) ValidateAccessToken(tokenString string) (*domain.User, error) {
	claims, err := u.signer.VerifyAccess(tokenString)
	if err != nil {
		return nil, ErrInvalidToken
	}

	// Directory lookup on every request so profile changes take effect
	// immediately; claims are display convenience only.
	user, err := u.userRepo.FindByID(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	// Sanitized projection for the request-scoped auth context.
	user.Password = ""
	user.RefreshToken = ""
	return user, nil
}

func (u *authUsecase) Profile(userID string) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return dto.NewUserResponse(user), nil
}

func (u *authUsecase) UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	if isBlank(req.FullName) && isBlank(req.Email) {
		return nil, ErrMissingFields
	}

	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	fields := map[string]interface{}{}
	if !isBlank(req.FullName) {
		fields["full_name"] = strings.TrimSpace(req.FullName)
	}
	if !isBlank(req.Email) {
		email := strings.ToLower(strings.TrimSpace(req.Email))
		if email != user.Email {
			existing, err := u.userRepo.FindByUsernameOrEmail("", email)
			if err != nil {
				return nil, fmt.Errorf("check existing email: %w", err)
			}
			if existing != nil && existing.ID != userID {
				return nil, ErrUserExists
			}
		}
		fields["email"] = email
	}

	if err := u.userRepo.UpdateProfile(userID, fields); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	return u.Profile(userID)
}

func (u *authUsecase) UpdateAvatar(userID, avatarURL string) (*dto.UserResponse, error) {
	if isBlank(avatarURL) {
		return nil, ErrMissingFields
	}
	return u.updateImage(userID, "avatar", avatarURL)
}

func (u *authUsecase) UpdateCoverImage(userID, coverURL string) (*dto.UserResponse, error) {
	if isBlank(coverURL) {
		return nil, ErrMissingFields
	}
	return u.updateImage(userID, "cover_image", coverURL)
}

func (u *authUsecase) updateImage(userID, column, url string) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := u.userRepo.UpdateProfile(userID, map[string]interface{}{column: url}); err != nil {
		return nil, fmt.Errorf("update %s: %w", column, err)
	}

	return u.Profile(userID)
}

// issueTokenPair generates a fresh access+refresh pair and persists the
// refresh token on the user record, overwriting any prior value. This is
// the single-session invalidation point: a second login or a rotation
// silently invalidates the previous refresh token.
func (u *authUsecase) issueTokenPair(user *domain.User) (*dto.TokenResponse, error) {
	accessToken, err := u.signer.IssueAccess(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := u.signer.IssueRefresh(user.ID)
	if err != nil {
		return nil, err
	}

	if err := u.userRepo.SetRefreshToken(user.ID, refreshToken); err != nil {
		return nil, fmt.Errorf("persist refresh token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         dto.NewUserResponse(user),
	}, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
