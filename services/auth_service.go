package services

import (
	"context"
	"errors"
	"time"

	"github.com/anjiri1684/alx_travel/apperrors"
	"github.com/anjiri1684/alx_travel/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

type AuthConfig struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	FirstName   string
	LastName    string
	PhoneNumber string
	Role        string
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type AuthService struct {
	db        *gorm.DB
	cfg       AuthConfig
	blacklist TokenBlacklist
}

func NewAuthService(db *gorm.DB, cfg AuthConfig, blacklist TokenBlacklist) *AuthService {
	return &AuthService{db: db, cfg: cfg, blacklist: blacklist}
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	db := s.db.WithContext(ctx)

	roleName := in.Role
	if roleName == "" {
		roleName = models.RoleGuest
	}
	roleName, ok := models.NormalizeRoleName(roleName)
	if !ok {
		return nil, apperrors.NewValidationError("role must be HOST or GUEST")
	}

	var taken int64
	if err := db.Model(&models.User{}).
		Where("username = ? OR email = ?", in.Username, in.Email).
		Count(&taken).Error; err != nil {
		return nil, apperrors.NewInternalError("failed to check existing users", err)
	}
	if taken > 0 {
		return nil, apperrors.NewConflictError("a user with this username or email already exists")
	}

	var role models.Role
	if err := db.Where("name = ?", roleName).First(&role).Error; err != nil {
		return nil, apperrors.NewInternalError("role "+roleName+" is not seeded", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to hash password", err)
	}

	user := models.User{
		Username:    in.Username,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
		Password:    string(hash),
		IsActive:    true,
		RoleID:      role.ID,
	}
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.NewConflictError("a user with this username or email already exists")
		}
		return nil, apperrors.NewInternalError("failed to create user", err)
	}
	user.Role = role
	return &user, nil
}

// Login accepts either the username or the email as login.
func (s *AuthService) Login(ctx context.Context, login, password string) (*TokenPair, error) {
	var user models.User
	err := s.db.WithContext(ctx).Preload("Role").
		Where("username = ? OR email = ?", login, login).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewUnauthorizedError("no active account found with the given credentials")
		}
		return nil, apperrors.NewInternalError("failed to load user", err)
	}
	if !user.IsActive || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, apperrors.NewUnauthorizedError("no active account found with the given credentials")
	}
	return s.IssuePair(&user)
}

func (s *AuthService) IssuePair(user *models.User) (*TokenPair, error) {
	access, err := s.sign(user, TokenTypeAccess, s.cfg.AccessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.sign(user, TokenTypeRefresh, s.cfg.RefreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

func (s *AuthService) sign(user *models.User, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":    user.ID.String(),
		"role":       user.Role.Name,
		"token_type": tokenType,
		"jti":        uuid.NewString(),
		"iat":        now.Unix(),
		"exp":        now.Add(ttl).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", apperrors.NewInternalError("failed to sign token", err)
	}
	return signed, nil
}

// Parse checks signature and expiry and returns the token claims.
func (s *AuthService) Parse(raw string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(raw, func(*jwt.Token) (any, error) {
		return []byte(s.cfg.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, apperrors.NewUnauthorizedError("token is invalid or expired")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperrors.NewUnauthorizedError("token is invalid or expired")
	}
	return claims, nil
}

func (s *AuthService) parseRefresh(ctx context.Context, raw string) (jwt.MapClaims, error) {
	claims, err := s.Parse(raw)
	if err != nil {
		return nil, err
	}
	if claims["token_type"] != TokenTypeRefresh {
		return nil, apperrors.NewUnauthorizedError("token has wrong type")
	}
	jti, _ := claims["jti"].(string)
	revoked, err := s.blacklist.Contains(ctx, jti)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to check token blacklist", err)
	}
	if revoked {
		return nil, apperrors.NewUnauthorizedError("token is blacklisted")
	}
	return claims, nil
}

// Refresh exchanges a refresh token for a new access token. The role is
// read again so a changed role takes effect.
func (s *AuthService) Refresh(ctx context.Context, raw string) (string, error) {
	claims, err := s.parseRefresh(ctx, raw)
	if err != nil {
		return "", err
	}
	userID, _ := claims["user_id"].(string)

	var user models.User
	if err := s.db.WithContext(ctx).Preload("Role").First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.NewUnauthorizedError("user not found")
		}
		return "", apperrors.NewInternalError("failed to load user", err)
	}
	if !user.IsActive {
		return "", apperrors.NewUnauthorizedError("user is inactive")
	}
	return s.sign(&user, TokenTypeAccess, s.cfg.AccessTTL)
}

// Verify accepts any valid token that has not been revoked.
func (s *AuthService) Verify(ctx context.Context, raw string) error {
	claims, err := s.Parse(raw)
	if err != nil {
		return err
	}
	if claims["token_type"] == TokenTypeRefresh {
		_, err = s.parseRefresh(ctx, raw)
	}
	return err
}

// Logout revokes a refresh token belonging to userID until it expires.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID, raw string) error {
	claims, err := s.parseRefresh(ctx, raw)
	if err != nil {
		return err
	}
	if owner, _ := claims["user_id"].(string); owner != userID.String() {
		return apperrors.NewUnauthorizedError("token does not belong to this user")
	}

	jti, _ := claims["jti"].(string)
	exp, _ := claims["exp"].(float64)
	if err := s.blacklist.Add(ctx, jti, time.Unix(int64(exp), 0)); err != nil {
		return apperrors.NewInternalError("failed to blacklist token", err)
	}
	return nil
}
