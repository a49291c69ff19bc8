package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"bizpos/internal/dto"
	"bizpos/internal/model"
	"bizpos/internal/repository"
)

const bcryptCost = 12

// Claims is the JWT payload. Role travels in the token so authorization
// never needs a DB round trip.
type Claims struct {
	UserID uuid.UUID  `json:"uid"`
	Name   string     `json:"name"`
	Role   model.Role `json:"role"`
	// Refresh marks refresh tokens; they are only good for minting a
	// new pair, never for calling the API.
	Refresh bool `json:"refresh,omitempty"`
	jwt.RegisteredClaims
}

// AuthService issues tokens and manages accounts. A user and its
// employee profile are created in one transaction and never exist
// apart.
type AuthService struct {
	users      repository.UserRepository
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	log        zerolog.Logger
	now        func() time.Time
}

func NewAuthService(users repository.UserRepository, secret string, accessTTL, refreshTTL time.Duration, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:      users,
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		log:        log,
		now:        time.Now,
	}
}

// Login verifies credentials and returns an access/refresh token pair.
// Deactivated accounts and accounts with a deactivated employee profile
// cannot log in.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	u, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		// Same response whether the account exists or not.
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		s.log.Warn().Str("username", req.Username).Msg("failed login attempt")
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	if !u.IsActive || u.Profile == nil || !u.Profile.IsActiveEmployee {
		return nil, fmt.Errorf("%w: account disabled", ErrUnauthorized)
	}
	return s.issuePair(u)
}

// Refresh trades a valid refresh token for a new pair. The account is
// re-read so a deactivation since issuance takes effect immediately.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	claims, err := s.ParseToken(refreshToken)
	if err != nil || !claims.Refresh {
		return nil, fmt.Errorf("%w: invalid refresh token", ErrUnauthorized)
	}
	u, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: account not found", ErrUnauthorized)
	}
	if !u.IsActive || u.Profile == nil || !u.Profile.IsActiveEmployee {
		return nil, fmt.Errorf("%w: account disabled", ErrUnauthorized)
	}
	return s.issuePair(u)
}

// ParseToken validates signature and expiry and returns the claims.
func (s *AuthService) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", ErrUnauthorized)
	}
	return claims, nil
}

func (s *AuthService) issuePair(u *model.User) (*dto.LoginResponse, error) {
	access, err := s.sign(u, s.accessTTL, false)
	if err != nil {
		return nil, err
	}
	refresh, err := s.sign(u, s.refreshTTL, true)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int(s.accessTTL.Seconds()),
		User:         toUserResponse(u),
	}, nil
}

func (s *AuthService) sign(u *model.User, ttl time.Duration, refresh bool) (string, error) {
	now := s.now()
	claims := Claims{
		UserID:  u.ID,
		Name:    u.Name,
		Role:    u.Profile.Role,
		Refresh: refresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ─── User management ─────────────────────────────────────────────────────────

// CreateUser creates the account and its employee profile atomically.
func (s *AuthService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	role := model.Role(req.Role)
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalid, req.Role)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}
	u := &model.User{
		Username:     req.Username,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	p := &model.EmployeeProfile{
		Role:             role,
		PhoneNumber:      req.PhoneNumber,
		IsActiveEmployee: true,
	}
	err = runTx(ctx, s.users.DB(), func(tx *gorm.DB) error {
		return s.users.CreateWithProfileTx(tx, u, p)
	})
	if err != nil {
		return nil, err
	}
	u.Profile = p
	s.log.Info().Str("user_id", u.ID.String()).Str("role", req.Role).Msg("user created")
	resp := toUserResponse(u)
	return &resp, nil
}

func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	resp := toUserResponse(u)
	return &resp, nil
}

func (s *AuthService) ListUsers(ctx context.Context, includeInactive bool) ([]dto.UserResponse, error) {
	users, err := s.users.List(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return out, nil
}

func (s *AuthService) UpdateUser(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if req.Name != "" {
		u.Name = req.Name
	}
	if req.Email != nil {
		u.Email = req.Email
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	if u.Profile != nil && (req.Role != "" || req.PhoneNumber != nil) {
		if req.Role != "" {
			role := model.Role(req.Role)
			if !role.Valid() {
				return nil, fmt.Errorf("%w: unknown role %q", ErrInvalid, req.Role)
			}
			u.Profile.Role = role
		}
		if req.PhoneNumber != nil {
			u.Profile.PhoneNumber = req.PhoneNumber
		}
		if err := s.users.UpdateProfile(ctx, u.Profile); err != nil {
			return nil, err
		}
	}
	resp := toUserResponse(u)
	return &resp, nil
}

// DeactivateUser disables both the login and the employee profile; the
// account keeps its sale history.
func (s *AuthService) DeactivateUser(ctx context.Context, id uuid.UUID) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return notFound(err)
	}
	return s.users.SoftDelete(ctx, id)
}

func (s *AuthService) ReactivateUser(ctx context.Context, id uuid.UUID) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return notFound(err)
	}
	return s.users.Reactivate(ctx, id)
}

func toUserResponse(u *model.User) dto.UserResponse {
	resp := dto.UserResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Name:     u.Name,
		Email:    u.Email,
		IsActive: u.IsActive,
	}
	if u.Profile != nil {
		resp.Role = string(u.Profile.Role)
		resp.PhoneNumber = u.Profile.PhoneNumber
	}
	return resp
}
