package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"taxpadi/internal/config"
	"taxpadi/internal/domain"
	"taxpadi/internal/port"
)

// RegisterInput is the DTO for self-registration.
type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name" binding:"required"`
}

// RegisterOutput contains the results of a successful registration.
type RegisterOutput struct {
	User   *domain.User `json:"user"`
	Tokens *TokenPair   `json:"tokens"`
}

// VerifyEmailInput is the DTO for email verification requests.
type VerifyEmailInput struct {
	Token string `json:"token" binding:"required"`
}

// RegistrationService defines the self-registration contract.
type RegistrationService interface {
	Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error)
	VerifyEmail(ctx context.Context, token string) error
}

type registrationService struct {
	userRepo    port.UserRepository
	emailSender port.EmailSender
	authSvc     AuthService
	jwtCfg      config.JWTConfig
}

// NewRegistrationService creates a new RegistrationService.
func NewRegistrationService(
	userRepo port.UserRepository,
	emailSender port.EmailSender,
	authSvc AuthService,
	jwtCfg config.JWTConfig,
) RegistrationService {
	return &registrationService{
		userRepo:    userRepo,
		emailSender: emailSender,
		authSvc:     authSvc,
		jwtCfg:      jwtCfg,
	}
}

func (s *registrationService) Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), 12)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.User{
		Email:        input.Email,
		PasswordHash: string(hash),
		FullName:     input.FullName,
		Role:         domain.RoleMember,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err // ErrDuplicateEmail propagates naturally
	}

	// A failed send must not block registration; the user can re-request.
	verificationToken, err := s.generateVerificationToken(user)
	if err != nil {
		log.Printf("WARNING: failed to generate verification token for %s: %v", user.Email, err)
	} else if err := s.emailSender.SendVerificationEmail(ctx, user.Email, user.FullName, verificationToken); err != nil {
		log.Printf("WARNING: failed to send verification email to %s: %v", user.Email, err)
	}

	tokens, err := s.authSvc.GenerateTokenPairForUser(user)
	if err != nil {
		return nil, fmt.Errorf("generating tokens: %w", err)
	}

	return &RegisterOutput{User: user, Tokens: tokens}, nil
}

func (s *registrationService) VerifyEmail(ctx context.Context, tokenString string) error {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtCfg.Secret), nil
	})
	if err != nil || !token.Valid {
		return domain.ErrVerificationTokenInvalid
	}

	aud, _ := claims.GetAudience()
	verified := false
	for _, a := range aud {
		if a == "verify" {
			verified = true
			break
		}
	}
	if !verified {
		return domain.ErrVerificationTokenInvalid
	}

	return s.userRepo.SetEmailVerified(ctx, claims.UserID)
}

func (s *registrationService) generateVerificationToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    s.jwtCfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
			ID:        uuid.New().String(),
			Audience:  jwt.ClaimStrings{"verify"},
		},
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtCfg.Secret))
}
