package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"taxpadi/internal/domain"
	"taxpadi/internal/service"
	"taxpadi/mocks"
)

func newRegistrationFixture() (*mocks.MockUserRepo, *mocks.MockEmailSender, service.RegistrationService) {
	userRepo := new(mocks.MockUserRepo)
	emailSender := new(mocks.MockEmailSender)
	cfg := testJWTConfig()
	authSvc := service.NewAuthService(userRepo, cfg)
	svc := service.NewRegistrationService(userRepo, emailSender, authSvc, cfg)
	return userRepo, emailSender, svc
}

func TestRegistrationService_Register_Success(t *testing.T) {
	userRepo, emailSender, svc := newRegistrationFixture()

	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "new@test.com" &&
			u.Role == domain.RoleMember &&
			u.IsActive &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password123")) == nil
	})).Return(nil)
	emailSender.On("SendVerificationEmail", mock.Anything, "new@test.com", "New User", mock.Anything).Return(nil)

	out, err := svc.Register(context.Background(), service.RegisterInput{
		Email:    "new@test.com",
		Password: "password123",
		FullName: "New User",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, out.Tokens.AccessToken)
	assert.Equal(t, "new@test.com", out.User.Email)

	userRepo.AssertExpectations(t)
	emailSender.AssertExpectations(t)
}

func TestRegistrationService_Register_DuplicateEmail(t *testing.T) {
	userRepo, _, svc := newRegistrationFixture()

	userRepo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicateEmail)

	_, err := svc.Register(context.Background(), service.RegisterInput{
		Email:    "taken@test.com",
		Password: "password123",
		FullName: "Dup User",
	})

	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestRegistrationService_Register_EmailFailureDoesNotBlock(t *testing.T) {
	userRepo, emailSender, svc := newRegistrationFixture()

	userRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	emailSender.On("SendVerificationEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(assert.AnError)

	out, err := svc.Register(context.Background(), service.RegisterInput{
		Email:    "flaky@test.com",
		Password: "password123",
		FullName: "Flaky Mail",
	})

	assert.NoError(t, err)
	assert.NotNil(t, out.Tokens)
}

func TestRegistrationService_VerifyEmail_RoundTrip(t *testing.T) {
	userRepo, emailSender, svc := newRegistrationFixture()

	var sentToken string
	userRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	emailSender.On("SendVerificationEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sentToken = args.String(3) }).
		Return(nil)

	out, err := svc.Register(context.Background(), service.RegisterInput{
		Email:    "verify@test.com",
		Password: "password123",
		FullName: "Verify Me",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, sentToken)

	userRepo.On("SetEmailVerified", mock.Anything, out.User.ID).Return(nil)

	err = svc.VerifyEmail(context.Background(), sentToken)
	assert.NoError(t, err)
	userRepo.AssertExpectations(t)
}

func TestRegistrationService_VerifyEmail_RejectsAccessToken(t *testing.T) {
	userRepo, emailSender, svc := newRegistrationFixture()

	userRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	emailSender.On("SendVerificationEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	out, err := svc.Register(context.Background(), service.RegisterInput{
		Email:    "sneaky@test.com",
		Password: "password123",
		FullName: "Sneaky",
	})
	assert.NoError(t, err)

	// An access token must not pass as a verification token
	err = svc.VerifyEmail(context.Background(), out.Tokens.AccessToken)
	assert.ErrorIs(t, err, domain.ErrVerificationTokenInvalid)
	userRepo.AssertNotCalled(t, "SetEmailVerified")
}

func TestRegistrationService_VerifyEmail_Garbage(t *testing.T) {
	_, _, svc := newRegistrationFixture()

	err := svc.VerifyEmail(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, domain.ErrVerificationTokenInvalid)
}
