package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/smarthogar/smarthogar-server/internal/model/dto"
	"github.com/smarthogar/smarthogar-server/internal/pkg/jwt"
	"github.com/smarthogar/smarthogar-server/internal/repository"
	"github.com/smarthogar/smarthogar-server/internal/testutil"
)

func newAuthService(db *gorm.DB) *AuthService {
	return NewAuthService(repository.NewUserRepository(db), testutil.TestConfig())
}

func TestRegisterAndLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	svc := newAuthService(db)

	registered, err := svc.Register(&dto.RegisterRequest{
		Username: "maria2024",
		Password: "secreto123",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(registered.ReferralCode, "SH"))

	login, err := svc.Login(&dto.LoginRequest{
		Username: "maria2024",
		Password: "secreto123",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.UserID, login.User.ID)

	claims, err := jwt.ParseToken(login.Token, testutil.TestConfig().JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, registered.UserID, claims.UserID)
}

func TestRegisterWithReferralCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	svc := newAuthService(db)
	userRepo := repository.NewUserRepository(db)

	sponsor, err := svc.Register(&dto.RegisterRequest{
		Username: "patrocinador",
		Password: "secreto123",
	})
	require.NoError(t, err)

	child, err := svc.Register(&dto.RegisterRequest{
		Username:     "referido",
		Password:     "secreto123",
		ReferralCode: sponsor.ReferralCode,
	})
	require.NoError(t, err)

	user, err := userRepo.GetByID(child.UserID)
	require.NoError(t, err)
	require.NotNil(t, user.SponsorID)
	assert.Equal(t, sponsor.UserID, *user.SponsorID)
}

func TestRegisterInvalidReferralCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	svc := newAuthService(db)

	_, err := svc.Register(&dto.RegisterRequest{
		Username:     "solitario",
		Password:     "secreto123",
		ReferralCode: "SHNOEXISTE",
	})
	assert.ErrorIs(t, err, ErrInvalidReferralCode)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	svc := newAuthService(db)

	_, err := svc.Register(&dto.RegisterRequest{Username: "repetido", Password: "secreto123"})
	require.NoError(t, err)

	_, err = svc.Register(&dto.RegisterRequest{Username: "repetido", Password: "otraclave1"})
	assert.ErrorIs(t, err, ErrUsernameExists)
}

func TestLoginWrongPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	svc := newAuthService(db)

	_, err := svc.Register(&dto.RegisterRequest{Username: "carlos", Password: "secreto123"})
	require.NoError(t, err)

	_, err = svc.Login(&dto.LoginRequest{Username: "carlos", Password: "incorrecta"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(&dto.LoginRequest{Username: "nadie", Password: "secreto123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
