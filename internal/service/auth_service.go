package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/smarthogar/smarthogar-server/config"
	"github.com/smarthogar/smarthogar-server/internal/model"
	"github.com/smarthogar/smarthogar-server/internal/model/dto"
	"github.com/smarthogar/smarthogar-server/internal/pkg/jwt"
	"github.com/smarthogar/smarthogar-server/internal/repository"
)

var (
	ErrUsernameExists      = errors.New("el nombre de usuario ya existe")
	ErrInvalidReferralCode = errors.New("código de referido inválido")
	ErrInvalidCredentials  = errors.New("usuario o contraseña incorrectos")
)

type AuthService struct {
	userRepo *repository.UserRepository
	cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// Register creates a user. A referral code, when given, links the new
// user under its owner in the sponsor tree.
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	exists, err := s.userRepo.ExistsByUsername(req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameExists
	}

	var sponsorID *int64
	if req.ReferralCode != "" {
		sponsor, err := s.userRepo.GetByReferralCode(strings.ToUpper(strings.TrimSpace(req.ReferralCode)))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvalidReferralCode
			}
			return nil, err
		}
		sponsorID = &sponsor.ID
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	code, err := s.generateReferralCode()
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		ReferralCode: code,
		SponsorID:    sponsorID,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return &dto.RegisterResponse{UserID: user.ID, ReferralCode: user.ReferralCode}, nil
}

// Login verifies the credentials and issues a JWT.
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByUsername(req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken(user.ID, s.cfg.JWT.Secret, s.cfg.JWT.ExpireHours)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token: token,
		User: &dto.UserInfo{
			ID:           user.ID,
			Username:     user.Username,
			ReferralCode: user.ReferralCode,
			IsAdmin:      user.IsAdmin,
		},
	}, nil
}

func (s *AuthService) generateReferralCode() (string, error) {
	for i := 0; i < 5; i++ {
		bytes := make([]byte, 4)
		if _, err := rand.Read(bytes); err != nil {
			return "", err
		}
		code := "SH" + strings.ToUpper(hex.EncodeToString(bytes))

		exists, err := s.userRepo.ExistsByReferralCode(code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("failed to generate unique referral code")
}
