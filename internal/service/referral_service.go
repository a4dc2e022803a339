package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/smarthogar/smarthogar-server/config"
	"github.com/smarthogar/smarthogar-server/internal/model"
	"github.com/smarthogar/smarthogar-server/internal/repository"
)

var ErrUserNotFound = errors.New("usuario no encontrado")

// UplineEntry is one ancestor in the sponsor chain. Level 1 is the
// direct sponsor and grows with distance.
type UplineEntry struct {
	UserID int64
	Level  int
}

type ReferralService struct {
	userRepo   *repository.UserRepository
	walletRepo *repository.WalletRepository
	cfg        *config.Config
}

func NewReferralService(
	userRepo *repository.UserRepository,
	walletRepo *repository.WalletRepository,
	cfg *config.Config,
) *ReferralService {
	return &ReferralService{
		userRepo:   userRepo,
		walletRepo: walletRepo,
		cfg:        cfg,
	}
}

// ResolveUpline walks the sponsor chain upward, stopping at maxLevel or
// at the root. A missing sponsor truncates the chain; only an unknown
// userID is an error.
func (s *ReferralService) ResolveUpline(userID int64, maxLevel int) ([]UplineEntry, error) {
	return s.resolveUpline(s.userRepo, userID, maxLevel)
}

func (s *ReferralService) resolveUpline(repo *repository.UserRepository, userID int64, maxLevel int) ([]UplineEntry, error) {
	user, err := repo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var upline []UplineEntry
	current := user
	for level := 1; level <= maxLevel; level++ {
		if current.SponsorID == nil {
			break
		}
		sponsor, err := repo.GetByID(*current.SponsorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				break
			}
			return nil, err
		}
		upline = append(upline, UplineEntry{UserID: sponsor.ID, Level: level})
		current = sponsor
	}

	return upline, nil
}

// PayBonuses credits each upline ancestor a percentage of the purchase's
// investment snapshot, inside the caller's transaction. Levels with no
// configured rule are skipped. Returns the total paid out.
func (s *ReferralService) PayBonuses(tx *gorm.DB, buyerID int64, investmentBs float64) (float64, error) {
	upline, err := s.resolveUpline(s.userRepo.WithTx(tx), buyerID, s.cfg.Referral.MaxLevel())
	if err != nil {
		return 0, err
	}

	walletTx := s.walletRepo.WithTx(tx)
	var total float64
	for _, entry := range upline {
		percent := s.cfg.Referral.PercentForLevel(entry.Level)
		if percent <= 0 {
			continue
		}

		level := entry.Level
		amount := investmentBs * percent / 100
		err := walletTx.Append(&model.WalletLedger{
			UserID:        entry.UserID,
			Type:          model.LedgerReferralBonus,
			AmountBs:      amount,
			ReferralLevel: &level,
			Description:   fmt.Sprintf("Bono de referido nivel %d", level),
		})
		if err != nil {
			return 0, err
		}
		total += amount
	}

	return total, nil
}
