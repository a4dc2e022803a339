package testutil

import "github.com/smarthogar/smarthogar-server/config"

// TestConfig returns the configuration used across tests: three
// referral levels, a 24h profit window and the standard TikTok bonus.
func TestConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:      "test-secret-key",
			ExpireHours: 24,
		},
		Referral: config.ReferralConfig{
			Levels: []float64{10, 5, 2},
		},
		Profit: config.ProfitConfig{
			IntervalHours: 24,
		},
		Purchase: config.PurchaseConfig{
			PendingExpireDays:    3,
			SweepIntervalMinutes: 60,
		},
		Withdrawal: config.WithdrawalConfig{
			MinAmountBs: 20,
		},
		TikTok: config.TikTokConfig{
			BonusPerTaskBs: 2.5,
			MaxBonusBs:     10,
		},
	}
}
