package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/smarthogar/smarthogar-server/internal/model"
	"github.com/smarthogar/smarthogar-server/internal/model/dto"
	"github.com/smarthogar/smarthogar-server/internal/repository"
	"github.com/smarthogar/smarthogar-server/internal/testutil"
)

func newWalletService(db *gorm.DB) *WalletService {
	return NewWalletService(
		repository.NewUserRepository(db),
		repository.NewWalletRepository(db),
	)
}

func TestAdjustWallet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	svc := newWalletService(db)

	user := testutil.TestUser(t, db)

	credit, err := svc.Adjust(&dto.AdjustWalletRequest{
		UserID:      user.ID,
		Type:        model.LedgerAbonado,
		AmountBs:    200,
		Description: "Pago manual",
	})
	require.NoError(t, err)
	assert.InDelta(t, 200, credit.AmountBs, 0.001)

	// DESCUENTO is stored negative even though the request is positive.
	debit, err := svc.Adjust(&dto.AdjustWalletRequest{
		UserID:      user.ID,
		Type:        model.LedgerDescuento,
		AmountBs:    80,
		Description: "Corrección",
	})
	require.NoError(t, err)
	assert.InDelta(t, -80, debit.AmountBs, 0.001)

	wallet, err := svc.GetWallet(user.ID)
	require.NoError(t, err)
	assert.InDelta(t, 120, wallet.BalanceBs, 0.001)
	assert.Len(t, wallet.Entries, 2)
}

func TestAdjustWalletInvalidType(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	svc := newWalletService(db)

	user := testutil.TestUser(t, db)

	_, err := svc.Adjust(&dto.AdjustWalletRequest{
		UserID:      user.ID,
		Type:        model.LedgerDailyProfit,
		AmountBs:    50,
		Description: "no permitido",
	})
	assert.ErrorIs(t, err, ErrInvalidAdjustmentType)
}

func TestAdjustWalletUnknownUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	svc := newWalletService(db)

	_, err := svc.Adjust(&dto.AdjustWalletRequest{
		UserID:      99999,
		Type:        model.LedgerAbonado,
		AmountBs:    50,
		Description: "x",
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}
