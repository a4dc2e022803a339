package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smarthogar/smarthogar-server/internal/model"
	"github.com/smarthogar/smarthogar-server/internal/testutil"
)

func TestSumByUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	repo := NewWalletRepository(db)

	user := testutil.TestUser(t, db)
	other := testutil.TestUser(t, db)

	testutil.TestLedgerEntry(t, db, user.ID, model.LedgerAbonado, 100)
	testutil.TestLedgerEntry(t, db, user.ID, model.LedgerDailyProfit, 30)
	testutil.TestLedgerEntry(t, db, user.ID, model.LedgerWithdrawal, -50)
	testutil.TestLedgerEntry(t, db, other.ID, model.LedgerAbonado, 999)

	total, err := repo.SumByUser(user.ID)
	require.NoError(t, err)
	assert.InDelta(t, 80, total, 0.001)
}

func TestSumByUserEmpty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	repo := NewWalletRepository(db)

	user := testutil.TestUser(t, db)

	total, err := repo.SumByUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(0), total)
}

func TestSumByUserAndType(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	repo := NewWalletRepository(db)

	user := testutil.TestUser(t, db)
	testutil.TestLedgerEntry(t, db, user.ID, model.LedgerDailyProfit, 30)
	testutil.TestLedgerEntry(t, db, user.ID, model.LedgerDailyProfit, 30)
	testutil.TestLedgerEntry(t, db, user.ID, model.LedgerAbonado, 100)

	total, err := repo.SumByUserAndType(user.ID, model.LedgerDailyProfit)
	require.NoError(t, err)
	assert.InDelta(t, 60, total, 0.001)
}

func TestSumReferralByLevel(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	repo := NewWalletRepository(db)

	user := testutil.TestUser(t, db)

	level1, level2 := 1, 2
	require.NoError(t, repo.Append(&model.WalletLedger{
		UserID: user.ID, Type: model.LedgerReferralBonus, AmountBs: 100, ReferralLevel: &level1,
	}))
	require.NoError(t, repo.Append(&model.WalletLedger{
		UserID: user.ID, Type: model.LedgerReferralBonus, AmountBs: 40, ReferralLevel: &level1,
	}))
	require.NoError(t, repo.Append(&model.WalletLedger{
		UserID: user.ID, Type: model.LedgerReferralBonus, AmountBs: 25, ReferralLevel: &level2,
	}))

	byLevel, err := repo.SumReferralByLevel(user.ID)
	require.NoError(t, err)
	assert.InDelta(t, 140, byLevel[1], 0.001)
	assert.InDelta(t, 25, byLevel[2], 0.001)
}

func TestCountProfitDays(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	repo := NewWalletRepository(db)

	user := testutil.TestUser(t, db)

	days, err := repo.CountProfitDays(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), days)

	// Two credits on the same calendar day count once.
	testutil.TestLedgerEntry(t, db, user.ID, model.LedgerDailyProfit, 30)
	testutil.TestLedgerEntry(t, db, user.ID, model.LedgerDailyProfit, 15)

	days, err = repo.CountProfitDays(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), days)
}

func TestExistsByUserAndType(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	repo := NewWalletRepository(db)

	user := testutil.TestUser(t, db)

	exists, err := repo.ExistsByUserAndType(user.ID, model.LedgerTikTokBonus)
	require.NoError(t, err)
	assert.False(t, exists)

	testutil.TestLedgerEntry(t, db, user.ID, model.LedgerTikTokBonus, 10)

	exists, err = repo.ExistsByUserAndType(user.ID, model.LedgerTikTokBonus)
	require.NoError(t, err)
	assert.True(t, exists)
}
