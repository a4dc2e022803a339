package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smarthogar/smarthogar-server/internal/model"
	"github.com/smarthogar/smarthogar-server/internal/testutil"
)

func TestPurchaseActivate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	repo := NewPurchaseRepository(db)

	user := testutil.TestUser(t, db)
	pkg := testutil.TestPackage(t, db)
	purchase := testutil.TestPurchase(t, db, user.ID, pkg)

	now := time.Now()
	won, err := repo.Activate(purchase.ID, now)
	require.NoError(t, err)
	assert.True(t, won)

	updated, err := repo.GetByID(purchase.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PurchaseStatusActive, updated.Status)
	require.NotNil(t, updated.ActivatedAt)
	require.NotNil(t, updated.LastProfitAt)

	// The transition already happened, a second attempt loses.
	won, err = repo.Activate(purchase.ID, time.Now())
	require.NoError(t, err)
	assert.False(t, won)
}

func TestPurchaseReject(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	repo := NewPurchaseRepository(db)

	user := testutil.TestUser(t, db)
	pkg := testutil.TestPackage(t, db)
	purchase := testutil.TestPurchase(t, db, user.ID, pkg)

	won, err := repo.Reject(purchase.ID)
	require.NoError(t, err)
	assert.True(t, won)

	updated, err := repo.GetByID(purchase.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PurchaseStatusRejected, updated.Status)

	won, err = repo.Reject(purchase.ID)
	require.NoError(t, err)
	assert.False(t, won)
}

func TestPurchaseRejectDoesNotTouchActive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	repo := NewPurchaseRepository(db)

	user := testutil.TestUser(t, db)
	pkg := testutil.TestPackage(t, db)
	purchase := testutil.TestPurchase(t, db, user.ID, pkg, testutil.WithActive(time.Now()))

	won, err := repo.Reject(purchase.ID)
	require.NoError(t, err)
	assert.False(t, won)

	updated, err := repo.GetByID(purchase.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PurchaseStatusActive, updated.Status)
}

func TestStampProfit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	repo := NewPurchaseRepository(db)

	user := testutil.TestUser(t, db)
	pkg := testutil.TestPackage(t, db)
	testutil.TestPurchase(t, db, user.ID, pkg, testutil.WithActive(time.Now().Add(-25*time.Hour)))

	now := time.Now()
	cutoff := now.Add(-24 * time.Hour)

	stamped, err := repo.StampProfit(user.ID, cutoff, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stamped)

	// The stamp just moved past the cutoff, a second claim stamps nothing.
	stamped, err = repo.StampProfit(user.ID, cutoff, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(0), stamped)
}

func TestStampProfitSkipsPendingPurchases(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	repo := NewPurchaseRepository(db)

	user := testutil.TestUser(t, db)
	pkg := testutil.TestPackage(t, db)
	testutil.TestPurchase(t, db, user.ID, pkg)

	now := time.Now()
	stamped, err := repo.StampProfit(user.ID, now.Add(-24*time.Hour), now)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stamped)
}

func TestMaxLastProfitAt(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	repo := NewPurchaseRepository(db)

	user := testutil.TestUser(t, db)
	pkg := testutil.TestPackage(t, db)

	maxLast, err := repo.MaxLastProfitAt(user.ID)
	require.NoError(t, err)
	assert.Nil(t, maxLast)

	older := time.Now().Add(-48 * time.Hour)
	newer := time.Now().Add(-2 * time.Hour)
	testutil.TestPurchase(t, db, user.ID, pkg, testutil.WithActive(older))
	testutil.TestPurchase(t, db, user.ID, pkg, testutil.WithActive(newer))

	maxLast, err = repo.MaxLastProfitAt(user.ID)
	require.NoError(t, err)
	require.NotNil(t, maxLast)
	assert.WithinDuration(t, newer, *maxLast, time.Second)
}

func TestListPendingOlderThan(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	repo := NewPurchaseRepository(db)

	user := testutil.TestUser(t, db)
	pkg := testutil.TestPackage(t, db)

	stale := testutil.TestPurchase(t, db, user.ID, pkg,
		testutil.WithCreatedAt(time.Now().AddDate(0, 0, -5)))
	testutil.TestPurchase(t, db, user.ID, pkg)
	testutil.TestPurchase(t, db, user.ID, pkg,
		testutil.WithStatus(model.PurchaseStatusActive),
		testutil.WithCreatedAt(time.Now().AddDate(0, 0, -5)))

	found, err := repo.ListPendingOlderThan(time.Now().AddDate(0, 0, -3))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, stale.ID, found[0].ID)
}
