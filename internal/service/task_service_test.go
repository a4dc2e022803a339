package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/smarthogar/smarthogar-server/config"
	"github.com/smarthogar/smarthogar-server/internal/model"
	"github.com/smarthogar/smarthogar-server/internal/repository"
	"github.com/smarthogar/smarthogar-server/internal/testutil"
)

func newTaskService(db *gorm.DB, cfg *config.Config) *TaskService {
	return NewTaskService(
		repository.NewPurchaseRepository(db),
		repository.NewTaskRepository(db),
		cfg,
	)
}

func TestCompleteTasksInOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	svc := newTaskService(db, testutil.TestConfig())

	user := testutil.TestUser(t, db)

	for i, expected := range model.TaskOrder {
		status, err := svc.Status(user.ID)
		require.NoError(t, err)
		require.NotNil(t, status.NextTask)
		assert.Equal(t, expected, *status.NextTask)
		assert.Equal(t, i, status.TasksCompleted)

		result, err := svc.Complete(user.ID)
		require.NoError(t, err)
		assert.InDelta(t, 2.5, result.AmountBs, 0.001)
	}

	status, err := svc.Status(user.ID)
	require.NoError(t, err)
	assert.True(t, status.IsComplete)
	assert.Nil(t, status.NextTask)
	assert.InDelta(t, 10, status.TotalEarnedBs, 0.001)

	_, err = svc.Complete(user.ID)
	assert.ErrorIs(t, err, ErrTasksComplete)
}

func TestCompleteTaskBonusCap(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	cfg := testutil.TestConfig()
	cfg.TikTok.BonusPerTaskBs = 4
	cfg.TikTok.MaxBonusBs = 10
	svc := newTaskService(db, cfg)

	user := testutil.TestUser(t, db)

	expected := []float64{4, 4, 2}
	for _, amount := range expected {
		result, err := svc.Complete(user.ID)
		require.NoError(t, err)
		assert.InDelta(t, amount, result.AmountBs, 0.001)
	}

	// The cap is reached before the task list runs out.
	_, err := svc.Complete(user.ID)
	assert.ErrorIs(t, err, ErrTasksComplete)
}

func TestTasksUnavailableWithActiveVip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	svc := newTaskService(db, testutil.TestConfig())

	user := testutil.TestUser(t, db)
	pkg := testutil.TestPackage(t, db)
	testutil.TestPurchase(t, db, user.ID, pkg, testutil.WithActive(time.Now()))

	status, err := svc.Status(user.ID)
	require.NoError(t, err)
	assert.True(t, status.HasVip)
	assert.True(t, status.IsComplete)

	_, err = svc.Complete(user.ID)
	assert.ErrorIs(t, err, ErrTasksNotAvailable)
}
