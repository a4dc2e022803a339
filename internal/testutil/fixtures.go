package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/smarthogar/smarthogar-server/internal/model"
)

var fixtureSeq int64

func nextSeq() int64 {
	return atomic.AddInt64(&fixtureSeq, 1)
}

// TestUser creates a test user.
func TestUser(t *testing.T, db *gorm.DB, opts ...func(*model.User)) *model.User {
	t.Helper()

	seq := nextSeq()
	user := &model.User{
		Username:     fmt.Sprintf("testuser_%d", seq),
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuvwxyz123456", // bcrypt hash placeholder
		ReferralCode: fmt.Sprintf("REF%06d", seq),
	}

	for _, opt := range opts {
		opt(user)
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// WithSponsor links the user to a sponsor.
func WithSponsor(sponsorID int64) func(*model.User) {
	return func(u *model.User) {
		u.SponsorID = &sponsorID
	}
}

// WithAdmin marks the user as admin.
func WithAdmin() func(*model.User) {
	return func(u *model.User) {
		u.IsAdmin = true
	}
}

// WithUsername sets the username.
func WithUsername(username string) func(*model.User) {
	return func(u *model.User) {
		u.Username = username
	}
}

// TestPackage creates a VIP package.
func TestPackage(t *testing.T, db *gorm.DB, opts ...func(*model.VipPackage)) *model.VipPackage {
	t.Helper()

	seq := nextSeq()
	pkg := &model.VipPackage{
		Level:         int(seq),
		Name:          fmt.Sprintf("VIP %d", seq),
		InvestmentBs:  1000,
		DailyProfitBs: 30,
		Enabled:       true,
	}

	for _, opt := range opts {
		opt(pkg)
	}

	if err := db.Create(pkg).Error; err != nil {
		t.Fatalf("Failed to create test package: %v", err)
	}

	return pkg
}

// WithLevel sets the package level.
func WithLevel(level int) func(*model.VipPackage) {
	return func(p *model.VipPackage) {
		p.Level = level
	}
}

// WithAmounts sets investment and daily profit.
func WithAmounts(investmentBs, dailyProfitBs float64) func(*model.VipPackage) {
	return func(p *model.VipPackage) {
		p.InvestmentBs = investmentBs
		p.DailyProfitBs = dailyProfitBs
	}
}

// WithDisabled disables the package.
func WithDisabled() func(*model.VipPackage) {
	return func(p *model.VipPackage) {
		p.Enabled = false
	}
}

// TestPurchase creates a purchase for the user and package.
func TestPurchase(t *testing.T, db *gorm.DB, userID int64, pkg *model.VipPackage, opts ...func(*model.Purchase)) *model.Purchase {
	t.Helper()

	purchase := &model.Purchase{
		UserID:        userID,
		PackageID:     pkg.ID,
		PackageLevel:  pkg.Level,
		InvestmentBs:  pkg.InvestmentBs,
		DailyProfitBs: pkg.DailyProfitBs,
		Status:        model.PurchaseStatusPending,
	}

	for _, opt := range opts {
		opt(purchase)
	}

	if err := db.Create(purchase).Error; err != nil {
		t.Fatalf("Failed to create test purchase: %v", err)
	}

	return purchase
}

// WithStatus sets the purchase status.
func WithStatus(status string) func(*model.Purchase) {
	return func(p *model.Purchase) {
		p.Status = status
	}
}

// WithActive marks the purchase ACTIVE with the given profit stamp.
func WithActive(lastProfitAt time.Time) func(*model.Purchase) {
	return func(p *model.Purchase) {
		p.Status = model.PurchaseStatusActive
		p.ActivatedAt = &lastProfitAt
		p.LastProfitAt = &lastProfitAt
	}
}

// WithInvestment overrides the investment snapshot.
func WithInvestment(amountBs float64) func(*model.Purchase) {
	return func(p *model.Purchase) {
		p.InvestmentBs = amountBs
	}
}

// WithCreatedAt backdates the purchase.
func WithCreatedAt(createdAt time.Time) func(*model.Purchase) {
	return func(p *model.Purchase) {
		p.CreatedAt = createdAt
	}
}

// TestLedgerEntry appends a wallet ledger entry.
func TestLedgerEntry(t *testing.T, db *gorm.DB, userID int64, entryType string, amountBs float64) *model.WalletLedger {
	t.Helper()

	entry := &model.WalletLedger{
		UserID:      userID,
		Type:        entryType,
		AmountBs:    amountBs,
		Description: "test entry",
	}

	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("Failed to create test ledger entry: %v", err)
	}

	return entry
}

// TestTask creates a completed TikTok task.
func TestTask(t *testing.T, db *gorm.DB, userID int64, taskType string, amountBs float64) *model.TikTokTask {
	t.Helper()

	task := &model.TikTokTask{
		UserID:   userID,
		TaskType: taskType,
		AmountBs: amountBs,
	}

	if err := db.Create(task).Error; err != nil {
		t.Fatalf("Failed to create test task: %v", err)
	}

	return task
}

// TestWithdrawal creates a withdrawal request.
func TestWithdrawal(t *testing.T, db *gorm.DB, userID int64, amountBs float64, status string) *model.Withdrawal {
	t.Helper()

	withdrawal := &model.Withdrawal{
		UserID:      userID,
		AmountBs:    amountBs,
		Method:      "QR",
		AccountInfo: "test account",
		Status:      status,
	}

	if err := db.Create(withdrawal).Error; err != nil {
		t.Fatalf("Failed to create test withdrawal: %v", err)
	}

	return withdrawal
}
