package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smarthogar/smarthogar-server/internal/model"
	"github.com/smarthogar/smarthogar-server/internal/pkg/response"
	"github.com/smarthogar/smarthogar-server/internal/testutil"
)

func setupAdminPurchaseRouter(h *AdminPurchaseHandler) *gin.Engine {
	engine := gin.New()
	engine.GET("/admin/purchases/pending", h.ListPending)
	engine.POST("/admin/purchases/:id/approve", h.Approve)
	engine.POST("/admin/purchases/:id/reject", h.Reject)
	return engine
}

func TestAdminApprovePurchase(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	h := NewAdminPurchaseHandler(newTestPurchaseService(db))
	engine := setupAdminPurchaseRouter(h)

	sponsor := testutil.TestUser(t, db)
	buyer := testutil.TestUser(t, db, testutil.WithSponsor(sponsor.ID))
	pkg := testutil.TestPackage(t, db, testutil.WithAmounts(1000, 30))
	purchase := testutil.TestPurchase(t, db, buyer.ID, pkg)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/admin/purchases/%d/approve", purchase.ID), nil)
	engine.ServeHTTP(w, req)

	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeSuccess, resp.Code)
	assert.Contains(t, resp.Message, "Compra activada")

	// Repeat approval answers success without re-paying.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/admin/purchases/%d/approve", purchase.ID), nil)
	engine.ServeHTTP(w, req)

	resp = parseResponse(t, w)
	assert.Equal(t, response.CodeSuccess, resp.Code)
	assert.Equal(t, "Compra ya activa", resp.Message)

	var count int64
	require.NoError(t, db.Model(&model.WalletLedger{}).
		Where("user_id = ? AND type = ?", sponsor.ID, model.LedgerReferralBonus).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAdminApprovePurchaseNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	h := NewAdminPurchaseHandler(newTestPurchaseService(db))
	engine := setupAdminPurchaseRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/purchases/99999/approve", nil)
	engine.ServeHTTP(w, req)

	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeResourceNotFound, resp.Code)
}

func TestAdminApprovePurchaseBadID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	h := NewAdminPurchaseHandler(newTestPurchaseService(db))
	engine := setupAdminPurchaseRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/purchases/abc/approve", nil)
	engine.ServeHTTP(w, req)

	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeParamError, resp.Code)
}

func TestAdminRejectPurchase(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	h := NewAdminPurchaseHandler(newTestPurchaseService(db))
	engine := setupAdminPurchaseRouter(h)

	user := testutil.TestUser(t, db)
	pkg := testutil.TestPackage(t, db)
	purchase := testutil.TestPurchase(t, db, user.ID, pkg)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/admin/purchases/%d/reject", purchase.ID), nil)
	engine.ServeHTTP(w, req)

	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeSuccess, resp.Code)

	// An approved purchase cannot be rejected afterwards.
	active := testutil.TestPurchase(t, db, user.ID, pkg)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/admin/purchases/%d/approve", active.ID), nil)
	engine.ServeHTTP(w, req)
	require.Equal(t, response.CodeSuccess, parseResponse(t, w).Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/admin/purchases/%d/reject", active.ID), nil)
	engine.ServeHTTP(w, req)

	resp = parseResponse(t, w)
	assert.Equal(t, response.CodeParamError, resp.Code)
}

func TestAdminListPending(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	h := NewAdminPurchaseHandler(newTestPurchaseService(db))
	engine := setupAdminPurchaseRouter(h)

	user := testutil.TestUser(t, db)
	pkg := testutil.TestPackage(t, db)
	testutil.TestPurchase(t, db, user.ID, pkg)
	testutil.TestPurchase(t, db, user.ID, pkg, testutil.WithStatus(model.PurchaseStatusRejected))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/purchases/pending", nil)
	engine.ServeHTTP(w, req)

	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeSuccess, resp.Code)

	pending, ok := resp.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, pending, 1)
}
