package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripdesk-hq/tripdesk/internal/domain/billing"
	"github.com/tripdesk-hq/tripdesk/internal/domain/entitlement"
)

type mockEntitlementService struct {
	status   *entitlement.FeatureLimitStatus
	statuses []*entitlement.FeatureLimitStatus
	err      error
}

func (m *mockEntitlementService) Evaluate(_ context.Context, _ uint, _ billing.Feature) (*entitlement.FeatureLimitStatus, error) {
	return m.status, m.err
}

func (m *mockEntitlementService) EvaluateAll(_ context.Context, _ uint) ([]*entitlement.FeatureLimitStatus, error) {
	return m.statuses, m.err
}

func newLimitRouter(svc EntitlementService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewLimitHandler(svc, nil)
	router := gin.New()
	router.GET("/api/v1/organizations/:id/limits", handler.GetLimits)
	router.GET("/api/v1/organizations/:id/limits/:feature", handler.GetFeatureLimit)
	return router
}

func TestGetFeatureLimit(t *testing.T) {
	remaining := int64(2)
	svc := &mockEntitlementService{
		status: &entitlement.FeatureLimitStatus{
			Feature:   billing.FeatureClients,
			Allowed:   true,
			PlanID:    billing.PlanFree,
			Tier:      billing.TierFree,
			Used:      8,
			Limit:     billing.Limited(10),
			Remaining: &remaining,
			Window:    billing.WindowAllTime,
		},
	}
	router := newLimitRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/organizations/7/limits/clients", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool                            `json:"success"`
		Data    entitlement.FeatureLimitStatus `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, billing.FeatureClients, body.Data.Feature)
	assert.True(t, body.Data.Allowed)
	assert.Equal(t, int64(8), body.Data.Used)
}

func TestGetFeatureLimit_UnknownFeature(t *testing.T) {
	router := newLimitRouter(&mockEntitlementService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/organizations/7/limits/bookings", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetFeatureLimit_InvalidOrganizationID(t *testing.T) {
	router := newLimitRouter(&mockEntitlementService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/organizations/abc/limits/clients", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetFeatureLimit_UsageUnavailableMapsTo503(t *testing.T) {
	svc := &mockEntitlementService{
		err: entitlement.NewUsageUnavailableError(billing.FeatureClients, errors.New("timeout")),
	}
	router := newLimitRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/organizations/7/limits/clients", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGetLimits(t *testing.T) {
	svc := &mockEntitlementService{
		statuses: []*entitlement.FeatureLimitStatus{
			{Feature: billing.FeatureClients, Allowed: true, Limit: billing.Limited(10)},
			{Feature: billing.FeatureTrips, Allowed: false, Limit: billing.Limited(5)},
		},
	}
	router := newLimitRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/organizations/7/limits", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool                              `json:"success"`
		Data    []entitlement.FeatureLimitStatus `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Len(t, body.Data, 2)
	assert.Equal(t, billing.FeatureClients, body.Data[0].Feature)
}
