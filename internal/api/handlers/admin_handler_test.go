package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advocacy-resources/advo-sub001/internal/api/handlers"
	"github.com/advocacy-resources/advo-sub001/internal/api/middleware"
	"github.com/advocacy-resources/advo-sub001/internal/application/services"
	"github.com/advocacy-resources/advo-sub001/internal/domain/entities"
	"github.com/advocacy-resources/advo-sub001/internal/domain/policy"
	"github.com/advocacy-resources/advo-sub001/internal/domain/providers"
)

type stubBatchGeocoder struct {
	inputs []string
}

func (s *stubBatchGeocoder) BatchGeocode(_ context.Context, inputs []string) *services.BatchGeocodeResult {
	s.inputs = inputs
	result := &services.BatchGeocodeResult{
		Results: map[string]providers.Coordinates{},
		Errors:  map[string]string{},
	}
	for i, input := range inputs {
		if i%2 == 0 {
			result.Results[input] = providers.Coordinates{Latitude: 1, Longitude: 2}
		} else {
			result.Errors[input] = "no match"
		}
	}
	result.TotalProcessed = len(inputs)
	result.SuccessCount = len(result.Results)
	result.ErrorCount = len(result.Errors)
	return result
}

type stubAnalytics struct{}

func (s *stubAnalytics) Report(_ context.Context) (*entities.AnalyticsReport, error) {
	return &entities.AnalyticsReport{TotalUsers: 7}, nil
}

type stubUserAdmin struct {
	users []*entities.User
}

func (s *stubUserAdmin) List(_ context.Context) ([]*entities.User, error) { return s.users, nil }
func (s *stubUserAdmin) GetByID(_ context.Context, id string) (*entities.User, error) {
	return &entities.User{ID: id}, nil
}
func (s *stubUserAdmin) SetRole(_ context.Context, userID string, role entities.Role, managedResourceID *string) (*entities.User, error) {
	return &entities.User{ID: userID, Role: role, ManagedResourceID: managedResourceID}, nil
}
func (s *stubUserAdmin) SetActive(_ context.Context, userID string, active bool) (*entities.User, error) {
	return &entities.User{ID: userID, IsActive: active}, nil
}

func newAdminHandler() (*handlers.AdminHandler, *stubBatchGeocoder) {
	geocoder := &stubBatchGeocoder{}
	return handlers.NewAdminHandler(geocoder, &stubAnalytics{}, &stubUserAdmin{}), geocoder
}

func withRole(req *http.Request, role entities.Role) *http.Request {
	principal := &policy.Principal{UserID: "u-1", Role: role}
	return req.WithContext(middleware.WithPrincipal(req.Context(), principal))
}

func TestAdminHandler_BatchGeocode(t *testing.T) {
	handler, geocoder := newAdminHandler()

	body := `{"zipcodes":["10001","bogus","90210"]}`
	req := withRole(httptest.NewRequest("POST", "/api/admin/geocode-zipcodes", strings.NewReader(body)), entities.RoleAdmin)
	w := httptest.NewRecorder()
	handler.BatchGeocode(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"10001", "bogus", "90210"}, geocoder.inputs)

	var result services.BatchGeocodeResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	assert.Equal(t, 3, result.TotalProcessed)
	assert.Equal(t, result.TotalProcessed, result.SuccessCount+result.ErrorCount)
}

func TestAdminHandler_BatchGeocode_BusinessRepAllowed(t *testing.T) {
	handler, _ := newAdminHandler()

	body := `{"zipcodes":["10001"]}`
	req := withRole(httptest.NewRequest("POST", "/api/admin/geocode-zipcodes", strings.NewReader(body)), entities.RoleBusinessRep)
	w := httptest.NewRecorder()
	handler.BatchGeocode(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminHandler_BatchGeocode_EmptyList(t *testing.T) {
	handler, _ := newAdminHandler()

	req := withRole(httptest.NewRequest("POST", "/api/admin/geocode-zipcodes", strings.NewReader(`{"zipcodes":[]}`)), entities.RoleAdmin)
	w := httptest.NewRecorder()
	handler.BatchGeocode(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminHandler_GetAnalytics_RoleMatrix(t *testing.T) {
	handler, _ := newAdminHandler()

	tests := []struct {
		name       string
		role       entities.Role
		anonymous  bool
		wantStatus int
	}{
		{"admin allowed", entities.RoleAdmin, false, http.StatusOK},
		{"business rep allowed", entities.RoleBusinessRep, false, http.StatusOK},
		{"regular user forbidden", entities.RoleUser, false, http.StatusForbidden},
		{"anonymous unauthorized", "", true, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/admin/analytics", nil)
			if !tt.anonymous {
				req = withRole(req, tt.role)
			}
			w := httptest.NewRecorder()
			handler.GetAnalytics(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestAdminHandler_SetUserRole(t *testing.T) {
	handler, _ := newAdminHandler()

	body := `{"role":"business_rep","managed_resource_id":"res-1"}`
	req := withRole(httptest.NewRequest("PATCH", "/api/admin/users/u-2/role", strings.NewReader(body)), entities.RoleAdmin)
	req.SetPathValue("id", "u-2")
	w := httptest.NewRecorder()
	handler.SetUserRole(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var user entities.User
	require.NoError(t, json.NewDecoder(w.Body).Decode(&user))
	assert.Equal(t, entities.RoleBusinessRep, user.Role)
	require.NotNil(t, user.ManagedResourceID)
	assert.Equal(t, "res-1", *user.ManagedResourceID)
}

func TestAdminHandler_UserManagement_AdminOnly(t *testing.T) {
	handler, _ := newAdminHandler()

	req := withRole(httptest.NewRequest("GET", "/api/admin/users", nil), entities.RoleBusinessRep)
	w := httptest.NewRecorder()
	handler.ListUsers(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
