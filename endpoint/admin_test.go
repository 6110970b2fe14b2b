package endpoint

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/ariebrainware/cosec-marketplace/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogRoutes(t *testing.T) {
	r, _ := setupEndpointTest(t)

	w, resp := mustRequest(t, r, requestSpec{method: http.MethodGet, path: "/service-offerings"})
	assertStatus(t, w, http.StatusOK)
	assert.Len(t, resp["data"], 5)

	w, resp = mustRequest(t, r, requestSpec{method: http.MethodGet, path: "/platform-fees"})
	assertStatus(t, w, http.StatusOK)
	tiers := resp["data"].([]interface{})
	require.Len(t, tiers, 3)
	assert.Equal(t, "Tier 1", tiers[0].(map[string]interface{})["tier_name"])
}

func TestAdminRoutes_RequireAdmin(t *testing.T) {
	r, _ := setupEndpointTest(t)

	w, _ := mustRequest(t, r, requestSpec{method: http.MethodGet, path: "/admin/orders"})
	assertStatus(t, w, http.StatusUnauthorized)

	w, _ = mustRequest(t, r, requestSpec{method: http.MethodGet, path: "/admin/orders", headers: authHeader(t, "user@example.com", model.RoleUser)})
	assertStatus(t, w, http.StatusForbidden)

	w, resp := mustRequest(t, r, requestSpec{method: http.MethodGet, path: "/admin/orders", headers: authHeader(t, "admin@example.com", model.RoleAdmin)})
	assertStatus(t, w, http.StatusOK)
	assert.EqualValues(t, 0, dataOf(t, resp)["total"])
}

func TestAdminSpecialistVerification(t *testing.T) {
	r, db := setupEndpointTest(t)
	sp := createSpecialist(t, r, specialistBody("Review Package"))
	path := fmt.Sprintf("/admin/specialists/%d/verification", idOf(t, sp))
	admin := authHeader(t, "admin@example.com", model.RoleAdmin)

	w, _ := mustRequest(t, r, requestSpec{method: http.MethodPatch, path: path, body: map[string]string{"verification_status": "APPROVED"}, headers: admin})
	assertStatus(t, w, http.StatusBadRequest)

	w, resp := mustRequest(t, r, requestSpec{method: http.MethodPatch, path: path, body: map[string]string{}, headers: admin})
	assertStatus(t, w, http.StatusBadRequest)
	assert.Contains(t, resp["error"], "verification_status is required")

	w, resp = mustRequest(t, r, requestSpec{method: http.MethodPatch, path: path, body: map[string]string{"verification_status": "VERIFIED"}, headers: admin})
	assertStatus(t, w, http.StatusOK)
	assert.Equal(t, "VERIFIED", dataOf(t, resp)["verification_status"])

	w, _ = mustRequest(t, r, requestSpec{method: http.MethodPatch, path: "/admin/specialists/9999/verification", body: map[string]string{"verification_status": "VERIFIED"}, headers: admin})
	assertStatus(t, w, http.StatusNotFound)

	var logs []model.AuditLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 4)
	assert.Equal(t, "admin@example.com", logs[0].ActorEmail)
}

func TestAdminRegistrationStatus_DoesNotLiftLimit(t *testing.T) {
	r, _ := setupEndpointTest(t)
	owner := authHeader(t, "owner@example.com", model.RoleUser)
	admin := authHeader(t, "admin@example.com", model.RoleAdmin)
	body := map[string]string{"companyName": "Maju Jaya Sdn Bhd", "companyType": "SDN_BHD"}

	w, resp := mustRequest(t, r, requestSpec{method: http.MethodPost, path: "/user/companies", body: body, headers: owner})
	assertStatus(t, w, http.StatusCreated)
	regPath := fmt.Sprintf("/admin/companies/%d", idOf(t, dataOf(t, resp)))

	w, resp = mustRequest(t, r, requestSpec{method: http.MethodPatch, path: regPath, body: map[string]string{"status": "REJECTED"}, headers: admin})
	assertStatus(t, w, http.StatusOK)
	assert.Equal(t, "REJECTED", dataOf(t, resp)["status"])

	w, _ = mustRequest(t, r, requestSpec{method: http.MethodPost, path: "/user/companies", body: body, headers: owner})
	assertStatus(t, w, http.StatusBadRequest)

	w, _ = mustRequest(t, r, requestSpec{method: http.MethodPatch, path: regPath, body: map[string]string{"status": "DONE"}, headers: admin})
	assertStatus(t, w, http.StatusBadRequest)

	w, resp = mustRequest(t, r, requestSpec{method: http.MethodPatch, path: regPath, body: map[string]string{}, headers: admin})
	assertStatus(t, w, http.StatusBadRequest)
	assert.Contains(t, resp["error"], "status is required")
}

func TestContactMessages(t *testing.T) {
	r, _ := setupEndpointTest(t)
	admin := authHeader(t, "admin@example.com", model.RoleAdmin)

	w, _ := mustRequest(t, r, requestSpec{method: http.MethodPost, path: "/messages", body: map[string]string{"name": "Nur", "email": "not-an-email", "message": "hi"}})
	assertStatus(t, w, http.StatusBadRequest)

	w, resp := mustRequest(t, r, requestSpec{method: http.MethodPost, path: "/messages", body: map[string]string{
		"name":    "Nur Aisyah",
		"email":   "aisyah@example.com",
		"subject": "Annual return",
		"message": "Can you file for a dormant company?",
	}})
	assertStatus(t, w, http.StatusCreated)
	msgID := idOf(t, dataOf(t, resp))

	w, resp = mustRequest(t, r, requestSpec{method: http.MethodGet, path: "/admin/messages?unread=true", headers: admin})
	assertStatus(t, w, http.StatusOK)
	assert.EqualValues(t, 1, dataOf(t, resp)["total"])

	w, _ = mustRequest(t, r, requestSpec{method: http.MethodPatch, path: fmt.Sprintf("/admin/messages/%d/read", msgID), headers: admin})
	assertStatus(t, w, http.StatusOK)

	w, resp = mustRequest(t, r, requestSpec{method: http.MethodGet, path: "/admin/messages?unread=true", headers: admin})
	assertStatus(t, w, http.StatusOK)
	assert.EqualValues(t, 0, dataOf(t, resp)["total"])

	w, _ = mustRequest(t, r, requestSpec{method: http.MethodDelete, path: fmt.Sprintf("/admin/messages/%d", msgID), headers: admin})
	assertStatus(t, w, http.StatusOK)

	w, resp = mustRequest(t, r, requestSpec{method: http.MethodGet, path: "/admin/messages", headers: admin})
	assertStatus(t, w, http.StatusOK)
	assert.EqualValues(t, 0, dataOf(t, resp)["total"])

	w, _ = mustRequest(t, r, requestSpec{method: http.MethodDelete, path: "/admin/messages/9999", headers: admin})
	assertStatus(t, w, http.StatusNotFound)
}
