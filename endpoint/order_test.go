package endpoint

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/ariebrainware/cosec-marketplace/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedUser(t *testing.T, db *gorm.DB, email string) model.User {
	t.Helper()
	u := model.User{Email: email, Name: "Ahmad Rahman", Role: model.RoleUser}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func TestCreateOrder_GuestAndRegistered(t *testing.T) {
	r, db := setupEndpointTest(t)
	sp := createSpecialist(t, r, specialistBody("Order Package"))
	spID := idOf(t, sp)
	user := seedUser(t, db, "buyer@example.com")

	w, resp := mustRequest(t, r, requestSpec{method: http.MethodPost, path: "/orders", body: map[string]interface{}{
		"specialist_id":  spID,
		"customer_name":  "Tan Mei Ling",
		"customer_email": "meiling@example.com",
		"customer_phone": "+60123456789",
		"amount":         1600,
	}})
	assertStatus(t, w, http.StatusCreated)
	assert.Equal(t, "PENDING", dataOf(t, resp)["status"])

	w, resp = mustRequest(t, r, requestSpec{method: http.MethodPost, path: "/orders", body: map[string]interface{}{
		"specialist_id": spID,
		"user_id":       user.ID,
		"amount":        "1600.00",
		"requirements":  "Need it by Friday",
	}})
	assertStatus(t, w, http.StatusCreated)
	assert.EqualValues(t, user.ID, dataOf(t, resp)["user_id"])

	// the token identifies the buyer when no identity is sent
	w, resp = mustRequest(t, r, requestSpec{
		method:  http.MethodPost,
		path:    "/orders",
		body:    map[string]interface{}{"specialist_id": spID, "amount": 1600},
		headers: authHeader(t, "buyer@example.com", model.RoleUser),
	})
	assertStatus(t, w, http.StatusCreated)
	assert.EqualValues(t, user.ID, dataOf(t, resp)["user_id"])

	var stored model.Specialist
	require.NoError(t, db.First(&stored, spID).Error)
	assert.Equal(t, 3, stored.PurchaseCount)
}

func TestCreateOrder_Validation(t *testing.T) {
	r, db := setupEndpointTest(t)
	sp := createSpecialist(t, r, specialistBody("Validation Package"))
	spID := idOf(t, sp)
	user := seedUser(t, db, "buyer@example.com")

	tests := []struct {
		name   string
		body   map[string]interface{}
		status int
	}{
		{"no identity", map[string]interface{}{"specialist_id": spID, "amount": 10}, http.StatusBadRequest},
		{"partial guest", map[string]interface{}{"specialist_id": spID, "amount": 10, "customer_name": "A", "customer_email": "a@example.com"}, http.StatusBadRequest},
		{"user and guest", map[string]interface{}{"specialist_id": spID, "amount": 10, "user_id": user.ID, "customer_name": "A"}, http.StatusBadRequest},
		{"missing amount", map[string]interface{}{"specialist_id": spID, "user_id": user.ID}, http.StatusBadRequest},
		{"negative amount", map[string]interface{}{"specialist_id": spID, "user_id": user.ID, "amount": -5}, http.StatusBadRequest},
		{"missing specialist", map[string]interface{}{"user_id": user.ID, "amount": 10}, http.StatusBadRequest},
		{"unknown specialist", map[string]interface{}{"specialist_id": 9999, "user_id": user.ID, "amount": 10}, http.StatusNotFound},
		{"unknown user", map[string]interface{}{"specialist_id": spID, "user_id": 9999, "amount": 10}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := mustRequest(t, r, requestSpec{method: http.MethodPost, path: "/orders", body: tt.body})
			assertStatus(t, w, tt.status)
			assert.Equal(t, false, resp["success"])
		})
	}

	var stored model.Specialist
	require.NoError(t, db.First(&stored, spID).Error)
	assert.Equal(t, 0, stored.PurchaseCount)
}

func TestListOrders_WithSummaries(t *testing.T) {
	r, db := setupEndpointTest(t)
	sp := createSpecialist(t, r, specialistBody("Summary Package"))
	spID := idOf(t, sp)
	user := seedUser(t, db, "buyer@example.com")
	headers := authHeader(t, "buyer@example.com", model.RoleUser)

	w, _ := mustRequest(t, r, requestSpec{method: http.MethodPost, path: "/orders", body: map[string]interface{}{
		"specialist_id": spID, "user_id": user.ID, "amount": 1600,
	}})
	assertStatus(t, w, http.StatusCreated)

	w, _ = mustRequest(t, r, requestSpec{method: http.MethodGet, path: "/orders", headers: headers})
	assertStatus(t, w, http.StatusBadRequest)

	w, _ = mustRequest(t, r, requestSpec{method: http.MethodGet, path: "/orders?user_id=abc", headers: headers})
	assertStatus(t, w, http.StatusBadRequest)

	w, resp := mustRequest(t, r, requestSpec{method: http.MethodGet, path: fmt.Sprintf("/orders?user_id=%d", user.ID), headers: headers})
	assertStatus(t, w, http.StatusOK)
	data := dataOf(t, resp)
	assert.EqualValues(t, 1, data["total"])
	orders := data["orders"].([]interface{})
	require.Len(t, orders, 1)
	order := orders[0].(map[string]interface{})
	summary := order["specialist"].(map[string]interface{})
	assert.Equal(t, "Summary Package", summary["title"])
	assert.Equal(t, "Siti Rahma", summary["secretary_name"])
	assert.Equal(t, "buyer@example.com", order["user"].(map[string]interface{})["email"])

	w, _ = mustRequest(t, r, requestSpec{method: http.MethodGet, path: fmt.Sprintf("/orders?specialist_id=%d", spID)})
	assertStatus(t, w, http.StatusUnauthorized)
}

func TestUpdateOrderStatus(t *testing.T) {
	r, _ := setupEndpointTest(t)
	sp := createSpecialist(t, r, specialistBody("Status Package"))
	spID := idOf(t, sp)
	headers := authHeader(t, "siti@example.com", model.RoleUser)

	_, resp := mustRequest(t, r, requestSpec{method: http.MethodPost, path: "/orders", body: map[string]interface{}{
		"specialist_id":  spID,
		"customer_name":  "Tan Mei Ling",
		"customer_email": "meiling@example.com",
		"customer_phone": "+60123456789",
		"amount":         1600,
	}})
	orderPath := fmt.Sprintf("/orders/%d", idOf(t, dataOf(t, resp)))

	steps := []struct {
		status string
		code   int
	}{
		{"BOGUS", http.StatusBadRequest},
		{"paid", http.StatusBadRequest},
		{"PAID", http.StatusOK},
		{"PAID", http.StatusOK},
		{"PROCESSING", http.StatusOK},
		{"COMPLETED", http.StatusOK},
		{"CANCELLED", http.StatusBadRequest},
	}
	for _, step := range steps {
		w, _ := mustRequest(t, r, requestSpec{method: http.MethodPatch, path: orderPath, body: map[string]string{"status": step.status}, headers: headers})
		assertStatus(t, w, step.code)
	}

	w, resp := mustRequest(t, r, requestSpec{method: http.MethodGet, path: fmt.Sprintf("/orders?specialist_id=%d", spID), headers: headers})
	assertStatus(t, w, http.StatusOK)
	orders := dataOf(t, resp)["orders"].([]interface{})
	require.Len(t, orders, 1)
	assert.Equal(t, "COMPLETED", orders[0].(map[string]interface{})["status"])

	w, _ = mustRequest(t, r, requestSpec{method: http.MethodPatch, path: "/orders/9999", body: map[string]string{"status": "PAID"}, headers: headers})
	assertStatus(t, w, http.StatusNotFound)
}
