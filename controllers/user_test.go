package controllers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminUsers = `[
 {"user_id":1,"full_name":"Shop Owner","email":"owner@example.com","role":"admin"},
 {"user_id":7,"full_name":"Lina Haddad","email":"lina@example.com","role":"user"},
 {"user_id":8,"full_name":"Karim Saleh","email":"karim@example.com","role":"user"}
]`

func usersHarness(t *testing.T) *harness {
	h := newHarness(t)
	h.loginAs("admin")
	h.backend.on(http.MethodGet, "/api/admin/users", http.StatusOK, adminUsers)
	return h
}

func TestAdminUsers_HidesAdminsAndFilters(t *testing.T) {
	h := usersHarness(t)

	w := h.get("/admin/users")
	body := w.Body.String()
	assert.NotContains(t, body, "owner@example.com")
	assert.Contains(t, body, "Lina Haddad")
	assert.Contains(t, body, "Showing 2 of 2")

	w = h.get("/admin/users?search=KARIM")
	body = w.Body.String()
	assert.Contains(t, body, "Karim Saleh")
	assert.NotContains(t, body, "Lina Haddad")
}

func TestAdminUsers_DeleteAdminRefusedWithoutRequest(t *testing.T) {
	h := usersHarness(t)

	w := h.post("/admin/users/1/delete", url.Values{"confirmed": {"yes"}})

	body := h.follow(w).Body.String()
	assert.Contains(t, body, "Not Allowed")
	assert.Contains(t, body, "You cannot delete an Admin account.")
	assert.False(t, h.backend.called(http.MethodDelete, "/api/admin/users/1"))
}

func TestAdminUsers_DeleteRemovesExactlyThatRow(t *testing.T) {
	h := usersHarness(t)
	h.backend.on(http.MethodDelete, "/api/admin/users/7", http.StatusOK, `{}`)

	w := h.post("/admin/users/7/delete", nil)
	assert.Contains(t, w.Body.String(), "Delete user account for Lina Haddad? This action cannot be undone.")
	assert.False(t, h.backend.called(http.MethodDelete, "/api/admin/users/7"))

	w = h.post("/admin/users/7/delete", url.Values{"confirmed": {"yes"}, "search": {"example"}})
	require.True(t, h.backend.called(http.MethodDelete, "/api/admin/users/7"))
	assert.Equal(t, "/admin/users?search=example", w.Header().Get("Location"))
	h.backend.on(http.MethodGet, "/api/admin/users", http.StatusOK, `[
 {"user_id":1,"full_name":"Shop Owner","email":"owner@example.com","role":"admin"},
 {"user_id":8,"full_name":"Karim Saleh","email":"karim@example.com","role":"user"}
]`)
	body := h.follow(w).Body.String()
	assert.Contains(t, body, "User deleted successfully.")
	assert.NotContains(t, body, "lina@example.com")
	assert.Contains(t, body, "karim@example.com")
	assert.Contains(t, body, "Showing 1 of 1")
}

func TestAdminUsers_DeleteFailureKeepsRow(t *testing.T) {
	h := usersHarness(t)
	h.backend.on(http.MethodDelete, "/api/admin/users/8", http.StatusInternalServerError, ``)

	w := h.post("/admin/users/8/delete", url.Values{"confirmed": {"yes"}})

	body := h.follow(w).Body.String()
	assert.Contains(t, body, "Failed to delete user.")
	assert.Contains(t, body, "karim@example.com")
}

func TestAdminServices_Validation(t *testing.T) {
	h := newHarness(t)
	h.loginAs("admin")
	h.backend.on(http.MethodGet, "/api/admin/services", http.StatusOK, `[]`)

	w := h.post("/admin/services", url.Values{"name": {"Fade"}, "price": {"-3"}, "duration_min": {"30"}})
	assert.Contains(t, w.Body.String(), "Invalid Price")

	w = h.post("/admin/services", url.Values{"name": {"Fade"}, "price": {"12"}, "duration_min": {"half"}})
	assert.Contains(t, w.Body.String(), "Invalid Duration")

	w = h.post("/admin/services", url.Values{"name": {""}, "price": {"12"}, "duration_min": {"30"}})
	assert.Contains(t, w.Body.String(), "Please fill Service name, Price, and Duration (minutes).")

	assert.False(t, h.backend.called(http.MethodPost, "/api/admin/services"))
}

func TestAdminServices_CreateAndUpdate(t *testing.T) {
	h := newHarness(t)
	h.loginAs("admin")
	h.backend.on(http.MethodGet, "/api/admin/services", http.StatusOK,
		`[{"service_id":3,"name":"Fade","price":"12.00","duration_min":30,"is_active":true}]`)
	h.backend.on(http.MethodPost, "/api/admin/services", http.StatusCreated,
		`{"service_id":4,"name":"Beard Trim","price":"6.00","duration_min":15,"is_active":true}`)
	h.backend.on(http.MethodPut, "/api/admin/services/3", http.StatusOK,
		`{"service_id":3,"name":"Skin Fade","price":"14.00","duration_min":40,"is_active":true}`)

	w := h.post("/admin/services", url.Values{"name": {"Beard Trim"}, "price": {"6"}, "duration_min": {"15"}, "is_active": {"true"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	h.backend.on(http.MethodGet, "/api/admin/services", http.StatusOK,
		`[{"service_id":3,"name":"Fade","price":"12.00","duration_min":30,"is_active":true},{"service_id":4,"name":"Beard Trim","price":"6.00","duration_min":15,"is_active":true}]`)
	body := h.follow(w).Body.String()
	assert.Contains(t, body, "Service added successfully.")
	assert.Contains(t, body, "Beard Trim")
	assert.Contains(t, body, "Fade")

	w = h.get("/admin/services?edit=3")
	assert.Contains(t, w.Body.String(), `action="/admin/services/3"`)

	w = h.post("/admin/services/3", url.Values{"name": {"Skin Fade"}, "price": {"14"}, "duration_min": {"40"}, "is_active": {"true"}})
	h.backend.on(http.MethodGet, "/api/admin/services", http.StatusOK,
		`[{"service_id":3,"name":"Skin Fade","price":"14.00","duration_min":40,"is_active":true}]`)
	body = h.follow(w).Body.String()
	assert.Contains(t, body, "Service updated successfully.")
	assert.Contains(t, body, "Skin Fade")
	assert.Contains(t, body, "$14.00")
}

func TestAdminBarbers_RemoveNeedsConfirmation(t *testing.T) {
	h := newHarness(t)
	h.loginAs("admin")
	h.backend.on(http.MethodGet, "/api/admin/barbers", http.StatusOK,
		`[{"barber_id":2,"name":"Omar","specialization":"Fades","working_hours":"9-5","phone":"+962790000001","is_active":true}]`)
	h.backend.on(http.MethodDelete, "/api/admin/barbers/2", http.StatusOK, `{}`)

	w := h.post("/admin/barbers/2/delete", nil)
	assert.Contains(t, w.Body.String(), "Are you sure you want to remove Omar from the system?")
	assert.False(t, h.backend.called(http.MethodDelete, "/api/admin/barbers/2"))

	w = h.post("/admin/barbers/2/delete", url.Values{"confirmed": {"yes"}})
	h.backend.on(http.MethodGet, "/api/admin/barbers", http.StatusOK, `[]`)
	body := h.follow(w).Body.String()
	assert.Contains(t, body, "Barber removed successfully.")
	assert.Contains(t, body, "No barbers yet.")
}

func TestAdminServices_BackendErrorTextNotShown(t *testing.T) {
	h := newHarness(t)
	h.loginAs("admin")
	h.backend.on(http.MethodGet, "/api/admin/services", http.StatusOK, `[]`)
	h.backend.on(http.MethodPost, "/api/admin/services", http.StatusForbidden, `{"error":"Access denied: admin role required"}`)

	w := h.post("/admin/services", url.Values{"name": {"Fade"}, "price": {"12"}, "duration_min": {"30"}})

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Failed to add service.")
	assert.NotContains(t, body, "Access denied")
	assert.Contains(t, body, `value="Fade"`)
}

func TestAdminBarbers_Validation(t *testing.T) {
	h := newHarness(t)
	h.loginAs("admin")
	h.backend.on(http.MethodGet, "/api/admin/barbers", http.StatusOK, `[]`)

	w := h.post("/admin/barbers", url.Values{"name": {"Omar"}})
	assert.Contains(t, w.Body.String(), "Please fill Barber name, Specialization, Working hours, and Phone number.")

	w = h.post("/admin/barbers", url.Values{"name": {"Omar"}, "specialization": {"Fades"}, "working_hours": {"9-5"}, "phone": {"call me"}})
	assert.Contains(t, w.Body.String(), "Invalid Phone")
	assert.False(t, h.backend.called(http.MethodPost, "/api/admin/barbers"))
}
