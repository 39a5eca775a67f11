package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"barbershop-web/models"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// RoleHeader carries the caller's role to the backend. The backend treats it
// as a hint only and must authorize every request itself.
const RoleHeader = "X-Role"

// APIClient is the typed client for the barbershop REST backend: one method
// per endpoint, with every non-2xx response normalized into *APIError.
type APIClient struct {
	baseURL string
	http    *http.Client
	role    models.Role
}

// NewAPIClient builds a client for baseURL. A zero timeout disables the
// per-request deadline. transport may be nil.
func NewAPIClient(baseURL string, timeout time.Duration, transport http.RoundTripper) *APIClient {
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &APIClient{
		baseURL: baseURL,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(transport),
		},
	}
}

// WithRole returns a copy that sends role in the X-Role header.
func (c *APIClient) WithRole(role models.Role) *APIClient {
	cp := *c
	cp.role = role
	return &cp
}

func (c *APIClient) do(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.role != "" {
		req.Header.Set(RoleHeader, string(c.role))
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	observe(op, method, statusText(resp), started)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: read response: %w", op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(op, resp.StatusCode, data)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

// getList decodes a JSON array; any other 2xx payload is an empty list.
func getList[T any](ctx context.Context, c *APIClient, op, path string) ([]T, error) {
	var raw json.RawMessage
	if err := c.do(ctx, op, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return []T{}, nil
	}
	list := []T{}
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", op, err)
	}
	return list, nil
}

func pathID(v int64) string {
	return url.PathEscape(strconv.FormatInt(v, 10))
}

// Auth

func (c *APIClient) Login(ctx context.Context, in models.LoginInput) (models.AuthUser, error) {
	var u models.AuthUser
	err := c.do(ctx, "api.auth.login", http.MethodPost, "/api/auth/login", in, &u)
	return u, err
}

func (c *APIClient) Signup(ctx context.Context, in models.SignupInput) (models.AuthUser, error) {
	var u models.AuthUser
	err := c.do(ctx, "api.auth.signup", http.MethodPost, "/api/auth/signup", in, &u)
	return u, err
}

// Public catalog

func (c *APIClient) PublicServices(ctx context.Context) ([]models.Service, error) {
	return getList[models.Service](ctx, c, "api.users.services", "/api/users/services")
}

func (c *APIClient) PublicBarbers(ctx context.Context) ([]models.Barber, error) {
	return getList[models.Barber](ctx, c, "api.users.barbers", "/api/users/barbers")
}

// Customer appointments

func (c *APIClient) CreateAppointment(ctx context.Context, userID int64, in models.CreateAppointmentInput) (models.Appointment, error) {
	var a models.Appointment
	err := c.do(ctx, "api.users.appointments.create", http.MethodPost,
		"/api/users/"+pathID(userID)+"/appointments", in, &a)
	return a, err
}

func (c *APIClient) UserAppointments(ctx context.Context, userID int64) (models.Appointments, error) {
	return getList[models.Appointment](ctx, c, "api.users.appointments",
		"/api/users/"+pathID(userID)+"/appointments")
}

func (c *APIClient) CancelAppointment(ctx context.Context, userID, appointmentID int64) (models.Appointment, error) {
	var a models.Appointment
	err := c.do(ctx, "api.users.appointments.cancel", http.MethodPut,
		"/api/users/"+pathID(userID)+"/appointments/"+pathID(appointmentID)+"/cancel", nil, &a)
	return a, err
}

func (c *APIClient) DeleteUserAppointment(ctx context.Context, userID, appointmentID int64) error {
	return c.do(ctx, "api.users.appointments.delete", http.MethodDelete,
		"/api/users/"+pathID(userID)+"/appointments/"+pathID(appointmentID)+"/Delete", nil, nil)
}

// Admin services

func (c *APIClient) AdminServices(ctx context.Context) ([]models.Service, error) {
	return getList[models.Service](ctx, c, "api.admin.services", "/api/admin/services")
}

func (c *APIClient) CreateService(ctx context.Context, in models.ServiceInput) (models.Service, error) {
	var s models.Service
	err := c.do(ctx, "api.admin.services.create", http.MethodPost, "/api/admin/services", in, &s)
	return s, err
}

func (c *APIClient) UpdateService(ctx context.Context, serviceID int64, in models.ServiceInput) (models.Service, error) {
	var s models.Service
	err := c.do(ctx, "api.admin.services.update", http.MethodPut, "/api/admin/services/"+pathID(serviceID), in, &s)
	return s, err
}

func (c *APIClient) DeleteService(ctx context.Context, serviceID int64) error {
	return c.do(ctx, "api.admin.services.delete", http.MethodDelete, "/api/admin/services/"+pathID(serviceID), nil, nil)
}

// Admin barbers

func (c *APIClient) AdminBarbers(ctx context.Context) ([]models.Barber, error) {
	return getList[models.Barber](ctx, c, "api.admin.barbers", "/api/admin/barbers")
}

func (c *APIClient) CreateBarber(ctx context.Context, in models.BarberInput) (models.Barber, error) {
	var b models.Barber
	err := c.do(ctx, "api.admin.barbers.create", http.MethodPost, "/api/admin/barbers", in, &b)
	return b, err
}

func (c *APIClient) UpdateBarber(ctx context.Context, barberID int64, in models.BarberInput) (models.Barber, error) {
	var b models.Barber
	err := c.do(ctx, "api.admin.barbers.update", http.MethodPut, "/api/admin/barbers/"+pathID(barberID), in, &b)
	return b, err
}

func (c *APIClient) DeleteBarber(ctx context.Context, barberID int64) error {
	return c.do(ctx, "api.admin.barbers.delete", http.MethodDelete, "/api/admin/barbers/"+pathID(barberID), nil, nil)
}

// Admin users

func (c *APIClient) AdminUsers(ctx context.Context) ([]models.User, error) {
	return getList[models.User](ctx, c, "api.admin.users", "/api/admin/users")
}

func (c *APIClient) DeleteUser(ctx context.Context, userID int64) error {
	return c.do(ctx, "api.admin.users.delete", http.MethodDelete, "/api/admin/users/"+pathID(userID), nil, nil)
}

// Admin appointments

func (c *APIClient) AdminAppointments(ctx context.Context) (models.Appointments, error) {
	return getList[models.Appointment](ctx, c, "api.admin.appointments", "/api/admin/appointments")
}

func (c *APIClient) ApproveAppointment(ctx context.Context, appointmentID int64) error {
	return c.do(ctx, "api.admin.appointments.approve", http.MethodPut,
		"/api/admin/appointments/"+pathID(appointmentID)+"/approve", map[string]any{"approved_by": nil}, nil)
}

func (c *APIClient) RejectAppointment(ctx context.Context, appointmentID int64) error {
	return c.do(ctx, "api.admin.appointments.reject", http.MethodPut,
		"/api/admin/appointments/"+pathID(appointmentID)+"/reject", map[string]any{"approved_by": nil}, nil)
}

// CompleteAppointment returns the backend's updated record.
func (c *APIClient) CompleteAppointment(ctx context.Context, appointmentID int64) (models.Appointment, error) {
	var a models.Appointment
	err := c.do(ctx, "api.admin.appointments.complete", http.MethodPut,
		"/api/admin/appointments/"+pathID(appointmentID)+"/complete", map[string]any{"completed_by": nil}, &a)
	return a, err
}

func (c *APIClient) DeleteAppointment(ctx context.Context, appointmentID int64) error {
	return c.do(ctx, "api.admin.appointments.delete", http.MethodDelete,
		"/api/admin/appointments/"+pathID(appointmentID), nil, nil)
}

func (c *APIClient) DashboardStats(ctx context.Context) (models.DashboardStats, error) {
	var s models.DashboardStats
	err := c.do(ctx, "api.admin.dashboard.stats", http.MethodGet, "/api/admin/dashboard/stats", nil, &s)
	return s, err
}
