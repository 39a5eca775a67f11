package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"barbershop-web/models"
	"barbershop-web/services"
	"barbershop-web/utils"
	"barbershop-web/utils/sl"

	"github.com/gin-gonic/gin"
)

var (
	cancelActions = actionSet(models.ActionCancel)
	deleteActions = actionSet(models.ActionDelete)
)

// UserDashboardController serves the customer's dashboard and their
// appointments page. Both split the same list into upcoming and history.
type UserDashboardController struct {
	Deps
}

type userAppointmentsView struct {
	Page
	Upcoming models.Appointments
	History  models.Appointments
	Total    int
}

// Dashboard handles GET /dashboard.
func (uc *UserDashboardController) Dashboard(c *gin.Context) {
	page := uc.page(c, "My Dashboard", "dashboard")
	list, _ := uc.load(c, &page)
	uc.render(c, "user_dashboard.html", page, page.change.Apply(list))
}

// Cancel handles POST /dashboard/:id/cancel. A cancelled appointment leaves
// the upcoming list.
func (uc *UserDashboardController) Cancel(c *gin.Context) {
	page := uc.page(c, "My Dashboard", "dashboard")
	uc.act(c, page, "user_dashboard.html", "/dashboard", models.ActionCancel, cancelActions,
		func(ctx context.Context, api *services.APIClient, userID int64) performFunc {
			return func(a models.Appointment) (*models.AppointmentChange, error) {
				if _, err := api.CancelAppointment(ctx, userID, a.ID); err != nil {
					return nil, err
				}
				return models.ChangeFor(models.ActionCancel, a.ID, nil), nil
			}
		})
}

// Appointments handles GET /appointments.
func (uc *UserDashboardController) Appointments(c *gin.Context) {
	page := uc.page(c, "My Appointments", "appointments")
	list, _ := uc.load(c, &page)
	uc.render(c, "user_appointments.html", page, page.change.Apply(list))
}

// Delete handles POST /appointments/:id/delete. Only history rows can be
// removed by their owner.
func (uc *UserDashboardController) Delete(c *gin.Context) {
	page := uc.page(c, "My Appointments", "appointments")
	uc.act(c, page, "user_appointments.html", "/appointments", models.ActionDelete, deleteActions,
		func(ctx context.Context, api *services.APIClient, userID int64) performFunc {
			return func(a models.Appointment) (*models.AppointmentChange, error) {
				if err := api.DeleteUserAppointment(ctx, userID, a.ID); err != nil {
					return nil, err
				}
				return models.ChangeFor(models.ActionDelete, a.ID, nil), nil
			}
		})
}

type userPerform func(ctx context.Context, api *services.APIClient, userID int64) performFunc

// act runs one action from the customer's list and redirects back to base,
// except when the action still needs confirming.
func (uc *UserDashboardController) act(c *gin.Context, page Page, tmpl, base string, action models.Action, offered models.ActionSet, perform userPerform) {
	id, ok := paramID(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, base)
		return
	}
	list, ok := uc.load(c, &page)
	if !ok {
		uc.redirect(c, base, failed(page.Dialog.Message))
		return
	}
	if a, found := list.Find(id); found && action == models.ActionDelete && !a.Status.Terminal() {
		uc.redirect(c, base, utils.Flash{Title: "Not Allowed", Message: "Only past appointments can be removed. Cancel it first."})
		return
	}

	api, s := uc.client(c)
	req := actionRequest{
		id:      id,
		action:  action,
		offered: offered,
		repost:  base + "/" + strconv.FormatInt(id, 10) + "/" + string(action),
	}
	res := uc.runAction(c, list, req, perform(c.Request.Context(), api, s.UserID))
	if res.confirm != nil {
		page.Dialog = res.confirm
		uc.render(c, tmpl, page, list)
		return
	}
	uc.redirect(c, base, res.outcome)
}

func (uc *UserDashboardController) load(c *gin.Context, page *Page) (models.Appointments, bool) {
	api, s := uc.client(c)
	list, err := api.UserAppointments(c.Request.Context(), s.UserID)
	if err != nil {
		uc.Log.Error("failed to load appointments",
			slog.String("op", "controllers.UserDashboard.load"),
			slog.Int64("user_id", s.UserID),
			sl.Err(err))
		page.Dialog = infoDialog("Error", "Failed to load your appointments. Please try again.")
		return nil, false
	}
	return list, true
}

func (uc *UserDashboardController) render(c *gin.Context, tmpl string, page Page, list models.Appointments) {
	c.HTML(http.StatusOK, tmpl, userAppointmentsView{
		Page:     page,
		Upcoming: list.Upcoming(),
		History:  list.History(),
		Total:    len(list),
	})
}
