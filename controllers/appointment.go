package controllers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"barbershop-web/models"
	"barbershop-web/services"
	"barbershop-web/utils"
	"barbershop-web/utils/sl"

	"github.com/gin-gonic/gin"
)

var adminActions = actionSet(models.ActionApprove, models.ActionReject, models.ActionComplete, models.ActionDelete)

type AdminAppointmentsController struct {
	Deps
}

type adminAppointmentsView struct {
	Page
	Filter       utils.AppointmentFilter
	Statuses     []models.Status
	Appointments models.Appointments
	Total        int
}

// Index handles GET /admin/appointments.
func (ac *AdminAppointmentsController) Index(c *gin.Context) {
	page := ac.page(c, "Appointments", "admin-appointments")
	var filter utils.AppointmentFilter
	_ = c.ShouldBindQuery(&filter)

	api, _ := ac.client(c)
	list, err := api.AdminAppointments(c.Request.Context())
	if err != nil {
		ac.Log.Error("failed to load appointments", slog.String("op", "controllers.AdminAppointments.Index"), sl.Err(err))
		page.Dialog = infoDialog("Error", "Failed to load appointments. Please try again.")
	}
	ac.render(c, page, page.change.Apply(list), filter)
}

// Act handles POST /admin/appointments/:id/:action and redirects back to the
// filtered table unless a confirmation is needed first.
func (ac *AdminAppointmentsController) Act(c *gin.Context) {
	var filter utils.AppointmentFilter
	_ = c.ShouldBind(&filter)
	back := withFilter("/admin/appointments", filter)

	id, ok := paramID(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, back)
		return
	}
	action := models.Action(c.Param("action"))

	api, _ := ac.client(c)
	ctx := c.Request.Context()
	list, err := api.AdminAppointments(ctx)
	if err != nil {
		ac.Log.Error("failed to load appointments", slog.String("op", "controllers.AdminAppointments.Act"), sl.Err(err))
		ac.redirect(c, back, failed("Failed to load appointments. Please try again."))
		return
	}

	req := actionRequest{
		id:      id,
		action:  action,
		offered: adminActions,
		repost:  "/admin/appointments/" + strconv.FormatInt(id, 10) + "/" + string(action),
		fields:  filterFields(filter),
	}
	res := ac.runAction(c, list, req, adminPerform(ctx, api, action))
	if res.confirm != nil {
		page := ac.page(c, "Appointments", "admin-appointments")
		page.Dialog = res.confirm
		ac.render(c, page, list, filter)
		return
	}
	ac.redirect(c, back, res.outcome)
}

func (ac *AdminAppointmentsController) render(c *gin.Context, page Page, list models.Appointments, filter utils.AppointmentFilter) {
	c.HTML(http.StatusOK, "admin_appointments.html", adminAppointmentsView{
		Page:         page,
		Filter:       filter,
		Statuses:     models.Statuses,
		Appointments: utils.FilterAppointments(list, filter),
		Total:        len(list),
	})
}

// adminPerform maps an admin action to its backend call. Complete carries
// the server's record; the others carry the status or removal.
func adminPerform(ctx context.Context, api *services.APIClient, action models.Action) performFunc {
	return func(a models.Appointment) (*models.AppointmentChange, error) {
		var err error
		switch action {
		case models.ActionApprove:
			err = api.ApproveAppointment(ctx, a.ID)
		case models.ActionReject:
			err = api.RejectAppointment(ctx, a.ID)
		case models.ActionComplete:
			updated, err := api.CompleteAppointment(ctx, a.ID)
			if err != nil {
				return nil, err
			}
			return models.ChangeFor(action, a.ID, &updated), nil
		case models.ActionDelete:
			err = api.DeleteAppointment(ctx, a.ID)
		default:
			return nil, fmt.Errorf("controllers.adminPerform: unsupported action %q", action)
		}
		if err != nil {
			return nil, err
		}
		return models.ChangeFor(action, a.ID, nil), nil
	}
}
