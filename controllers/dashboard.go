package controllers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"barbershop-web/models"
	"barbershop-web/utils"
	"barbershop-web/utils/sl"

	"github.com/gin-gonic/gin"
)

var pendingActions = actionSet(models.ActionApprove, models.ActionReject)

type AdminDashboardController struct {
	Deps
	Now func() time.Time
}

// DashboardOverview is the admin landing page's summary.
type DashboardOverview struct {
	TotalAppointments int
	Pending           int
	Today             int
	ActiveUsers       int
	ActiveBarbers     int
}

type adminDashboardView struct {
	Page
	Overview DashboardOverview
	Pending  models.Appointments
}

// Overview computes the appointment counts for day and merges the backend's
// user and barber totals.
func Overview(list models.Appointments, stats models.DashboardStats, day time.Time) DashboardOverview {
	today := day.Format(utils.DateLayout)
	o := DashboardOverview{
		TotalAppointments: len(list),
		ActiveUsers:       stats.ActiveUsers.Int(),
		ActiveBarbers:     stats.ActiveBarbers.Int(),
	}
	for _, a := range list {
		if a.Status == models.StatusPending {
			o.Pending++
		}
		if utils.NormalizeDate(a.Date) == today {
			o.Today++
		}
	}
	return o
}

// Index handles GET /admin.
func (dc *AdminDashboardController) Index(c *gin.Context) {
	page := dc.page(c, "Admin Dashboard", "admin")
	list, _ := dc.load(c, &page)
	dc.render(c, page, page.change.Apply(list))
}

// Act handles POST /admin/pending/:id/:action for the pending list.
func (dc *AdminDashboardController) Act(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/admin")
		return
	}
	action := models.Action(c.Param("action"))

	page := dc.page(c, "Admin Dashboard", "admin")
	list, ok := dc.load(c, &page)
	if !ok {
		dc.redirect(c, "/admin", failed(page.Dialog.Message))
		return
	}
	api, _ := dc.client(c)
	req := actionRequest{
		id:      id,
		action:  action,
		offered: pendingActions,
		repost:  "/admin/pending/" + strconv.FormatInt(id, 10) + "/" + string(action),
	}
	res := dc.runAction(c, list, req, adminPerform(c.Request.Context(), api, action))
	if res.confirm != nil {
		page.Dialog = res.confirm
		dc.render(c, page, list)
		return
	}
	dc.redirect(c, "/admin", res.outcome)
}

func (dc *AdminDashboardController) load(c *gin.Context, page *Page) (models.Appointments, bool) {
	api, _ := dc.client(c)
	list, err := api.AdminAppointments(c.Request.Context())
	if err != nil {
		dc.Log.Error("failed to load appointments", slog.String("op", "controllers.AdminDashboard.load"), sl.Err(err))
		page.Dialog = infoDialog("Error", "Failed to load dashboard data. Please try again.")
		return nil, false
	}
	return list, true
}

func (dc *AdminDashboardController) render(c *gin.Context, page Page, list models.Appointments) {
	api, _ := dc.client(c)
	stats, err := api.DashboardStats(c.Request.Context())
	if err != nil {
		dc.Log.Warn("failed to load dashboard stats", slog.String("op", "controllers.AdminDashboard.render"), sl.Err(err))
	}
	now := time.Now
	if dc.Now != nil {
		now = dc.Now
	}
	c.HTML(http.StatusOK, "admin_dashboard.html", adminDashboardView{
		Page:     page,
		Overview: Overview(list, stats, now()),
		Pending:  list.WithStatus(models.StatusPending),
	})
}
