package controllers

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"barbershop-web/models"
	"barbershop-web/services"
	"barbershop-web/session"
	"barbershop-web/utils"

	"github.com/gin-gonic/gin"
)

// Dialog is the modal shown over a view. Without ConfirmAction it is an info
// dialog with a single OK button. Cancel and OK close it in the browser.
type Dialog struct {
	Title         string
	Message       string
	Danger        bool
	ConfirmText   string
	CancelText    string
	ConfirmAction string
	Fields        map[string]string
}

func infoDialog(title, message string) *Dialog {
	return &Dialog{Title: title, Message: message, ConfirmText: "OK"}
}

// confirmDialog asks before posting to action again with confirmed=yes.
// Extra fields are carried as hidden inputs.
func confirmDialog(title, message, confirmText, action string, danger bool, fields map[string]string) *Dialog {
	all := map[string]string{"confirmed": "yes"}
	for k, v := range fields {
		all[k] = v
	}
	return &Dialog{
		Title:         title,
		Message:       message,
		Danger:        danger,
		ConfirmText:   confirmText,
		CancelText:    "Cancel",
		ConfirmAction: action,
		Fields:        all,
	}
}

// Page carries what the layout needs on every view.
type Page struct {
	Title   string
	Active  string
	Session *session.Session
	Weather *services.Weather
	Dialog  *Dialog

	// change is an appointment action that succeeded before the redirect here.
	change *models.AppointmentChange
}

// Deps are the collaborators every view controller shares.
type Deps struct {
	API      *services.APIClient
	Sessions *session.Manager
	Weather  *services.WeatherService
	Log      *slog.Logger
}

// page builds the layout data and consumes any pending flash. The weather
// widget is only fetched for signed-in visitors.
func (d Deps) page(c *gin.Context, title, active string) Page {
	p := Page{Title: title, Active: active}
	if s, err := d.Sessions.Current(c); err == nil {
		p.Session = &s
		p.Weather = d.Weather.Current(c.Request.Context())
	}
	if f, ok := utils.PopFlash(c); ok {
		if f.Title != "" {
			p.Dialog = infoDialog(f.Title, f.Message)
		}
		p.change = f.Change
	}
	return p
}

// redirect ends a POST by sending the browser back to a view, carrying f
// across so a reload does not repeat the action.
func (d Deps) redirect(c *gin.Context, target string, f utils.Flash) {
	utils.SetFlash(c, f)
	c.Redirect(http.StatusSeeOther, target)
}

func failed(message string) utils.Flash {
	return utils.Flash{Title: "Error", Message: message}
}

// client returns the API client tagged with the signed-in user's role.
func (d Deps) client(c *gin.Context) (*services.APIClient, session.Session) {
	s := utils.CurrentSession(c, d.Sessions)
	return d.API.WithRole(s.Role), s
}

func confirmed(c *gin.Context) bool {
	return c.PostForm("confirmed") == "yes"
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

// filterFields keeps the table filter across a confirmation round trip.
func filterFields(f utils.AppointmentFilter) map[string]string {
	return map[string]string{"status": string(f.Status), "date": f.Date, "search": f.Search}
}

// withFilter returns path with the active filter as its query.
func withFilter(path string, f utils.AppointmentFilter) string {
	if !f.Active() {
		return path
	}
	q := url.Values{}
	for k, v := range filterFields(f) {
		if v != "" {
			q.Set(k, v)
		}
	}
	return path + "?" + q.Encode()
}
