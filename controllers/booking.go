package controllers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"barbershop-web/models"
	"barbershop-web/services"
	"barbershop-web/utils"
	"barbershop-web/utils/sl"

	"github.com/gin-gonic/gin"
)

// BookingForm is the book-appointment form as posted.
type BookingForm struct {
	ServiceID string `form:"service_id"`
	BarberID  string `form:"barber_id"`
	Date      string `form:"appt_date"`
	Time      string `form:"appt_time"`
	Notes     string `form:"notes"`
}

// Valid reports whether all four required fields are set.
func (f BookingForm) Valid() bool {
	return strings.TrimSpace(f.ServiceID) != "" &&
		strings.TrimSpace(f.BarberID) != "" &&
		strings.TrimSpace(f.Date) != "" &&
		strings.TrimSpace(f.Time) != ""
}

// Input converts a valid form into the booking request, or returns the
// dialog explaining what is wrong with it.
func (f BookingForm) Input(now time.Time) (models.CreateAppointmentInput, *Dialog) {
	if !f.Valid() {
		return models.CreateAppointmentInput{}, infoDialog("Missing Information", "Please select a service, barber, date, and time.")
	}
	serviceID, err1 := strconv.ParseInt(f.ServiceID, 10, 64)
	barberID, err2 := strconv.ParseInt(f.BarberID, 10, 64)
	if err1 != nil || err2 != nil {
		return models.CreateAppointmentInput{}, infoDialog("Missing Information", "Please select a service and a barber from the lists.")
	}
	if utils.IsPastDate(f.Date, now) {
		return models.CreateAppointmentInput{}, infoDialog("Invalid Date", "Please choose today or a future date.")
	}
	if !utils.IsTimeSlot(f.Time) {
		return models.CreateAppointmentInput{}, infoDialog("Invalid Time", "Please choose one of the available time slots.")
	}

	in := models.CreateAppointmentInput{
		ServiceID: serviceID,
		BarberID:  barberID,
		Date:      utils.NormalizeDate(f.Date),
		Time:      f.Time,
	}
	if notes := strings.TrimSpace(f.Notes); notes != "" {
		in.Notes = &notes
	}
	return in, nil
}

type BookingController struct {
	Deps
	Now func() time.Time
}

type bookingView struct {
	Page
	Form     BookingForm
	Services []models.Service
	Barbers  []models.Barber
	Slots    []string
	MinDate  string
	Selected *models.Service
}

// New handles GET /book.
func (bc *BookingController) New(c *gin.Context) {
	page := bc.page(c, "Book Appointment", "book")
	form := BookingForm{ServiceID: c.Query("service")}
	bc.render(c, page, form)
}

// Create handles POST /book.
func (bc *BookingController) Create(c *gin.Context) {
	const op = "controllers.Booking.Create"

	page := bc.page(c, "Book Appointment", "book")
	var form BookingForm
	_ = c.ShouldBind(&form)

	in, dialog := form.Input(bc.now())
	if dialog != nil {
		page.Dialog = dialog
		bc.render(c, page, form)
		return
	}

	api, s := bc.client(c)
	if _, err := api.CreateAppointment(c.Request.Context(), s.UserID, in); err != nil {
		if services.IsConflict(err) {
			bc.Log.Info("booking conflict", slog.String("op", op), slog.String("date", in.Date), slog.String("time", in.Time))
			page.Dialog = infoDialog("Time Slot Unavailable", "This time slot is already booked. Please choose another time.")
		} else {
			bc.Log.Error("booking failed", slog.String("op", op), slog.Int64("user_id", s.UserID), sl.Err(err))
			page.Dialog = infoDialog("Booking Failed", "An error occurred while booking your appointment. Please try again later.")
		}
		bc.render(c, page, form)
		return
	}

	bc.Log.Info("appointment booked", slog.Int64("user_id", s.UserID), slog.String("date", in.Date), slog.String("time", in.Time))
	utils.SetFlash(c, utils.Flash{
		Title:   "Appointment Booked",
		Message: "Appointment booked successfully! You will be notified once approved.",
	})
	c.Redirect(http.StatusFound, "/dashboard")
}

func (bc *BookingController) now() time.Time {
	if bc.Now != nil {
		return bc.Now()
	}
	return time.Now()
}

func (bc *BookingController) render(c *gin.Context, page Page, form BookingForm) {
	ctx := c.Request.Context()
	api, _ := bc.client(c)

	catalog, err := api.PublicServices(ctx)
	if err != nil {
		bc.Log.Error("failed to load services", slog.String("op", "controllers.Booking.render"), sl.Err(err))
	}
	barbers, err := api.PublicBarbers(ctx)
	if err != nil {
		bc.Log.Error("failed to load barbers", slog.String("op", "controllers.Booking.render"), sl.Err(err))
		if page.Dialog == nil {
			page.Dialog = infoDialog("Error", "Failed to load barbers.")
		}
	}

	view := bookingView{
		Page:     page,
		Form:     form,
		Services: models.ActiveServices(catalog),
		Barbers:  models.ActiveBarbers(barbers),
		Slots:    utils.TimeSlots(),
		MinDate:  bc.now().Format(utils.DateLayout),
	}
	for i := range view.Services {
		if strconv.FormatInt(view.Services[i].ID, 10) == form.ServiceID {
			view.Selected = &view.Services[i]
		}
	}
	c.HTML(http.StatusOK, "book.html", view)
}
