package controllers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"barbershop-web/models"
	"barbershop-web/utils"
	"barbershop-web/utils/sl"

	"github.com/gin-gonic/gin"
)

type BarberForm struct {
	Name           string `form:"name"`
	Specialization string `form:"specialization"`
	WorkingHours   string `form:"working_hours"`
	Phone          string `form:"phone"`
	IsActive       bool   `form:"is_active"`
}

func (f BarberForm) Input() (models.BarberInput, *Dialog) {
	in := models.BarberInput{
		Name:           strings.TrimSpace(f.Name),
		Specialization: strings.TrimSpace(f.Specialization),
		WorkingHours:   strings.TrimSpace(f.WorkingHours),
		Phone:          strings.TrimSpace(f.Phone),
		IsActive:       f.IsActive,
	}
	if in.Name == "" || in.Specialization == "" || in.WorkingHours == "" || in.Phone == "" {
		return models.BarberInput{}, infoDialog("Missing Information", "Please fill Barber name, Specialization, Working hours, and Phone number.")
	}
	if !utils.ValidatePhone(in.Phone) {
		return models.BarberInput{}, infoDialog("Invalid Phone", "Please enter a valid phone number, for example +962791234567.")
	}
	return in, nil
}

func barberFormFrom(b models.Barber) BarberForm {
	return BarberForm{
		Name:           b.Name,
		Specialization: b.Specialization,
		WorkingHours:   b.WorkingHours,
		Phone:          string(b.Phone),
		IsActive:       bool(b.IsActive),
	}
}

type AdminBarbersController struct {
	Deps
}

type adminBarbersView struct {
	Page
	Barbers []models.Barber
	Form    BarberForm
	EditID  int64
}

// Index handles GET /admin/barbers; ?edit=ID opens the edit form.
func (bc *AdminBarbersController) Index(c *gin.Context) {
	page := bc.page(c, "Barbers", "admin-barbers")
	list, _ := bc.load(c, &page)

	form := BarberForm{IsActive: true}
	editID, _ := strconv.ParseInt(c.Query("edit"), 10, 64)
	if b, ok := findBarber(list, editID); editID > 0 && ok {
		form = barberFormFrom(b)
	} else {
		editID = 0
	}
	bc.render(c, page, list, form, editID)
}

// Create handles POST /admin/barbers.
func (bc *AdminBarbersController) Create(c *gin.Context) {
	const op = "controllers.AdminBarbers.Create"

	var form BarberForm
	_ = c.ShouldBind(&form)
	in, dialog := form.Input()
	if dialog == nil {
		api, _ := bc.client(c)
		if _, err := api.CreateBarber(c.Request.Context(), in); err != nil {
			bc.Log.Error("failed to add barber", slog.String("op", op), sl.Err(err))
			dialog = infoDialog("Error", "Failed to add barber.")
		}
	}
	if dialog != nil {
		page := bc.page(c, "Barbers", "admin-barbers")
		list, _ := bc.load(c, &page)
		page.Dialog = dialog
		bc.render(c, page, list, form, 0)
		return
	}
	bc.redirect(c, "/admin/barbers", utils.Flash{Title: "Added", Message: "Barber added successfully."})
}

// Update handles POST /admin/barbers/:id.
func (bc *AdminBarbersController) Update(c *gin.Context) {
	const op = "controllers.AdminBarbers.Update"

	id, ok := paramID(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/admin/barbers")
		return
	}
	var form BarberForm
	_ = c.ShouldBind(&form)

	page := bc.page(c, "Barbers", "admin-barbers")
	list, ok := bc.load(c, &page)
	if !ok {
		bc.render(c, page, nil, form, id)
		return
	}
	if _, found := findBarber(list, id); !found {
		bc.redirect(c, "/admin/barbers", failed("Missing barber id. Please refresh the page."))
		return
	}
	in, dialog := form.Input()
	if dialog != nil {
		page.Dialog = dialog
		bc.render(c, page, list, form, id)
		return
	}

	api, _ := bc.client(c)
	if _, err := api.UpdateBarber(c.Request.Context(), id, in); err != nil {
		bc.Log.Error("failed to update barber", slog.String("op", op), slog.Int64("barber_id", id), sl.Err(err))
		page.Dialog = infoDialog("Error", "Failed to update barber.")
		bc.render(c, page, list, form, id)
		return
	}
	bc.redirect(c, "/admin/barbers", utils.Flash{Title: "Updated", Message: "Barber updated successfully."})
}

// Delete handles POST /admin/barbers/:id/delete.
func (bc *AdminBarbersController) Delete(c *gin.Context) {
	const op = "controllers.AdminBarbers.Delete"

	id, ok := paramID(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/admin/barbers")
		return
	}
	page := bc.page(c, "Barbers", "admin-barbers")
	list, ok := bc.load(c, &page)
	if !ok {
		bc.redirect(c, "/admin/barbers", failed(page.Dialog.Message))
		return
	}
	barber, found := findBarber(list, id)
	if !found {
		bc.redirect(c, "/admin/barbers", failed("Missing barber id. Please refresh the page."))
		return
	}
	if !confirmed(c) {
		name := barber.Name
		if name == "" {
			name = "this barber"
		}
		page.Dialog = confirmDialog("Remove Barber",
			"Are you sure you want to remove "+name+" from the system?",
			"Remove", "/admin/barbers/"+strconv.FormatInt(id, 10)+"/delete", true, nil)
		bc.render(c, page, list, BarberForm{IsActive: true}, 0)
		return
	}

	api, _ := bc.client(c)
	if err := api.DeleteBarber(c.Request.Context(), id); err != nil {
		bc.Log.Error("failed to remove barber", slog.String("op", op), slog.Int64("barber_id", id), sl.Err(err))
		bc.redirect(c, "/admin/barbers", failed("Failed to remove barber."))
		return
	}
	bc.redirect(c, "/admin/barbers", utils.Flash{Title: "Removed", Message: "Barber removed successfully."})
}

func (bc *AdminBarbersController) load(c *gin.Context, page *Page) ([]models.Barber, bool) {
	api, _ := bc.client(c)
	list, err := api.AdminBarbers(c.Request.Context())
	if err != nil {
		bc.Log.Error("failed to load barbers", slog.String("op", "controllers.AdminBarbers.load"), sl.Err(err))
		page.Dialog = infoDialog("Error", "Failed to load barbers.")
		return nil, false
	}
	return list, true
}

func (bc *AdminBarbersController) render(c *gin.Context, page Page, list []models.Barber, form BarberForm, editID int64) {
	c.HTML(http.StatusOK, "admin_barbers.html", adminBarbersView{Page: page, Barbers: list, Form: form, EditID: editID})
}

func findBarber(list []models.Barber, id int64) (models.Barber, bool) {
	for _, b := range list {
		if b.ID == id {
			return b, true
		}
	}
	return models.Barber{}, false
}
