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

// ServiceForm is the admin add/edit service form.
type ServiceForm struct {
	Name        string `form:"name" binding:"required"`
	Description string `form:"description"`
	Price       string `form:"price" binding:"required"`
	DurationMin string `form:"duration_min" binding:"required"`
	IsActive    bool   `form:"is_active"`
}

func missingServiceInfo() *Dialog {
	return infoDialog("Missing Information", "Please fill Service name, Price, and Duration (minutes).")
}

// Input validates the form in the order the dialogs are shown. Binding has
// already rejected absent fields; blanks are caught here.
func (f ServiceForm) Input() (models.ServiceInput, *Dialog) {
	if strings.TrimSpace(f.Name) == "" || strings.TrimSpace(f.Price) == "" || strings.TrimSpace(f.DurationMin) == "" {
		return models.ServiceInput{}, missingServiceInfo()
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(f.Price), 64)
	if err != nil || price <= 0 {
		return models.ServiceInput{}, infoDialog("Invalid Price", "Price must be a valid number greater than 0.")
	}
	duration, err := strconv.Atoi(strings.TrimSpace(f.DurationMin))
	if err != nil || duration <= 0 {
		return models.ServiceInput{}, infoDialog("Invalid Duration", "Duration must be a valid number of minutes greater than 0.")
	}
	return models.ServiceInput{
		Name:        strings.TrimSpace(f.Name),
		Description: strings.TrimSpace(f.Description),
		Price:       price,
		DurationMin: duration,
		IsActive:    f.IsActive,
	}, nil
}

func serviceFormFrom(s models.Service) ServiceForm {
	return ServiceForm{
		Name:        s.Name,
		Description: s.Description,
		Price:       s.Price.String(),
		DurationMin: strconv.Itoa(s.DurationMin.Int()),
		IsActive:    bool(s.IsActive),
	}
}

type AdminServicesController struct {
	Deps
}

type adminServicesView struct {
	Page
	Services []models.Service
	Form     ServiceForm
	EditID   int64
}

// Index handles GET /admin/services; ?edit=ID opens the edit form.
func (sc *AdminServicesController) Index(c *gin.Context) {
	page := sc.page(c, "Services", "admin-services")
	list, _ := sc.load(c, &page)

	form := ServiceForm{IsActive: true}
	editID, _ := strconv.ParseInt(c.Query("edit"), 10, 64)
	if editID > 0 {
		if s, ok := findService(list, editID); ok {
			form = serviceFormFrom(s)
		} else {
			editID = 0
		}
	}
	sc.render(c, page, list, form, editID)
}

// Create handles POST /admin/services.
func (sc *AdminServicesController) Create(c *gin.Context) {
	const op = "controllers.AdminServices.Create"

	var form ServiceForm
	bindErr := c.ShouldBind(&form)
	in, dialog := form.Input()
	if bindErr != nil {
		dialog = missingServiceInfo()
	}
	if dialog == nil {
		api, _ := sc.client(c)
		if _, err := api.CreateService(c.Request.Context(), in); err != nil {
			sc.Log.Error("failed to add service", slog.String("op", op), sl.Err(err))
			dialog = infoDialog("Error", "Failed to add service.")
		}
	}
	if dialog != nil {
		page := sc.page(c, "Services", "admin-services")
		list, _ := sc.load(c, &page)
		page.Dialog = dialog
		sc.render(c, page, list, form, 0)
		return
	}
	sc.redirect(c, "/admin/services", utils.Flash{Title: "Added", Message: "Service added successfully."})
}

// Update handles POST /admin/services/:id.
func (sc *AdminServicesController) Update(c *gin.Context) {
	const op = "controllers.AdminServices.Update"

	id, ok := paramID(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/admin/services")
		return
	}
	var form ServiceForm
	bindErr := c.ShouldBind(&form)

	page := sc.page(c, "Services", "admin-services")
	list, ok := sc.load(c, &page)
	if !ok {
		sc.render(c, page, nil, form, id)
		return
	}
	if _, found := findService(list, id); !found {
		sc.redirect(c, "/admin/services", failed("Missing service id. Please refresh the page."))
		return
	}
	in, dialog := form.Input()
	if bindErr != nil {
		dialog = missingServiceInfo()
	}
	if dialog != nil {
		page.Dialog = dialog
		sc.render(c, page, list, form, id)
		return
	}

	api, _ := sc.client(c)
	if _, err := api.UpdateService(c.Request.Context(), id, in); err != nil {
		sc.Log.Error("failed to update service", slog.String("op", op), slog.Int64("service_id", id), sl.Err(err))
		page.Dialog = infoDialog("Error", "Failed to update service.")
		sc.render(c, page, list, form, id)
		return
	}
	sc.redirect(c, "/admin/services", utils.Flash{Title: "Updated", Message: "Service updated successfully."})
}

// Delete handles POST /admin/services/:id/delete.
func (sc *AdminServicesController) Delete(c *gin.Context) {
	const op = "controllers.AdminServices.Delete"

	id, ok := paramID(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/admin/services")
		return
	}
	page := sc.page(c, "Services", "admin-services")
	list, ok := sc.load(c, &page)
	if !ok {
		sc.redirect(c, "/admin/services", failed(page.Dialog.Message))
		return
	}
	if _, found := findService(list, id); !found {
		sc.redirect(c, "/admin/services", failed("Service not found. Please refresh the page."))
		return
	}
	if !confirmed(c) {
		page.Dialog = confirmDialog("Delete Service",
			"Are you sure you want to delete this service? This action cannot be undone.",
			"Delete", "/admin/services/"+strconv.FormatInt(id, 10)+"/delete", true, nil)
		sc.render(c, page, list, ServiceForm{IsActive: true}, 0)
		return
	}

	api, _ := sc.client(c)
	if err := api.DeleteService(c.Request.Context(), id); err != nil {
		sc.Log.Error("failed to delete service", slog.String("op", op), slog.Int64("service_id", id), sl.Err(err))
		sc.redirect(c, "/admin/services", failed("Failed to delete service."))
		return
	}
	sc.redirect(c, "/admin/services", utils.Flash{Title: "Deleted", Message: "Service deleted successfully."})
}

func (sc *AdminServicesController) load(c *gin.Context, page *Page) ([]models.Service, bool) {
	api, _ := sc.client(c)
	list, err := api.AdminServices(c.Request.Context())
	if err != nil {
		sc.Log.Error("failed to load services", slog.String("op", "controllers.AdminServices.load"), sl.Err(err))
		page.Dialog = infoDialog("Error", "Failed to load services.")
		return nil, false
	}
	return list, true
}

func (sc *AdminServicesController) render(c *gin.Context, page Page, list []models.Service, form ServiceForm, editID int64) {
	c.HTML(http.StatusOK, "admin_services.html", adminServicesView{Page: page, Services: list, Form: form, EditID: editID})
}

func findService(list []models.Service, id int64) (models.Service, bool) {
	for _, s := range list {
		if s.ID == id {
			return s, true
		}
	}
	return models.Service{}, false
}
