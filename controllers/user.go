package controllers

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"barbershop-web/models"
	"barbershop-web/utils"
	"barbershop-web/utils/sl"

	"github.com/gin-gonic/gin"
)

type AdminUsersController struct {
	Deps
}

type adminUsersView struct {
	Page
	Filter utils.UserFilter
	Users  []models.User
	Total  int
}

// Index handles GET /admin/users.
func (uc *AdminUsersController) Index(c *gin.Context) {
	page := uc.page(c, "Users", "admin-users")
	var filter utils.UserFilter
	_ = c.ShouldBindQuery(&filter)

	list, _ := uc.load(c, &page)
	uc.render(c, page, list, filter)
}

// Delete handles POST /admin/users/:id/delete. Admin accounts are refused
// before any backend call.
func (uc *AdminUsersController) Delete(c *gin.Context) {
	const op = "controllers.AdminUsers.Delete"

	var filter utils.UserFilter
	_ = c.ShouldBind(&filter)
	back := usersURL(filter)

	id, ok := paramID(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, back)
		return
	}
	page := uc.page(c, "Users", "admin-users")
	list, ok := uc.load(c, &page)
	if !ok {
		uc.redirect(c, back, failed(page.Dialog.Message))
		return
	}

	user, found := findUser(list, id)
	switch {
	case !found:
		uc.redirect(c, back, failed("User not found. Please refresh the page."))
	case user.IsAdmin():
		uc.Log.Warn("refused to delete admin account", slog.String("op", op), slog.Int64("user_id", id))
		uc.redirect(c, back, utils.Flash{Title: "Not Allowed", Message: "You cannot delete an Admin account."})
	case !confirmed(c):
		name := user.DisplayName()
		if name == "" {
			name = "this user"
		}
		page.Dialog = confirmDialog("Delete User",
			"Delete user account for "+name+"? This action cannot be undone.",
			"Delete", "/admin/users/"+strconv.FormatInt(id, 10)+"/delete", true,
			map[string]string{"role": filter.Role, "search": filter.Search})
		uc.render(c, page, list, filter)
	default:
		api, _ := uc.client(c)
		if err := api.DeleteUser(c.Request.Context(), id); err != nil {
			uc.Log.Error("failed to delete user", slog.String("op", op), slog.Int64("user_id", id), sl.Err(err))
			uc.redirect(c, back, failed("Failed to delete user."))
			return
		}
		uc.redirect(c, back, utils.Flash{Title: "Deleted", Message: "User deleted successfully."})
	}
}

func usersURL(f utils.UserFilter) string {
	q := url.Values{}
	if f.Role != "" {
		q.Set("role", f.Role)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if len(q) == 0 {
		return "/admin/users"
	}
	return "/admin/users?" + q.Encode()
}

func (uc *AdminUsersController) load(c *gin.Context, page *Page) ([]models.User, bool) {
	api, _ := uc.client(c)
	list, err := api.AdminUsers(c.Request.Context())
	if err != nil {
		uc.Log.Error("failed to load users", slog.String("op", "controllers.AdminUsers.load"), sl.Err(err))
		page.Dialog = infoDialog("Error", "Failed to load users.")
		return nil, false
	}
	return list, true
}

// render shows customer accounts only.
func (uc *AdminUsersController) render(c *gin.Context, page Page, list []models.User, filter utils.UserFilter) {
	customers := []models.User{}
	for _, u := range list {
		if !u.IsAdmin() {
			customers = append(customers, u)
		}
	}
	c.HTML(http.StatusOK, "admin_users.html", adminUsersView{
		Page:   page,
		Filter: filter,
		Users:  utils.FilterUsers(customers, filter),
		Total:  len(customers),
	})
}

func findUser(list []models.User, id int64) (models.User, bool) {
	for _, u := range list {
		if u.Key() == id {
			return u, true
		}
	}
	return models.User{}, false
}
