package controllers

import (
	"log/slog"
	"net/http"

	"barbershop-web/models"
	"barbershop-web/utils/sl"

	"github.com/gin-gonic/gin"
)

type LandingController struct {
	Deps
}

type landingView struct {
	Page
	Services []models.Service
	Barbers  []models.Barber
}

// Index handles GET /.
func (lc *LandingController) Index(c *gin.Context) {
	ctx := c.Request.Context()
	page := lc.page(c, "Welcome", "home")

	catalog, err := lc.API.PublicServices(ctx)
	if err != nil {
		lc.Log.Error("failed to load services", slog.String("op", "controllers.Landing.Index"), sl.Err(err))
	}
	barbers, err := lc.API.PublicBarbers(ctx)
	if err != nil {
		lc.Log.Error("failed to load barbers", slog.String("op", "controllers.Landing.Index"), sl.Err(err))
	}

	c.HTML(http.StatusOK, "landing.html", landingView{
		Page:     page,
		Services: models.ActiveServices(catalog),
		Barbers:  models.ActiveBarbers(barbers),
	})
}
