package routes

import (
	"io/fs"
	"net/http"
	"slices"
	"time"

	"barbershop-web/config"
	"barbershop-web/controllers"
	"barbershop-web/models"
	"barbershop-web/templates"
	"barbershop-web/utils"
	"barbershop-web/utils/sl"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

type Options struct {
	AllowedOrigins     []string
	LoginRatePerMinute int
	// TrustedProxies are the peers whose X-Forwarded-For is believed. Empty
	// trusts none and the socket address is the client IP.
	TrustedProxies []string
	// Redis, when set, shares the login throttle between instances.
	Redis       *redis.Client
	RedisPrefix string
	// Now overrides the clock for the booking form and dashboard counts.
	Now func() time.Time
}

// SetupRouter wires every view behind its role gate. The gate only steers
// navigation; the backend authorizes each call itself.
func SetupRouter(deps controllers.Deps, opts Options) *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(opts.TrustedProxies); err != nil {
		deps.Log.Error("invalid trusted proxies, trusting none", sl.Err(err))
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery())
	r.Use(config.PerformanceLogger(deps.Log))

	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", config.RequestIDHeader},
			ExposeHeaders:    []string{"Content-Length", config.RequestIDHeader},
			AllowCredentials: true,
			AllowOriginFunc: func(origin string) bool {
				return slices.Contains(opts.AllowedOrigins, origin)
			},
			MaxAge: 12 * time.Hour,
		}))
	}

	r.SetHTMLTemplate(templates.MustLoad())
	if static, err := fs.Sub(templates.Static, "static"); err == nil {
		r.StaticFS("/static", http.FS(static))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	landing := &controllers.LandingController{Deps: deps}
	auth := &controllers.AuthController{Deps: deps}
	booking := &controllers.BookingController{Deps: deps, Now: opts.Now}
	customer := &controllers.UserDashboardController{Deps: deps}
	dashboard := &controllers.AdminDashboardController{Deps: deps, Now: opts.Now}
	appointments := &controllers.AdminAppointmentsController{Deps: deps}
	catalog := &controllers.AdminServicesController{Deps: deps}
	barbers := &controllers.AdminBarbersController{Deps: deps}
	users := &controllers.AdminUsersController{Deps: deps}

	r.GET("/", landing.Index)

	rate := opts.LoginRatePerMinute
	if rate <= 0 {
		rate = 20
	}
	throttle := utils.NewRateLimiter(rate).Middleware(deps.Log)
	if opts.Redis != nil {
		throttle = utils.NewRedisRateLimiter(opts.Redis, rate, opts.RedisPrefix+":login").Middleware(deps.Log)
	}

	guest := r.Group("/")
	guest.Use(utils.RedirectIfAuthenticated(deps.Sessions))
	{
		guest.GET("/login", auth.LoginPage)
		guest.POST("/login", throttle, auth.Login)
		guest.GET("/signup", auth.SignupPage)
		guest.POST("/signup", throttle, auth.Signup)
	}
	r.POST("/logout", auth.Logout)

	user := r.Group("/")
	user.Use(utils.RequireRole(deps.Sessions, models.RoleUser))
	{
		user.GET("/dashboard", customer.Dashboard)
		user.POST("/dashboard/:id/cancel", customer.Cancel)
		user.GET("/book", booking.New)
		user.POST("/book", booking.Create)
		user.GET("/appointments", customer.Appointments)
		user.POST("/appointments/:id/delete", customer.Delete)
	}

	admin := r.Group("/admin")
	admin.Use(utils.RequireRole(deps.Sessions, models.RoleAdmin))
	{
		admin.GET("", dashboard.Index)
		admin.POST("/pending/:id/:action", dashboard.Act)

		admin.GET("/appointments", appointments.Index)
		admin.POST("/appointments/:id/:action", appointments.Act)

		admin.GET("/services", catalog.Index)
		admin.POST("/services", catalog.Create)
		admin.POST("/services/:id", catalog.Update)
		admin.POST("/services/:id/delete", catalog.Delete)

		admin.GET("/barbers", barbers.Index)
		admin.POST("/barbers", barbers.Create)
		admin.POST("/barbers/:id", barbers.Update)
		admin.POST("/barbers/:id/delete", barbers.Delete)

		admin.GET("/users", users.Index)
		admin.POST("/users/:id/delete", users.Delete)
	}

	r.NoRoute(func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/")
	})

	return r
}
