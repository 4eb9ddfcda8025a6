package httpserver

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"storefront/internal/metrics"
)

// Options carries router-level settings that are not service dependencies.
type Options struct {
	CORSOrigin   string
	CookieSecure bool
	Metrics      *metrics.ServerMetrics
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, opts Options) *gin.Engine {
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	if opts.Metrics != nil {
		router.Use(opts.Metrics.Middleware())
		router.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}
	if opts.CORSOrigin != "" {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     []string{opts.CORSOrigin},
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Content-Type"},
			AllowCredentials: true,
		}))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	cookieMaxAge := 0
	if deps.Tokens != nil {
		cookieMaxAge = int(deps.Tokens.TTL().Seconds())
	}
	authH := &authHandlers{svc: deps.AuthSvc, cookieMaxAge: cookieMaxAge, cookieSecure: opts.CookieSecure}
	productH := &productHandlers{svc: deps.CatalogSvc}
	cartH := &cartHandlers{svc: deps.CartSvc}
	orderH := &orderHandlers{svc: deps.OrderSvc}
	userH := &userHandlers{svc: deps.UserSvc}
	dashboardH := &dashboardHandlers{svc: deps.DashboardSvc}

	authed := authRequired(deps.Tokens)
	admin := adminRequired()

	api := router.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/signup", authH.signup)
	authGroup.POST("/login", authH.login)
	authGroup.POST("/logout", authed, authH.logout)

	products := api.Group("/products")
	products.GET("", productH.list)
	products.GET("/:id", productH.get)
	products.POST("", authed, admin, productH.create)
	products.PUT("/:id", authed, admin, productH.update)
	products.DELETE("/:id", authed, admin, productH.remove)

	cart := api.Group("/cart", authed)
	cart.POST("/add", cartH.add)
	cart.GET("", cartH.get)
	cart.DELETE("/remove/:productId", cartH.remove)

	orders := api.Group("/orders", authed)
	orders.POST("/checkout", orderH.checkout)
	orders.GET("", orderH.listMine)
	orders.PUT("/cancel/:id", orderH.cancel)
	orders.GET("/admin/all", admin, orderH.listAll)
	orders.PUT("/admin/status/:id", admin, orderH.updateStatus)
	orders.GET("/admin/expenses/:userId", admin, orderH.userExpenses)

	users := api.Group("/users", authed)
	users.GET("", admin, userH.list)
	users.GET("/me", userH.me)
	users.PUT("/me", userH.updateMe)
	users.GET("/:id", admin, userH.get)
	users.DELETE("/:id", admin, userH.remove)

	api.GET("/dashboard", authed, admin, dashboardH.get)

	return router
}
