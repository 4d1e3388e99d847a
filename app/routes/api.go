// Package routes mounts every HTTP endpoint on the router.
package routes

import (
	"net/http"

	"github.com/shashiranjanraj/plantnet/app/controllers"
	"github.com/shashiranjanraj/plantnet/app/repositories"
	"github.com/shashiranjanraj/plantnet/app/services"
	"github.com/shashiranjanraj/plantnet/pkg/metrics"
	"github.com/shashiranjanraj/plantnet/pkg/middleware"
	"github.com/shashiranjanraj/plantnet/pkg/rbac"
	"github.com/shashiranjanraj/plantnet/pkg/router"
)

// Deps carries the constructed services and repositories into the routes.
// Nothing here reaches for globals; the server boots and owns all of it.
type Deps struct {
	Users     *repositories.UserRepository
	Plants    *repositories.PlantRepository
	Orders    *services.OrderService
	Stats     *services.StatsService
	Payments  *services.PaymentService
	Catalogue http.HandlerFunc
}

// RegisterAPI mounts the full HTTP surface.
func RegisterAPI(r *router.Router, d Deps) {
	authCtl := controllers.NewAuthController()
	userCtl := controllers.NewUserController(d.Users)
	plantCtl := controllers.NewPlantController(d.Plants)
	orderCtl := controllers.NewOrderController(d.Orders)
	statsCtl := controllers.NewStatsController(d.Stats)
	payCtl := controllers.NewPaymentController(d.Payments)

	session := middleware.Auth
	seller := rbac.Require("seller", d.Users.RoleOf)
	admin := rbac.Require("admin", d.Users.RoleOf)

	// Public
	r.Get("/", "home", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("Hello from plantNet Server..")) //nolint:errcheck
	})
	r.HandleFunc("/metrics", metrics.Handler())
	r.Post("/jwt", "auth.token", authCtl.IssueToken)
	r.Get("/logout", "auth.logout", authCtl.Logout)
	r.Post("/users/{email}", "users.ensure", userCtl.Ensure)
	r.Get("/users/role/{email}", "users.role", userCtl.Role)
	r.Get("/plants", "plants.index", plantCtl.All)
	if d.Catalogue != nil {
		r.Post("/graphql", "catalogue.graphql", d.Catalogue)
	}

	// Session-gated
	r.Patch("/users/{email}", "users.requestRole", userCtl.RequestRoleChange, session)
	r.Post("/order", "orders.create", orderCtl.Create, session)
	r.Patch("/plants/quantity/{id}", "plants.quantity", plantCtl.AdjustQuantity, session)
	r.Get("/customer-orders/{email}", "orders.customer", orderCtl.ForCustomer, session)
	r.Delete("/orders/{id}", "orders.cancel", orderCtl.Cancel, session)
	r.Post("/create-payment-intent", "payments.intent", payCtl.CreateIntent, session)

	// Seller-gated
	r.Get("/plants/seller", "plants.seller", plantCtl.BySeller, session, seller)
	r.Post("/plants", "plants.create", plantCtl.Create, session, seller)
	r.Post("/plants/image", "plants.image", plantCtl.UploadImage, session, seller)
	r.Delete("/plants/{id}", "plants.delete", plantCtl.Delete, session, seller)
	r.Get("/seller-orders/{email}", "orders.seller", orderCtl.ForSeller, session, seller)
	r.Patch("/orders/{id}", "orders.status", orderCtl.UpdateStatus, session, seller)

	// Admin-gated
	r.Get("/all-users/{email}", "users.all", userCtl.All, session, admin)
	r.Patch("/user/role/{email}", "users.setRole", userCtl.SetRole, session, admin)
	r.Get("/admin-stat", "stats.admin", statsCtl.Admin, session, admin)

	// Dynamic plant route last so /plants/seller wins.
	r.Get("/plants/{id}", "plants.show", plantCtl.Show)
}
