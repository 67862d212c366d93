// Package router wires handlers and middleware onto the echo instance.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/tournament-tickets/internal/handler"
	"github.com/iliyamo/tournament-tickets/internal/middleware"
	"github.com/iliyamo/tournament-tickets/internal/model"
)

// Handlers groups everything the routes dispatch to.
type Handlers struct {
	Health  echo.HandlerFunc
	Public  *handler.PublicHandler
	Pricing *handler.PricingHandler
	Booking *handler.BookingHandler
	Auth    *handler.AuthHandler
	Admin   *handler.AdminHandler
}

// Middlewares are the optional per-route layers.  Cache is only for the
// listing pages (they carry no stock counts); RateLimit guards booking and
// price lookups.
type Middlewares struct {
	Cache     echo.MiddlewareFunc
	RateLimit echo.MiddlewareFunc
}

// RegisterRoutes mounts the public pages, the price API and the booking
// flow.
func RegisterRoutes(e *echo.Echo, h Handlers, mw Middlewares, jwtSecret string) {
	e.GET("/healthz", h.Health)

	e.GET("/", h.Public.Home, mw.Cache)
	e.GET("/matches/", h.Public.ListMatches, mw.Cache)
	e.GET("/search/", h.Public.SearchMatches, mw.Cache)
	e.GET("/match/:id/", h.Public.MatchDetail)

	e.GET("/book/:match_id/", h.Booking.BookingForm)
	// OptionalJWT runs first so user keyed rate limits see the caller
	e.POST("/book/:match_id/", h.Booking.CreateBooking, middleware.OptionalJWT(jwtSecret), mw.RateLimit)
	e.GET("/booking/:id/confirmation/", h.Booking.Confirmation)

	// any method reaches the handler so non-POST gets the JSON 405
	e.Any("/api/ticket-prices/", h.Pricing.TicketPrices, mw.RateLimit)
}

// RegisterAuth mounts /v1/auth and the account endpoints under /v1.
func RegisterAuth(e *echo.Echo, h Handlers, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", h.Auth.Register)
	g.POST("/login", h.Auth.Login)
	g.POST("/refresh", h.Auth.Refresh)
	// a refresh token in the body ends one session; a bearer alone ends all
	g.POST("/logout", h.Auth.Logout, middleware.OptionalJWT(jwtSecret))

	auth := e.Group("/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleCustomer, model.RoleAdmin),
	)
	auth.GET("/me", h.Auth.Me)
	auth.GET("/my-bookings", h.Booking.MyBookings)
	auth.GET("/my-bookings/:id", h.Booking.MyBooking)
}

// RegisterAdmin mounts the back office under /v1/admin.
func RegisterAdmin(e *echo.Echo, h Handlers, jwtSecret string) {
	g := e.Group("/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)
	g.GET("/bookings", h.Admin.ListBookings)
	g.PATCH("/bookings/:id/status", h.Admin.UpdateBookingStatus)
	g.POST("/tickets/:number/check-in", h.Admin.CheckIn)
	g.PATCH("/matches/:id/complete", h.Admin.CompleteMatch)
}
