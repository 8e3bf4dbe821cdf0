// Package router wires the booking API routes and middleware stack.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kargo-booking/internal/http/handlers"
	mw "kargo-booking/internal/http/middleware"
	"kargo-booking/internal/http/middleware/ratelimit"
	"kargo-booking/internal/logx"
)

// Deps carries everything the router mounts.
type Deps struct {
	Base      *handlers.Handlers
	Draft     *handlers.DraftHandler
	Orders    *handlers.OrderHandler
	Address   *handlers.AddressHandler
	RateLimit *ratelimit.Middleware
	Logger    logx.Logger
}

// New constructs a chi-based http.Handler with the full route table.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(mw.Observability(d.Logger))
	if d.RateLimit != nil {
		r.Use(d.RateLimit.Handler())
	}

	r.Get("/ping", d.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(d.Base.HealthcheckHead))
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(mw.Auth(d.Logger))

		r.Route("/order/draft", func(r chi.Router) {
			r.Post("/", d.Draft.Start)
			r.Get("/", d.Draft.Get)
			r.Delete("/", d.Draft.Cancel)

			r.Put("/sender", d.Draft.UpdateSender)
			r.Put("/receiver", d.Draft.UpdateReceiver)
			r.Put("/delivery", d.Draft.UpdateDelivery)

			r.Put("/items", d.Draft.UpdateItems)
			r.Post("/items", d.Draft.AddItem)
			r.Put("/items/{index}", d.Draft.ReplaceItem)
			r.Delete("/items/{index}", d.Draft.RemoveItem)
		})

		r.Post("/order/submit", d.Orders.Submit)
		r.Get("/orders", d.Orders.List)
		r.Get("/orders/{id}", d.Orders.Get)

		r.Get("/addresses/search", d.Address.Search)
	})

	r.NotFound(http.HandlerFunc(d.Base.NotFound))

	return r
}
