package http

import (
	"net/http"

	"toolshare-backend/internal/metrics"
	"toolshare-backend/internal/service"
	"toolshare-backend/internal/session"

	"github.com/gorilla/mux"
)

// Dependencies is everything the HTTP surface needs.
type Dependencies struct {
	Auth     service.AuthService
	Tools    service.ToolService
	Bookings service.BookingService
	Reviews  service.ReviewService
	Sessions *session.Manager

	HealthChecks map[string]HealthCheck
	// MetricsPath serves prometheus metrics when non-empty.
	MetricsPath string
}

// NewHandler returns the root handler: the API router plus, when enabled,
// the metrics endpoint outside the session and access-log chain.
func NewHandler(d Dependencies) http.Handler {
	api := NewRouter(d)
	if d.MetricsPath == "" {
		return api
	}

	root := http.NewServeMux()
	root.Handle(d.MetricsPath, metrics.Handler())
	root.Handle("/", api)
	return root
}

func NewRouter(d Dependencies) *mux.Router {
	authH := NewAuthHandler(d.Auth, d.Sessions)
	toolH := NewToolHandler(d.Tools)
	bookingH := NewBookingHandler(d.Bookings)
	reviewH := NewReviewHandler(d.Reviews)
	healthH := NewHealthHandler(d.HealthChecks)

	r := mux.NewRouter()
	r.Use(recoverMiddleware, d.Sessions.Middleware, accessLogMiddleware, requireSessionMiddleware)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.HandleFunc("/signup", authH.Signup).Methods(http.MethodPost)
	r.HandleFunc("/login", authH.Login).Methods(http.MethodPost)
	r.HandleFunc("/logout", authH.Logout).Methods(http.MethodDelete)
	r.HandleFunc("/check_session", authH.CheckSession).Methods(http.MethodGet)
	r.HandleFunc("/healthz", healthH.Healthz).Methods(http.MethodGet)

	r.HandleFunc("/tools", toolH.ListTools).Methods(http.MethodGet)
	r.HandleFunc("/tools", toolH.CreateTool).Methods(http.MethodPost)
	r.HandleFunc("/tools/{id}", toolH.GetTool).Methods(http.MethodGet)
	r.HandleFunc("/tools/{id}", toolH.UpdateTool).Methods(http.MethodPatch)
	r.HandleFunc("/tools/{id}", toolH.DeleteTool).Methods(http.MethodDelete)

	r.HandleFunc("/tools/{tool_id}/reviews", reviewH.ListReviews).Methods(http.MethodGet)
	r.HandleFunc("/tools/{tool_id}/reviews", reviewH.CreateReview).Methods(http.MethodPost)

	r.HandleFunc("/bookings", bookingH.ListMyBookings).Methods(http.MethodGet)
	r.HandleFunc("/bookings", bookingH.CreateBooking).Methods(http.MethodPost)
	r.HandleFunc("/bookings/{id}/approve", bookingH.ApproveBooking).Methods(http.MethodPost)
	r.HandleFunc("/bookings/{id}/reject", bookingH.RejectBooking).Methods(http.MethodPost)
	r.HandleFunc("/bookings/{id}/complete", bookingH.CompleteBooking).Methods(http.MethodPost)

	return r
}
