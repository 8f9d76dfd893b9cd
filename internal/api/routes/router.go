package routes

import (
	"net/http"

	"github.com/advocacy-resources/advo-sub001/internal/api/handlers"
	"github.com/advocacy-resources/advo-sub001/internal/api/middleware"
	"github.com/advocacy-resources/advo-sub001/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	resourceHandler       *handlers.ResourceHandler
	engagementHandler     *handlers.EngagementHandler
	reviewHandler         *handlers.ReviewHandler
	recommendationHandler *handlers.RecommendationHandler
	adminHandler          *handlers.AdminHandler
	authHandler           *handlers.AuthHandler

	sessionMiddleware func(http.Handler) http.Handler
	cacheMiddleware   *middleware.CacheMiddleware
	allowedOrigins    []string
	metrics           *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	resourceHandler *handlers.ResourceHandler,
	engagementHandler *handlers.EngagementHandler,
	reviewHandler *handlers.ReviewHandler,
	recommendationHandler *handlers.RecommendationHandler,
	adminHandler *handlers.AdminHandler,
	authHandler *handlers.AuthHandler,
	sessionMiddleware func(http.Handler) http.Handler,
	cacheMiddleware *middleware.CacheMiddleware,
	allowedOrigins []string,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:                   http.NewServeMux(),
		resourceHandler:       resourceHandler,
		engagementHandler:     engagementHandler,
		reviewHandler:         reviewHandler,
		recommendationHandler: recommendationHandler,
		adminHandler:          adminHandler,
		authHandler:           authHandler,
		sessionMiddleware:     sessionMiddleware,
		cacheMiddleware:       cacheMiddleware,
		allowedOrigins:        allowedOrigins,
		metrics:               metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Resource endpoints
	r.mux.HandleFunc("POST /api/resources/search", r.resourceHandler.SearchResources)
	r.mux.HandleFunc("POST /api/resources", r.resourceHandler.CreateResource)
	r.mux.HandleFunc("GET /api/resources/{id}", r.resourceHandler.GetResource)
	r.mux.HandleFunc("PUT /api/resources/{id}", r.resourceHandler.UpdateResource)
	r.mux.HandleFunc("PATCH /api/resources/{id}", r.resourceHandler.UpdateManagedResource)
	r.mux.HandleFunc("DELETE /api/resources/{id}", r.resourceHandler.DeleteResource)

	// Engagement endpoints
	r.mux.HandleFunc("POST /api/resources/{id}/rating", r.engagementHandler.SubmitRating)
	r.mux.HandleFunc("GET /api/resources/{id}/rating", r.engagementHandler.GetRating)
	r.mux.HandleFunc("POST /api/resources/{id}/favorite", r.engagementHandler.ToggleFavorite)
	r.mux.HandleFunc("GET /api/resources/{id}/favorite", r.engagementHandler.GetFavorite)
	r.mux.HandleFunc("GET /api/users/me/favorites", r.engagementHandler.ListFavorites)

	// Review endpoints
	r.mux.HandleFunc("POST /api/resources/{id}/reviews", r.reviewHandler.CreateReview)
	r.mux.HandleFunc("GET /api/resources/{id}/reviews", r.reviewHandler.ListReviews)
	r.mux.HandleFunc("PUT /api/reviews/{id}", r.reviewHandler.UpdateReview)
	r.mux.HandleFunc("DELETE /api/reviews/{id}", r.reviewHandler.DeleteReview)

	// Recommendation endpoints
	r.mux.HandleFunc("POST /api/recommendations", r.recommendationHandler.SubmitRecommendation)
	r.mux.HandleFunc("PATCH /api/recommendations/{id}/status", r.recommendationHandler.ResolveRecommendation)
	r.mux.HandleFunc("GET /api/admin/recommendations", r.recommendationHandler.ListRecommendations)

	// Admin endpoints
	r.mux.HandleFunc("POST /api/admin/geocode-zipcodes", r.adminHandler.BatchGeocode)
	r.mux.HandleFunc("GET /api/admin/analytics", r.adminHandler.GetAnalytics)
	r.mux.HandleFunc("GET /api/admin/users", r.adminHandler.ListUsers)
	r.mux.HandleFunc("GET /api/admin/users/{id}", r.adminHandler.GetUser)
	r.mux.HandleFunc("PATCH /api/admin/users/{id}/role", r.adminHandler.SetUserRole)
	r.mux.HandleFunc("PATCH /api/admin/users/{id}/active", r.adminHandler.SetUserActive)

	// Auth endpoints
	r.mux.HandleFunc("POST /api/auth/register", r.authHandler.Register)
	r.mux.HandleFunc("POST /api/auth/login", r.authHandler.Login)
	r.mux.HandleFunc("POST /api/auth/logout", r.authHandler.Logout)
	r.mux.HandleFunc("GET /api/auth/me", r.authHandler.Me)
	r.mux.HandleFunc("PATCH /api/auth/me", r.authHandler.UpdateProfile)
	r.mux.HandleFunc("POST /api/auth/password/request", r.authHandler.RequestPasswordChange)
	r.mux.HandleFunc("POST /api/auth/password/change", r.authHandler.ChangePassword)

	// Apply middleware in reverse order (last middleware wraps first).
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	// Session resolution sits outside caching so per-user routes see the
	// principal before any cache decision.
	if r.sessionMiddleware != nil {
		handler = r.sessionMiddleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// CORS wraps everything so headers are set even on cache HITs.
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}
