package v1

import (
	"net/http"

	"github.com/bookverse/bookverse/config"
	"github.com/bookverse/bookverse/middleware"
	"github.com/bookverse/bookverse/ratelimit"
	"github.com/bookverse/bookverse/store"
	"github.com/bookverse/bookverse/worker"
	"github.com/gorilla/mux"
)

type Handler struct {
	store       *store.Store
	pool        worker.WorkPool
	secret      string
	createLimit *ratelimit.KeyedRateLimiter
	mutateLimit *ratelimit.KeyedRateLimiter
	roleLimit   *ratelimit.KeyedRateLimiter
}

// NewHandler is a constructor for the v1.Handler
func NewHandler(store *store.Store, pool worker.WorkPool) *Handler {
	return &Handler{
		store:       store,
		pool:        pool,
		secret:      config.Opts.JWTSecret,
		createLimit: ratelimit.PerMinute(config.Opts.ReviewCreateLimit),
		mutateLimit: ratelimit.PerMinute(config.Opts.ReviewMutateLimit),
		roleLimit:   ratelimit.PerMinute(config.Opts.PromoteLimit),
	}
}

func Server(router *mux.Router, handler *Handler) {
	sr := router.PathPrefix("/api/v1").Subrouter()
	middleware := middleware.NewMiddleware(handler.store)
	sr.Use(middleware.HandleCORS)
	sr.Use(middleware.LoggingRequest)
	sr.Use(NewAuthInterceptor(handler.store, handler.secret).AuthenticationInterceptor)
	sr.Methods(http.MethodOptions)

	sr.HandleFunc("/signup", handler.signUp).Methods(http.MethodPost)
	sr.HandleFunc("/signin", handler.signIn).Methods(http.MethodPost)
	sr.HandleFunc("/password-reset/request", handler.requestPasswordReset).Methods(http.MethodPost)
	sr.HandleFunc("/password-reset/confirm", handler.confirmPasswordReset).Methods(http.MethodPost)

	sr.HandleFunc("/me", handler.getMe).Methods(http.MethodGet)
	sr.HandleFunc("/me", handler.updateMe).Methods(http.MethodPut)
	sr.HandleFunc("/me/dashboard", handler.getDashboard).Methods(http.MethodGet)

	sr.HandleFunc("/users", handler.listUsers).Methods(http.MethodGet)
	sr.HandleFunc("/users/promote", handler.promoteUser).Methods(http.MethodPost)
	sr.HandleFunc("/users/demote", handler.demoteUser).Methods(http.MethodPost)

	sr.HandleFunc("/books", handler.listBooks).Methods(http.MethodGet)
	sr.HandleFunc("/books", handler.createBook).Methods(http.MethodPost)
	sr.HandleFunc("/books/community", handler.createCommunityBook).Methods(http.MethodPost)
	sr.HandleFunc("/books/wishlist", handler.listWishlist).Methods(http.MethodGet)
	sr.HandleFunc("/books/reading", handler.listReading).Methods(http.MethodGet)
	sr.HandleFunc("/books/{id:[0-9]+}", handler.getBook).Methods(http.MethodGet)
	sr.HandleFunc("/books/{id:[0-9]+}", handler.updateBook).Methods(http.MethodPut)
	sr.HandleFunc("/books/{id:[0-9]+}", handler.deleteBook).Methods(http.MethodDelete)
	sr.HandleFunc("/books/{id:[0-9]+}/reviews", handler.listBookReviews).Methods(http.MethodGet)
	sr.HandleFunc("/books/{id:[0-9]+}/reviews", handler.createReview).Methods(http.MethodPost)
	sr.HandleFunc("/books/{id:[0-9]+}/wishlist", handler.addToWishlist).Methods(http.MethodPost)
	sr.HandleFunc("/books/{id:[0-9]+}/wishlist", handler.removeFromWishlist).Methods(http.MethodDelete)
	sr.HandleFunc("/books/{id:[0-9]+}/reading-status", handler.setReadingStatus).Methods(http.MethodPut)

	sr.HandleFunc("/reviews/recent", handler.listRecentReviews).Methods(http.MethodGet)
	sr.HandleFunc("/reviews/{id:[0-9]+}", handler.updateReview).Methods(http.MethodPut)
	sr.HandleFunc("/reviews/{id:[0-9]+}", handler.deleteReview).Methods(http.MethodDelete)
}
