package router

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/alexnev/accountcore/internal/api/http/handler"
	"github.com/alexnev/accountcore/internal/api/http/middleware"
)

// Options bundles the handlers and middleware the router composes.
type Options struct {
	Account        *handler.Account
	Profile        *handler.Profile
	Reports        *handler.Reports
	Logging        *middleware.Logging
	Authenticate   *middleware.Authenticate
	AllowedOrigins []string
}

// New builds the full HTTP handler: routes, session authentication,
// request logging and CORS.
func New(opts Options) http.Handler {
	r := mux.NewRouter()
	r.MethodNotAllowedHandler = http.HandlerFunc(handler.MethodNotAllowed)

	r.Use(opts.Logging.Handle)
	r.Use(opts.Authenticate.Handle)

	r.HandleFunc("/health", handler.Health).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	account := api.PathPrefix("/account").Subrouter()
	account.HandleFunc("/signup", opts.Account.SignUp).Methods(http.MethodPost)
	account.HandleFunc("/verify-email", opts.Account.VerifyEmail).Methods(http.MethodGet)
	account.HandleFunc("/forgot-password", opts.Account.ForgotPassword).Methods(http.MethodPost)
	account.HandleFunc("/reset-password", opts.Account.ResetPassword).Methods(http.MethodPost)

	profile := api.PathPrefix("/profile").Subrouter()
	profile.Use(opts.Authenticate.RequireAuthenticated)
	profile.HandleFunc("/avatar", opts.Profile.UploadAvatar).Methods(http.MethodPost)
	profile.HandleFunc("/avatar", opts.Profile.DeleteAvatar).Methods(http.MethodDelete)

	// The reports handler runs its own access checks so denials are
	// rate-limited and audited; no RequireAuthenticated here.
	api.HandleFunc("/admin/reports/authorization", opts.Reports.Authorization).Methods(http.MethodGet)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	return c.Handler(r)
}
