package handle

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// InitializeRoutes registers the health checks and the naming endpoints.
func InitializeRoutes(Router *mux.Router) {
	Router.Use(handlers.RecoveryHandler())
	Router.Handle("/", health()).Methods(http.MethodGet)
	Router.Handle("/health_check", health()).Methods(http.MethodGet)

	Router.Handle("/api/variables", variables()).Methods(http.MethodPost)
	Router.Handle("/api/format", format()).Methods(http.MethodPost)
}
