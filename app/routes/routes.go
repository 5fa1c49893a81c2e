package routes

import (
	"encoding/json"
	"net/http"
	"strings"

	"postboard/app/controllers"
	"postboard/app/middleware"
	"postboard/app/repositories"
	"postboard/app/services"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// Options tune the handler built by NewHandler.
type Options struct {
	Env            string
	AllowedOrigins []string
}

// SetupRoutes registers every endpoint on a new router backed by store.
func SetupRoutes(store repositories.Store, env string) *mux.Router {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(notFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	postController := controllers.NewPostController(services.NewPostService(store))
	commentController := controllers.NewCommentController(services.NewCommentService(store, store))
	statusController := controllers.NewStatusController(store, env)

	router.HandleFunc("/", statusController.Home).Methods("GET")
	router.HandleFunc("/status", statusController.Health).Methods("GET")

	// One subrouter level, so a method mismatch reaches the 405 handler.
	posts := router.PathPrefix("/api/posts").Subrouter()
	posts.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	posts.Use(middleware.ContentTypeJSON)
	posts.HandleFunc("", postController.Index).Methods("GET")
	posts.HandleFunc("", postController.Create).Methods("POST")
	posts.HandleFunc("/{id:[0-9]+}", postController.Show).Methods("GET")
	posts.HandleFunc("/{id:[0-9]+}", postController.Edit).Methods("PUT")
	posts.HandleFunc("/{id:[0-9]+}", postController.Delete).Methods("DELETE")
	posts.HandleFunc("/{id:[0-9]+}/comments", commentController.Index).Methods("GET")
	posts.HandleFunc("/{id:[0-9]+}/comments", commentController.Create).Methods("POST")

	return router
}

// NewHandler wraps the routes of store in the global middleware chain.
// The chain sits outside the router so unmatched requests are logged too.
func NewHandler(store repositories.Store, logger zerolog.Logger, opts Options) http.Handler {
	var handler http.Handler = SetupRoutes(store, opts.Env)
	handler = middleware.Recoverer(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Logger(logger)(handler)
	handler = middleware.CORS(opts.AllowedOrigins)(handler)
	return handler
}

// notFound also answers ids that fail the numeric pattern, which are
// reported like any unknown post.
func notFound(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/posts/") {
		writeMessage(w, http.StatusNotFound, services.MsgPostNotFound)
		return
	}
	writeMessage(w, http.StatusNotFound, "Not found")
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
