package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"mealplan/internal/handler"
	"mealplan/internal/middleware"
	"mealplan/internal/store"
	ws "mealplan/internal/websocket"
)

// Config controls the request-layer policy knobs.
type Config struct {
	// AllowedOrigins lists the origins permitted to make credentialed
	// cross-origin requests. Empty means any origin (development).
	AllowedOrigins []string
	// StrictAuth rejects anonymous requests to owner-scoped routes with a
	// 401 envelope instead of serving them an empty owner scope. The legacy
	// behavior (empty scope) is the default.
	StrictAuth bool
}

type Server struct {
	db           *sql.DB
	hub          *ws.Hub
	cookbookH    *handler.CookbookHandler
	recipeH      *handler.RecipeHandler
	ingredientH  *handler.IngredientHandler
	authH        *handler.AuthHandler
	sessionStore *store.SessionStore
	rateLimiter  *middleware.RateLimiter
	cfg          Config
	logger       *slog.Logger
}

func New(db *sql.DB, cfg Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	cookbookStore := store.NewCookbookStore(db)
	recipeStore := store.NewRecipeStore(db)
	ingredientStore := store.NewIngredientStore(db)
	userStore := store.NewUserStore(db)
	sessionStore := store.NewSessionStore(db)

	return &Server{
		db:           db,
		hub:          hub,
		cookbookH:    handler.NewCookbookHandler(cookbookStore, recipeStore, hub, logger.With("component", "cookbook")),
		recipeH:      handler.NewRecipeHandler(recipeStore, ingredientStore, hub, logger.With("component", "recipe")),
		ingredientH:  handler.NewIngredientHandler(ingredientStore, hub, logger.With("component", "ingredient")),
		authH:        handler.NewAuthHandler(userStore, sessionStore, logger.With("component", "auth")),
		sessionStore: sessionStore,
		rateLimiter:  middleware.NewRateLimiter(),
		cfg:          cfg,
		logger:       logger,
	}
}

// SessionStore returns the session store for cleanup tasks.
func (s *Server) SessionStore() *store.SessionStore {
	return s.sessionStore
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Account routes (never owner-scoped)
	outerMux.HandleFunc("PUT /add_user", s.rateLimitedHandler(s.authH.Register))
	outerMux.HandleFunc("POST /login", s.rateLimitedHandler(s.authH.Login))
	outerMux.HandleFunc("POST /logout", s.authH.Logout)
	outerMux.HandleFunc("DELETE /delete_user", s.authH.DeleteUser)
	outerMux.HandleFunc("GET /health", s.healthHandler)

	// Owner-scoped routes
	dataMux := http.NewServeMux()
	s.registerDataRoutes(dataMux)

	var dataHandler http.Handler = dataMux
	if s.cfg.StrictAuth {
		dataHandler = middleware.RequireUser(dataMux)
	}
	outerMux.Handle("/", dataHandler)

	h := middleware.ResolveSession(s.sessionStore)(outerMux)
	h = middleware.CORS(s.cfg.AllowedOrigins)(h)
	return middleware.RequestLogger(s.logger.With("component", "http"))(h)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) registerDataRoutes(mux *http.ServeMux) {
	// Cookbook routes
	mux.HandleFunc("GET /cookbook_names", s.cookbookH.ListNames)
	mux.HandleFunc("GET /cookbook_info/{name}", s.cookbookH.Info)
	mux.HandleFunc("PUT /add_cookbook", s.cookbookH.Add)
	mux.HandleFunc("DELETE /delete_cookbook/{name}", s.cookbookH.Delete)

	// Recipe routes
	mux.HandleFunc("GET /all_recipe_names", s.recipeH.ListAll)
	mux.HandleFunc("GET /recipe_names/{cookbook}", s.recipeH.ListByCookbook)
	mux.HandleFunc("GET /recipe_info/{name}", s.recipeH.Info)
	mux.HandleFunc("GET /check_recipe/{name}", s.recipeH.Check)
	mux.HandleFunc("PUT /add_recipe", s.recipeH.Add)
	mux.HandleFunc("DELETE /delete_recipe/{name}", s.recipeH.Delete)
	mux.HandleFunc("PUT /add_ingredient_recipe_pairing", s.recipeH.AddPairing)

	// Ingredient routes
	mux.HandleFunc("PUT /add_ingredient", s.ingredientH.Add)
	mux.HandleFunc("DELETE /delete_ingredient/{name}", s.ingredientH.Delete)

	// Live updates for browser clients
	mux.HandleFunc("GET /ws", ws.Handle(s.hub, s.logger.With("component", "websocket")))
}
