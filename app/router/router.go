package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"board-customizer/app/controller"
	"board-customizer/logging"
	"board-customizer/service"
)

// Controllers groups the HTTP handlers; Texture and Sync are optional
type Controllers struct {
	Customizer *controller.CustomizerController
	Session    *controller.SessionController
	Texture    *controller.TextureController
	Sync       *controller.SyncController
}

// Options configures the router
type Options struct {
	StaticDir       string
	AllowAllOrigins bool
	RequestTimeout  time.Duration
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// SetupRoutes builds the application router
func SetupRoutes(controllers *Controllers, opts Options) http.Handler {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 60 * time.Second
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger)
	r.Use(middleware.Recoverer)

	// JSON API
	r.Route("/api", func(r chi.Router) {
		corsOpts := cors.Options{
			AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}
		if opts.AllowAllOrigins {
			corsOpts.AllowedOrigins = []string{"*"}
		}
		r.Use(cors.Handler(corsOpts))

		// Session socket lives outside the request timeout
		r.Get("/sessions/{id}/ws", controllers.Session.Stream)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(opts.RequestTimeout))

			r.Get("/customizer", controllers.Customizer.GetCustomizer)
			r.Get("/sessions/{id}", controllers.Session.GetSession)
			r.Put("/sessions/{id}/selection/{category}", controllers.Session.SelectOption)
			r.Post("/sessions/{id}/camera/start", controllers.Session.StartCamera)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(opts.RequestTimeout))

		// Ping endpoint
		r.Get("/ping", pingHandler)

		// Customizer page
		r.Get("/", controllers.Customizer.Index)
		r.Get(controller.BuildPath, controllers.Customizer.BuildPage)
		r.Get(controller.SnapshotPath, controllers.Customizer.Snapshot)

		// Texture proxy
		if controllers.Texture != nil {
			r.Get(service.TexturePath, controllers.Texture.GetTexture)
		}

		// Admin
		if controllers.Sync != nil {
			r.Post("/admin/customizer/sync", controllers.Sync.Sync)
		}

		// Static assets
		if opts.StaticDir != "" {
			files := http.FileServer(http.Dir(opts.StaticDir))
			r.Handle("/static/*", http.StripPrefix("/static", files))
			r.Handle("/skateboard/*", files)
			r.Handle("/hdr/*", files)
			r.Handle("/concrete-normal.avif", files)
		}
	})

	return r
}
