package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"inventorysync/internal/api/handlers"
	"inventorysync/internal/api/middleware"
	"inventorysync/internal/logger"

	"github.com/gin-gonic/gin"
)

// Store is the catalog read side served by the storefront endpoints.
type Store interface {
	handlers.ProductLister
	handlers.CategoryProductLister
}

type Options struct {
	Env     string
	Host    string
	Port    string
	StoreID int
}

type Server struct {
	options Options
	logger  *logger.Logger
	router  *gin.Engine
	server  *http.Server
}

// New builds the router. cache may be nil.
func New(opts Options, logger *logger.Logger, products Store, categories handlers.CategoryFinder, stock handlers.StockReader, cache handlers.ResponseCache, publisher handlers.EventPublisher) *Server {
	// Set Gin mode
	if opts.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())

	// Initialize handlers
	productHandler := handlers.NewProductHandler(products, stock, cache, logger)
	categoryHandler := handlers.NewCategoryHandler(categories, products, cache, opts.StoreID, logger)
	syncHandler := handlers.NewSyncHandler(publisher, logger)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	})

	// Routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/products", productHandler.List)
		v1.GET("/categories/:id/products", categoryHandler.Products)

		v1.POST("/sync", syncHandler.Trigger)
		v1.POST("/reindex", syncHandler.Reindex)
	}

	return &Server{
		options: opts,
		logger:  logger,
		router:  router,
	}
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.options.Host, s.options.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting server on " + addr)
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	return s.server.Shutdown(ctx)
}

// Router exposes the handler for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}
