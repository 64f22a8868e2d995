package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/aaravmahajanofficial/storefront/docs"
	"github.com/aaravmahajanofficial/storefront/internal/api/handlers"
	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/cache"
	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/aaravmahajanofficial/storefront/internal/health"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/pricing"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/telemetry"
	"github.com/aaravmahajanofficial/storefront/pkg/sendgrid"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

//	@title						Storefront API
//	@version					1.0
//	@description				Cart, guest session reconciliation and checkout for the storefront.
//	@host						localhost:8080
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the JWT.
func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	tp, err := telemetry.InitTracer(context.Background(), &cfg.Otel)
	if err != nil {
		slog.Error("❌ Error initializing tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			slog.Error("⚠️ Error shutting down tracer provider", slog.String("error", err.Error()))
		}
	}()

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	if cfg.Database.MigrationsPath != "" {
		if err := repos.RunMigrations(cfg.Database.MigrationsPath); err != nil {
			slog.Error("❌ Error running migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer redisClient.Close()

	guestCarts := repository.NewGuestCartRepo(redisClient, cfg.GuestCart.TTL)
	checkoutSessions := repository.NewCheckoutSessionRepo(redisClient, cfg.Checkout)
	rateLimiter := repository.NewRateLimitRepo(redisClient, cfg.RateConfig)
	productCache := cache.NewRedisCache(redisClient, &cfg.Cache)

	var emailService sendgrid.EmailService
	if cfg.SendGrid.Enabled() {
		emailService = sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	} else {
		slog.Warn("SendGrid API key not set, order confirmation emails are disabled")
	}

	jwtKey := []byte(cfg.Security.JWTKey)
	tokenTTL := time.Duration(cfg.Security.JWTExpiryHours) * time.Hour
	policy := pricing.PolicyFromConfig(cfg.Checkout)

	notificationService := service.NewNotificationService(repos.Notifications, emailService)
	cartService := service.NewCartService(repos.Carts, guestCarts, policy)
	cartHandler := handlers.NewCartHandler(cartService)
	checkoutService := service.NewCheckoutService(service.CheckoutDeps{
		Carts:    repos.Carts,
		Guests:   guestCarts,
		Sessions: checkoutSessions,
		Orders:   repos.Orders,
		Profiles: repos.Profiles,
		Notifier: notificationService,
		Policy:   policy,
	})
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	userService := service.NewUserService(repos.Profiles, rateLimiter, jwtKey, tokenTTL)
	userHandler := handlers.NewUserHandler(userService, cartService)
	productService := service.NewProductService(repos.Products, productCache)
	productHandler := handlers.NewProductHandler(productService)
	orderService := service.NewOrderService(repos.Orders)
	orderHandler := handlers.NewOrderHandler(orderService)
	authMiddleware := middleware.NewAuthMiddleware(jwtKey)
	guestSession := middleware.NewGuestSession(cfg.GuestCart.CookieName, cfg.GuestCart.TTL, cfg.Env == "production")

	healthHandler, err := health.NewHealthHandler(&health.Endpoints{DB: repos.DB, RedisClient: redisClient})
	if err != nil {
		slog.Error("❌ Error creating health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /api/v1/auth/register", userHandler.Register())
	routerMux.HandleFunc("POST /api/v1/auth/login", userHandler.Login())
	routerMux.HandleFunc("GET /api/v1/auth/profile", authMiddleware.Authenticate(userHandler.Profile()))
	routerMux.HandleFunc("PUT /api/v1/auth/profile", authMiddleware.Authenticate(userHandler.UpdateProfile()))
	routerMux.HandleFunc("GET /api/v1/products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/{id}", productHandler.GetProduct())
	routerMux.HandleFunc("GET /api/v1/products/slug/{slug}", productHandler.GetProductBySlug())
	routerMux.HandleFunc("GET /api/v1/categories/{slug}/products", productHandler.ListCategoryProducts())
	routerMux.HandleFunc("GET /api/v1/cart", authMiddleware.Identify(cartHandler.GetCart()))
	routerMux.HandleFunc("DELETE /api/v1/cart", authMiddleware.Identify(cartHandler.ClearCart()))
	routerMux.HandleFunc("POST /api/v1/cart/items", authMiddleware.Identify(cartHandler.AddItem()))
	routerMux.HandleFunc("PUT /api/v1/cart/items/{productId}", authMiddleware.Identify(cartHandler.UpdateQuantity()))
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{productId}", authMiddleware.Identify(cartHandler.RemoveItem()))
	routerMux.HandleFunc("POST /api/v1/cart/toggle", authMiddleware.Identify(cartHandler.ToggleCart()))
	routerMux.HandleFunc("POST /api/v1/cart/merge", authMiddleware.Authenticate(cartHandler.MergeGuestCart()))
	routerMux.HandleFunc("GET /api/v1/cart/summary", authMiddleware.Identify(cartHandler.Summary()))
	routerMux.HandleFunc("GET /api/v1/checkout", authMiddleware.Identify(checkoutHandler.GetState()))
	routerMux.HandleFunc("PUT /api/v1/checkout/shipping", authMiddleware.Identify(checkoutHandler.UpdateShipping()))
	routerMux.HandleFunc("POST /api/v1/checkout/advance", authMiddleware.Identify(checkoutHandler.Advance()))
	routerMux.HandleFunc("POST /api/v1/checkout/retreat", authMiddleware.Identify(checkoutHandler.Retreat()))
	routerMux.HandleFunc("GET /api/v1/orders", authMiddleware.Authenticate(orderHandler.ListOrders()))
	routerMux.HandleFunc("GET /api/v1/orders/{id}", authMiddleware.Authenticate(orderHandler.GetOrder()))
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = guestSession.Handler(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, "storefront")

	// Setup http server
	server := http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("❌ Failed to start server", slog.String("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

}
