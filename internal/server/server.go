package server

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"doit/internal/config"
	"doit/internal/db"
	"doit/internal/handler"
	"doit/internal/middleware"
	"doit/internal/repository"
	"doit/web"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	// Bring the schema up to date before GORM touches it
	if err := db.Migrate(cfg); err != nil {
		return nil, fmt.Errorf("❌ failed to migrate DB: %w", err)
	}

	// Setup GORM
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	log.Println("✅ Connected to database")

	logger := newLogger(cfg.LogLevel)

	// Setup Gin
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Metrics())

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("doit_session", store))
	r.Use(middleware.SessionAuth([]byte(cfg.SessionSecret)))

	r.SetHTMLTemplate(web.Templates())

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	listRepo := repository.NewListRepository(gormDB, repository.DeletePolicy(cfg.ListDeletePolicy))
	taskRepo := repository.NewTaskRepository(gormDB)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userRepo, cfg.SessionSecret)
	listHandler := handler.NewListHandler(listRepo)
	taskHandler := handler.NewTaskHandler(taskRepo, listRepo)

	// Account routes
	r.GET("/signup", userHandler.SignUpForm)
	r.POST("/signup", userHandler.SignUp)
	r.GET("/login", userHandler.LoginForm)
	r.POST("/login", userHandler.Login)
	r.GET("/logout", userHandler.Logout)

	// List routes
	r.GET("/", listHandler.Index)
	r.GET("/lists/new", listHandler.NewForm)
	r.POST("/lists/new", listHandler.Create)
	r.GET("/lists/:id/edit", listHandler.EditForm)
	r.POST("/lists/:id/edit", listHandler.Edit)
	r.GET("/lists/:id/delete", listHandler.DeleteConfirm)
	r.POST("/lists/:id/delete", listHandler.Delete)

	// Task routes
	r.GET("/lists/:id", taskHandler.Tasks)
	r.GET("/lists/:id/tasks/new", taskHandler.NewForm)
	r.POST("/lists/:id/tasks/new", taskHandler.Create)
	r.GET("/tasks/:id", taskHandler.Detail)
	r.GET("/tasks/:id/edit", taskHandler.EditForm)
	r.POST("/tasks/:id/edit", taskHandler.Edit)
	r.GET("/tasks/:id/delete", taskHandler.DeleteConfirm)
	r.POST("/tasks/:id/delete", taskHandler.Delete)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return &Server{
		Engine: r,
		DB:     gormDB,
		Config: cfg,
	}, nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Printf("🚀 Server running on port %s\n", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	log.Println("✅ Server exited properly")
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
