// Package main is the entry point for the ginviews-demo application.
// It serves a small blog backed by the generic views: paginated post
// lists, detail pages, model forms for creating, updating and deleting
// posts, plus a contact form and a JSON endpoint.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/genericviews/gin-generic-views/config"
	"github.com/genericviews/gin-generic-views/gormviews"
	"github.com/genericviews/gin-generic-views/logger"
	"github.com/genericviews/gin-generic-views/views"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "ginviews-demo",
		Short: "Demo blog built on generic views",
		Long: `ginviews-demo serves a small blog application assembled entirely from
generic views: a paginated post list, post detail pages, model forms for
creating, updating and deleting posts, a contact form and a JSON endpoint.`,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the demo server",
		RunE: func(_ *cobra.Command, _ []string) error {
			return serve(configPath)
		},
	}
	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/demo.yaml", "path to the config file")
	rootCmd.AddCommand(serveCmd)

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}
	return nil
}

func serve(configPath string) error {
	// Parse configuration
	if env := os.Getenv("CONFIG_PATH"); env != "" {
		configPath = env
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	// Initialize logger
	if err := logger.InitLogger(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}
	views.SetLogger(log)

	// Initialize database
	db, err := gormviews.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to create db connection: %w", err)
	}
	defer func() {
		if err := gormviews.Close(db); err != nil {
			log.Error("failed to close database", "error", err.Error())
		}
	}()

	if err := db.AutoMigrate(&Post{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	log.Info("database migrations completed")

	if err := seedPosts(db); err != nil {
		return fmt.Errorf("failed to seed posts: %w", err)
	}

	r, err := setupRouter(cfg, db)
	if err != nil {
		return fmt.Errorf("failed to set up router: %w", err)
	}

	return startServerWithGracefulShutdown(cfg, r, log)
}

// setupRouter wires every view of the demo into a gin engine.
func setupRouter(cfg *config.AppConfig, db *gorm.DB) (*gin.Engine, error) {
	r := gin.Default()

	allowedOrigins := cfg.Server.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:  allowedOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length", "Content-Type"},
		MaxAge:        12 * time.Hour,
	}))

	r.LoadHTMLGlob(cfg.Server.TemplateGlob)

	// Route names the redirect views resolve against.
	views.Routes.MustRegister("home", "/")
	views.Routes.MustRegister("post_list", "/posts")
	views.Routes.MustRegister("post_detail", "/posts/by-id/:pk")

	home := views.TemplateView{TemplateName: "index.html"}
	r.GET("/", views.Must(home.Handler()))

	about := views.TemplateView{
		TemplateName: "about.html",
		ContextFunc: func(_ *gin.Context, ctx views.Context) error {
			ctx["authors"] = []string{"John Smith", "Jane Doe"}
			return nil
		},
	}
	r.GET("/about", views.Must(about.Handler()))

	list := gormviews.ListView[Post]{
		DB:      db,
		OrderBy: []string{"created_at desc"},
		PerPage: 5,
	}
	r.GET("/posts", views.Must(list.Handler()))
	r.GET("/posts/page/:page", views.Must(list.Handler()))

	detail := gormviews.DetailView[Post]{Lookup: gormviews.Lookup[Post]{DB: db}}
	r.GET("/posts/by-id/:pk", views.Must(detail.Handler()))

	bySlug := gormviews.DetailView[Post]{Lookup: gormviews.Lookup[Post]{DB: db}}
	r.GET("/posts/:slug", views.Must(bySlug.Handler()))

	create := gormviews.CreateView[Post]{
		DB:         db,
		SuccessURL: "/posts/{Slug}",
	}
	r.GET("/write", views.Must(create.Handler()))
	r.POST("/write", views.Must(create.Handler()))

	update := gormviews.UpdateView[Post]{
		Lookup:     gormviews.Lookup[Post]{DB: db},
		SuccessURL: "/posts/{Slug}",
	}
	r.GET("/posts/by-id/:pk/edit", views.Must(update.Handler()))
	r.POST("/posts/by-id/:pk/edit", views.Must(update.Handler()))

	remove := gormviews.DeleteView[Post]{
		Lookup:     gormviews.Lookup[Post]{DB: db},
		SuccessURL: "/posts",
	}
	r.GET("/posts/by-id/:pk/delete", views.Must(remove.Handler()))
	r.POST("/posts/by-id/:pk/delete", views.Must(remove.Handler()))
	r.DELETE("/posts/by-id/:pk/delete", views.Must(remove.Handler()))

	contact := views.FormView[ContactForm]{
		TemplateName: "contact_form.html",
		SuccessURL:   "/",
		OnValid: func(_ *gin.Context, form *ContactForm) error {
			log, err := logger.GetLogger()
			if err != nil {
				return err
			}
			log.Info("contact message received", "email", form.Email)
			return nil
		},
	}
	r.GET("/contact", views.Must(contact.Handler()))
	r.POST("/contact", views.Must(contact.Handler()))

	// The old list location redirects to the registered route.
	archive := views.RedirectView{Endpoint: "post_list", Permanent: true, QueryString: true}
	r.GET("/archive", archive.Handler())

	ping := views.JSONView{ContextFunc: func(_ *gin.Context, ctx views.Context) error {
		ctx["status"] = "ok"
		return nil
	}}
	r.GET("/api/ping", ping.Handler())

	apiPosts := views.JSONView{ContextFunc: func(c *gin.Context, ctx views.Context) error {
		var posts []Post
		if err := db.WithContext(c.Request.Context()).Order("created_at desc").Find(&posts).Error; err != nil {
			return err
		}
		ctx["posts"] = posts
		return nil
	}}
	r.GET("/api/posts", apiPosts.Handler())

	return r, nil
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.AppConfig, r *gin.Engine, log logger.Logger) error {
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attack
	}

	serverErrors := make(chan error, 1)

	go func() {
		log.Info("starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		log.Info("received signal, shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("server stopped")
	return nil
}

// seedPosts fills an empty database with a couple of sample posts.
func seedPosts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&Post{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	samples := []Post{
		{Title: "Hello, world", Slug: "hello-world", Body: "The first post, served by a list view and a detail view."},
		{Title: "Generic views", Slug: "generic-views", Body: "Create, update and delete run through model form views."},
		{Title: "Pagination", Slug: "pagination", Body: "Add more posts and the list view starts paginating."},
	}
	return db.Create(&samples).Error
}

// Post is the blog post model the demo views operate on.
type Post struct {
	ID        string    `gorm:"primaryKey" form:"-"`
	Title     string    `form:"title" binding:"required"`
	Slug      string    `gorm:"uniqueIndex" form:"slug" binding:"required"`
	Body      string    `form:"body"`
	CreatedAt time.Time `form:"-"`
	UpdatedAt time.Time `form:"-"`
}

// BeforeCreate assigns a fresh id when none is set.
func (p *Post) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// ContactForm backs the demo contact page.
type ContactForm struct {
	Email   string `form:"email" binding:"required,email"`
	Message string `form:"message" binding:"required"`
}
