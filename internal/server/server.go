package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kaylaburzese/portfolio/internal/analytics"
	"github.com/kaylaburzese/portfolio/internal/config"
	"github.com/kaylaburzese/portfolio/internal/content"
	"github.com/kaylaburzese/portfolio/internal/view"
)

//go:embed templates/*.html
var adminTemplates embed.FS

// Server serves the portfolio page and the operator pages.
type Server struct {
	cfg     *config.Config
	content *content.Portfolio
	stats   *analytics.Store
	admin   *adminAuth
	engine  *gin.Engine
}

// New builds the router. stats may be nil, in which case visitor tracking and
// the admin pages are not registered.
func New(cfg *config.Config, portfolio *content.Portfolio, stats *analytics.Store) (*Server, error) {
	tmpl, err := view.Templates()
	if err != nil {
		return nil, err
	}
	if _, err := tmpl.ParseFS(adminTemplates, "templates/*.html"); err != nil {
		return nil, fmt.Errorf("parsing admin templates: %w", err)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), requestID())
	if stats != nil {
		r.Use(analytics.Middleware(stats))
	}
	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", http.FS(view.StaticFS()))

	s := &Server{
		cfg:     cfg,
		content: portfolio,
		stats:   stats,
		engine:  r,
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Home page route
	r.GET("/", s.handlePage)
	// HTMX theme toggle, also works as a plain form post
	r.POST("/theme", s.handleToggleTheme)
	// Deep links to a single section
	r.GET("/sections/:name", s.handleSection)

	if stats != nil {
		auth, err := newAdminAuth(cfg.Admin)
		if err != nil {
			return nil, err
		}
		s.admin = auth
		s.setupAdminRoutes()
	}

	return s, nil
}

// Router exposes the handler, mostly for tests.
func (s *Server) Router() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Portfolio listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handlePage(c *gin.Context) {
	ctrl := view.NewController(view.DefaultTheme)
	c.HTML(http.StatusOK, view.DocumentTemplate, ctrl.Page(s.content, true))
}

// handleToggleTheme flips the theme carried by the page. HTMX requests get the
// #page fragment back; a plain form post gets the whole document.
func (s *Server) handleToggleTheme(c *gin.Context) {
	ctrl := view.NewController(view.ParseTheme(c.PostForm("theme")))
	ctrl.ToggleTheme()

	if c.GetHeader("HX-Request") == "true" {
		c.HTML(http.StatusOK, view.FragmentTemplate, ctrl.Page(s.content, false))
		return
	}
	c.HTML(http.StatusOK, view.DocumentTemplate, ctrl.Page(s.content, false))
}

// handleSection redirects to a section of the page. Unknown sections answer
// 204 so the browser stays where it is.
func (s *Server) handleSection(c *gin.Context) {
	ctrl := view.NewController(view.DefaultTheme)
	anchor, ok := ctrl.ScrollTarget(c.Param("name"))
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.Redirect(http.StatusFound, "/"+anchor.Href())
}

const requestIDHeader = "X-Request-ID"

// requestID tags every request with an id, reusing one supplied by a proxy.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}
