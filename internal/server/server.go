package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"gym24/internal/adminsession"
	"gym24/internal/audit"
	"gym24/internal/auth"
	"gym24/internal/booking"
	"gym24/internal/class"
	"gym24/internal/config"
	"gym24/internal/contact"
	"gym24/internal/dashboard"
	"gym24/internal/email"
	"gym24/internal/notification"
	"gym24/internal/realtime"
	"gym24/internal/review"
	"gym24/internal/stream"
	"gym24/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

// Services holds the domain services shared by the HTTP layer and the
// background workers.
type Services struct {
	Authority     *adminsession.Authority
	Classes       class.Service
	Bookings      booking.Service
	Reviews       review.Service
	Users         user.Service
	Notifications notification.Service
	Contacts      contact.Service
	Dashboard     dashboard.Service
}

func NewServices(db *sqlx.DB, cfg *config.Config, broadcaster realtime.Broadcaster, mailer *email.Service) *Services {
	recorder := audit.NewLog(db)

	classRepo := class.NewRepository(db)
	notifications := notification.NewService(notification.NewRepository(db), cfg.NotificationRetention)

	return &Services{
		Authority:     adminsession.NewAuthority(adminsession.NewRepository(db), cfg.AdminSessionTTL),
		Classes:       class.NewService(classRepo, recorder, cfg.OccupancyConcurrency),
		Bookings:      booking.NewService(booking.NewRepository(db), classRepo, mailer, recorder, cfg.StrictBookingCapacity),
		Reviews:       review.NewService(review.NewRepository(db), classRepo, recorder),
		Users:         user.NewService(user.NewRepository(db), recorder, cfg.JWTSecret),
		Notifications: notifications,
		Contacts:      contact.NewService(contact.NewRepository(db), notifications, broadcaster, mailer, recorder),
		Dashboard:     dashboard.NewService(dashboard.NewRepository(db)),
	}
}

type Server struct {
	router *gin.Engine
	http   *http.Server
	config *config.Config
}

// requestContext parents every request context on the returned context and
// cancels it when Shutdown starts, so long-lived SSE streams end instead of
// holding Shutdown until its deadline.
func requestContext(srv *http.Server) {
	base, cancel := context.WithCancel(context.Background())
	srv.BaseContext = func(net.Listener) context.Context { return base }
	srv.RegisterOnShutdown(cancel)
}

func New(cfg *config.Config, svc *Services, hub *realtime.Hub, broadcaster realtime.Broadcaster, db Pinger) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())

	userHandler := user.NewHandler(svc.Users)
	classHandler := class.NewHandler(svc.Classes)
	bookingHandler := booking.NewHandler(svc.Bookings)
	reviewHandler := review.NewHandler(svc.Reviews)
	notificationHandler := notification.NewHandler(svc.Notifications)
	contactHandler := contact.NewHandler(svc.Contacts)
	dashboardHandler := dashboard.NewHandler(svc.Dashboard)
	adminHandler := adminsession.NewHandler(svc.Authority, cfg.AdminCookieSecure)
	streamHandler := stream.NewHandler(hub, broadcaster,
		stream.NewProjector(svc.Classes, svc.Bookings, svc.Notifications, svc.Contacts),
		svc.Contacts,
		stream.Config{PollInterval: cfg.RealtimePollInterval, Heartbeat: cfg.RealtimeHeartbeat})

	authLimit := RateLimitMiddleware(5, 10)

	public := router.Group("/auth")
	public.Use(authLimit)
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
		public.POST("/refresh", userHandler.RefreshToken)
	}

	router.GET("/classes", classHandler.List)
	router.GET("/classes/:id", classHandler.Get)
	router.POST("/notifications/cleanup", notificationHandler.Cleanup)
	router.GET("/realtime/classes", auth.OptionalStreamAuthMiddleware(cfg.JWTSecret), streamHandler.Classes)

	streams := router.Group("/realtime")
	streams.Use(auth.StreamAuthMiddleware(cfg.JWTSecret))
	{
		streams.GET("/dashboard", streamHandler.Dashboard)
		streams.GET("/notifications", streamHandler.Notifications)
		streams.GET("/contact/:id", streamHandler.MemberChat)
	}

	protected := router.Group("/")
	protected.Use(auth.AuthMiddleware(cfg.JWTSecret))
	{
		protected.GET("/me", userHandler.GetMe)
		protected.PUT("/me", userHandler.UpdateMe)
		protected.PUT("/me/avatar", userHandler.SetAvatar)
		protected.DELETE("/me/avatar", userHandler.DeleteAvatar)

		protected.POST("/classes/:id/book", bookingHandler.BookClass)
		protected.DELETE("/classes/:id/book", bookingHandler.CancelByClass)
		protected.DELETE("/bookings/:id", bookingHandler.CancelBooking)
		protected.GET("/bookings", bookingHandler.ListMine)

		protected.POST("/classes/:id/reviews", reviewHandler.Submit)
		protected.GET("/reviews", reviewHandler.ListMine)
		protected.DELETE("/reviews/:id", reviewHandler.DeleteMine)

		protected.POST("/contact/requests", contactHandler.CreateRequest)
		protected.GET("/contact/requests", contactHandler.ListMine)
		protected.GET("/contact/requests/:id/messages", contactHandler.MemberMessages)
		protected.POST("/contact/requests/:id/messages", contactHandler.MemberPostMessage)
		protected.POST("/contact/requests/:id/typing", contactHandler.MemberTyping)

		protected.GET("/notifications", notificationHandler.List)
		protected.POST("/notifications/:id/read", notificationHandler.MarkRead)
		protected.POST("/notifications/read-all", notificationHandler.MarkAllRead)
	}

	router.POST("/admin/login", authLimit, adminHandler.Login)

	cookieAuth := router.Group("/admin")
	if cfg.CSRFKey != "" {
		cookieAuth.Use(CSRFMiddleware([]byte(cfg.CSRFKey), cfg.AdminCookieSecure))
	}
	cookieAuth.POST("/logout", adminHandler.Logout)

	admin := cookieAuth.Group("")
	admin.Use(adminsession.RequireAdmin(svc.Authority))
	{
		admin.GET("/validate", adminHandler.Validate)
		if cfg.CSRFKey != "" {
			admin.GET("/csrf", CSRFToken)
		}
		admin.GET("/dashboard", dashboardHandler.Stats)

		admin.GET("/bookings/list", bookingHandler.AdminList)
		admin.DELETE("/bookings", bookingHandler.AdminDelete)

		admin.GET("/classes", classHandler.List)
		admin.POST("/classes", classHandler.Create)
		admin.PUT("/classes", classHandler.Update)
		admin.DELETE("/classes", classHandler.Delete)

		admin.GET("/users", userHandler.AdminList)
		admin.DELETE("/users", userHandler.AdminDelete)

		admin.GET("/reviews", reviewHandler.AdminList)
		admin.DELETE("/reviews", reviewHandler.AdminDelete)

		admin.GET("/contact/requests", contactHandler.AdminList)
		admin.POST("/contact/requests/:id/accept", contactHandler.Accept)
		admin.POST("/contact/requests/:id/decline", contactHandler.Decline)
		admin.DELETE("/contact/requests/:id", contactHandler.DeleteChat)
		admin.GET("/contact/requests/:id/messages", contactHandler.AdminMessages)
		admin.POST("/contact/requests/:id/messages", contactHandler.AdminPostMessage)
		admin.POST("/contact/requests/:id/typing", contactHandler.AdminTyping)

		admin.GET("/realtime/requests", streamHandler.AdminRequests)
		admin.GET("/realtime/contact/:id", streamHandler.AdminChat)
	}

	router.GET("/health", Health(db))
	router.GET("/metrics", Metrics())

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	requestContext(httpServer)

	return &Server{
		router: router,
		config: cfg,
		http:   httpServer,
	}
}

func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) Start() error {
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
