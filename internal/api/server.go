package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/sotyapp/backend/docs"
	v1 "github.com/sotyapp/backend/internal/api/handler/v1"
	"github.com/sotyapp/backend/internal/api/middleware"
	"github.com/sotyapp/backend/internal/config"
	"github.com/sotyapp/backend/internal/repository"
	"github.com/sotyapp/backend/internal/repository/dao"
	"github.com/sotyapp/backend/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	studentHandler := s.initStudentHandler(db)
	departmentHandler := s.initDepartmentHandler(db)
	eventHandler := s.initEventHandler(db)
	leaderboardHandler := s.initLeaderboardHandler(db)
	revealHandler := s.initRevealHandler(db)
	s.MountHandlers(authHandler, studentHandler, departmentHandler, eventHandler, leaderboardHandler, revealHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initStudentHandler(db *gorm.DB) *v1.StudentHandler {
	repo := repository.NewStudentRepository(dao.NewStudentDAO(db))
	ledgerRepo := repository.NewLedgerRepository(dao.NewLedgerDAO(db))
	svc := service.NewStudentService(repo, ledgerRepo)
	handler := v1.NewStudentHandler(svc)

	return handler
}

func (s *Server) initDepartmentHandler(db *gorm.DB) *v1.DepartmentHandler {
	repo := repository.NewDepartmentRepository(dao.NewDepartmentDAO(db))
	svc := service.NewDepartmentService(repo)
	handler := v1.NewDepartmentHandler(svc)

	return handler
}

func (s *Server) initEventHandler(db *gorm.DB) *v1.EventHandler {
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	ledgerRepo := repository.NewLedgerRepository(dao.NewLedgerDAO(db))
	studentRepo := repository.NewStudentRepository(dao.NewStudentDAO(db))

	eventSvc := service.NewEventService(eventRepo, ledgerRepo)
	ledgerSvc := service.NewLedgerService(ledgerRepo, studentRepo, eventRepo)
	notificationSvc := service.NewNotificationService(ledgerRepo)
	handler := v1.NewEventHandler(eventSvc, ledgerSvc, notificationSvc)

	return handler
}

func (s *Server) initLeaderboardHandler(db *gorm.DB) *v1.LeaderboardHandler {
	repo := repository.NewStudentRepository(dao.NewStudentDAO(db))
	svc := service.NewLeaderboardService(repo)
	handler := v1.NewLeaderboardHandler(svc)

	return handler
}

func (s *Server) initRevealHandler(db *gorm.DB) *v1.RevealHandler {
	studentRepo := repository.NewStudentRepository(dao.NewStudentDAO(db))
	snapshotRepo := repository.NewSnapshotRepository(dao.NewSnapshotDAO(db))
	leaderboardSvc := service.NewLeaderboardService(studentRepo)
	svc := service.NewRevealService(snapshotRepo, leaderboardSvc, studentRepo)
	handler := v1.NewRevealHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	studentHandler *v1.StudentHandler,
	departmentHandler *v1.DepartmentHandler,
	eventHandler *v1.EventHandler,
	leaderboardHandler *v1.LeaderboardHandler,
	revealHandler *v1.RevealHandler,
) {
	const basePath = "/api/v1"

	verifyJWT := middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT()
	adminOnly := middleware.AdminOnly()

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/register", authHandler.HandleRegister)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	students := s.Router.Group(basePath, verifyJWT)
	{
		students.GET("/students/", studentHandler.HandleListStudents)
		students.GET("/students/:studentID", studentHandler.HandleGetStudent)
		students.GET("/students/:studentID/timeline", studentHandler.HandleGetTimeline)
		students.GET("/students/:studentID/breakdown", studentHandler.HandleGetBreakdown)
		students.GET("/students/:studentID/achievements", studentHandler.HandleGetAchievements)
		students.POST("/students/", adminOnly, studentHandler.HandleCreateStudent)
		students.PUT("/students/:studentID", adminOnly, studentHandler.HandleUpdateStudent)
		students.DELETE("/students/:studentID", adminOnly, studentHandler.HandleDeleteStudent)
	}

	departments := s.Router.Group(basePath, verifyJWT)
	{
		departments.GET("/departments/", departmentHandler.HandleListDepartments)
		departments.GET("/departments/:departmentID", departmentHandler.HandleGetDepartment)
		departments.POST("/departments/", adminOnly, departmentHandler.HandleCreateDepartment)
		departments.PUT("/departments/:departmentID", adminOnly, departmentHandler.HandleUpdateDepartment)
		departments.DELETE("/departments/:departmentID", adminOnly, departmentHandler.HandleDeleteDepartment)
	}

	events := s.Router.Group(basePath, verifyJWT)
	{
		events.GET("/events/", eventHandler.HandleListEvents)
		events.GET("/events/:eventID", eventHandler.HandleGetEvent)
		events.GET("/events/:eventID/participants", eventHandler.HandleGetParticipants)
		events.GET("/events/participated/:studentID", eventHandler.HandleGetParticipatedEvents)
		events.POST("/events/", adminOnly, eventHandler.HandleCreateEvent)
		events.PUT("/events/:eventID", adminOnly, eventHandler.HandleUpdateEvent)
		events.DELETE("/events/:eventID", adminOnly, eventHandler.HandleDeleteEvent)
		events.POST("/events/award_points", adminOnly, eventHandler.HandleAwardPoints)
		events.POST("/events/award_points_bulk", adminOnly, eventHandler.HandleAwardPointsBulk)
		events.DELETE("/events/transactions/:transactionID", adminOnly, eventHandler.HandleDeleteTransaction)
		events.POST("/events/participate", eventHandler.HandleParticipate)
		events.GET("/events/participation_logs", adminOnly, eventHandler.HandleGetParticipationLogs)
		events.GET("/events/notifications/unread_count", adminOnly, eventHandler.HandleGetUnreadCount)
		events.PATCH("/events/notifications/mark_seen", adminOnly, eventHandler.HandleMarkNotificationsSeen)
	}

	leaderboard := s.Router.Group(basePath, verifyJWT)
	{
		leaderboard.GET("/leaderboard/", leaderboardHandler.HandleGetLeaderboard)
		leaderboard.GET("/leaderboard/department/:departmentID", leaderboardHandler.HandleGetDepartmentLeaderboard)
		leaderboard.GET("/leaderboard/class/:year", leaderboardHandler.HandleGetClassLeaderboard)
	}

	// Revealed snapshots are the public outcome; freezing and revealing
	// stay admin-only.
	s.Router.GET(basePath+"/snapshots/", revealHandler.HandleGetRevealedSnapshots)

	reveal := s.Router.Group(basePath, verifyJWT, adminOnly)
	{
		reveal.POST("/snapshots/", revealHandler.HandleTakeSnapshot)
		reveal.POST("/reveal/", revealHandler.HandleReveal)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Student of the Year API"
	docs.SwaggerInfo.Description = "Points ledger, events, leaderboards and the reveal workflow."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
