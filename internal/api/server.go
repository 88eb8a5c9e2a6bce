package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/xportshq/xports-api/docs"
	v1 "github.com/xportshq/xports-api/internal/api/handler/v1"
	"github.com/xportshq/xports-api/internal/api/middleware"
	"github.com/xportshq/xports-api/internal/config"
	"github.com/xportshq/xports-api/internal/domain"
	"github.com/xportshq/xports-api/internal/payment"
	"github.com/xportshq/xports-api/internal/repository"
	"github.com/xportshq/xports-api/internal/repository/dao"
	"github.com/xportshq/xports-api/internal/service"
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

	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	contestRepo := repository.NewContestRepository(dao.NewContestDAO(db))
	submissionRepo := repository.NewSubmissionRepository(dao.NewSubmissionDAO(db))

	userSvc := service.NewUserService(userRepo)
	contestSvc := service.NewContestService(contestRepo, userRepo, submissionRepo)
	submissionSvc := service.NewSubmissionService(submissionRepo)
	paymentSvc := service.NewPaymentService(payment.NewStripeGateway(conf.Stripe), contestRepo, submissionRepo)

	authHandler := v1.NewAuthHandler(conf.API, service.NewAuthService(userRepo))
	userHandler := v1.NewUserHandler(userSvc)
	contestHandler := v1.NewContestHandler(contestSvc, userSvc)
	submissionHandler := v1.NewSubmissionHandler(submissionSvc, contestSvc, userSvc)
	paymentHandler := v1.NewPaymentHandler(paymentSvc, userSvc)

	s.MountHandlers(userSvc, authHandler, userHandler, contestHandler, submissionHandler, paymentHandler)

	return s
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	userSvc middleware.RoleLookup,
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	contestHandler *v1.ContestHandler,
	submissionHandler *v1.SubmissionHandler,
	paymentHandler *v1.PaymentHandler,
) {
	const basePath = "/api/v1"

	verifyJWT := middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT()
	creatorOnly := middleware.RequireRole(userSvc, domain.RoleCreator, domain.RoleAdmin)
	adminOnly := middleware.RequireRole(userSvc, domain.RoleAdmin)

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/signup", authHandler.HandleSignup)
		public.POST("/auth/login", authHandler.HandleLogin)

		public.GET("/contests", contestHandler.HandleListContests)
		public.GET("/contests/winners", contestHandler.HandleListWinners)
		public.GET("/contests/top-performers", contestHandler.HandleTopPerformers)
		public.GET("/contests/:contestID", contestHandler.HandleGetContest)
	}

	users := s.Router.Group(basePath, verifyJWT)
	{
		users.GET("/users/role", userHandler.HandleGetRole)
		users.PATCH("/users/apply-creator", userHandler.HandleApplyForCreator)
	}

	admin := s.Router.Group(basePath, verifyJWT, adminOnly)
	{
		admin.GET("/users", userHandler.HandleListUsers)
		admin.PATCH("/users/:userID/role", userHandler.HandleUpdateRole)
		admin.DELETE("/users/:userID", userHandler.HandleDeleteUser)
		admin.PATCH("/admin/contests/:contestID/status", contestHandler.HandleSetContestStatus)
		admin.DELETE("/admin/contests/:contestID", contestHandler.HandleAdminDeleteContest)
	}

	creators := s.Router.Group(basePath, verifyJWT, creatorOnly)
	{
		creators.POST("/contests", contestHandler.HandleCreateContest)
		creators.GET("/contests/mine", contestHandler.HandleListOwnContests)
		creators.PUT("/contests/:contestID", contestHandler.HandleUpdateContest)
		creators.DELETE("/contests/:contestID", contestHandler.HandleDeleteContest)
		creators.GET("/contests/:contestID/submissions", submissionHandler.HandleListContestSubmissions)
		creators.POST("/contests/:contestID/winner", contestHandler.HandleDeclareWinner)
	}

	participants := s.Router.Group(basePath, verifyJWT)
	{
		participants.POST("/submissions/register-task", submissionHandler.HandleRegisterTask)
		participants.GET("/submissions/check", submissionHandler.HandleCheckRegistration)
		participants.GET("/submissions/participate", submissionHandler.HandleListParticipations)

		participants.POST("/payments/create-checkout-session", paymentHandler.HandleCreateCheckoutSession)
		participants.GET("/payments/session/:sessionID", paymentHandler.HandleGetSession)
		participants.POST("/payments/payment-success", paymentHandler.HandlePaymentSuccess)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Xports API"
	docs.SwaggerInfo.Description = "Contest platform API: creators publish contests, participants pay to enter and submit work."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
