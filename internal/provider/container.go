package provider

import (
	"github.com/e11even-central/api/internal/authz"
	"github.com/e11even-central/api/internal/cache"
	"github.com/e11even-central/api/internal/config"
	"github.com/e11even-central/api/internal/logger"
	"github.com/e11even-central/api/internal/models"
	"github.com/e11even-central/api/internal/queue"
	"github.com/e11even-central/api/internal/repository"
	"github.com/e11even-central/api/internal/service"
)

// Container wires repositories and services for the handler layer.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo        repository.AdminRepository
	UserRepo         repository.UserRepository
	UserLoginLogRepo repository.UserLoginLogRepository
	TipRepo          *repository.GormTipRepository
	SessionRepo      *repository.GormPaymentSessionRepository
	CourseRepo       repository.CourseRepository
	EnrollmentRepo   *repository.GormEnrollmentRepository
	ChatRepo         repository.ChatRepository
	ShiftRepo        *repository.GormShiftRepository
	DashboardRepo    repository.DashboardRepository

	// Services
	AuthzService          *authz.Service
	AuthService           *service.AuthService
	CaptchaService        *service.CaptchaService
	UserAuthService       *service.UserAuthService
	UserAdminService      *service.UserAdminService
	AdminAccountService   *service.AdminAccountService
	EmailService          *service.EmailService
	TipService            *service.TipService
	PaymentSessionService *service.PaymentSessionService
	CourseService         *service.CourseService
	ChatService           *service.ChatService
	ScheduleService       *service.ScheduleService
	DashboardService      *service.DashboardService
}

// NewContainer initializes the container.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.UserLoginLogRepo = repository.NewUserLoginLogRepository(db)
	c.TipRepo = repository.NewTipRepository(db)
	c.SessionRepo = repository.NewPaymentSessionRepository(db)
	c.CourseRepo = repository.NewCourseRepository(db)
	c.EnrollmentRepo = repository.NewEnrollmentRepository(db)
	c.ChatRepo = repository.NewChatRepository(db)
	c.ShiftRepo = repository.NewShiftRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo, c.UserLoginLogRepo)
	c.UserAdminService = service.NewUserAdminService(c.Config, c.UserRepo, c.UserLoginLogRepo)
	c.AdminAccountService = service.NewAdminAccountService(c.AdminRepo)
	c.TipService = service.NewTipService(c.TipRepo, c.UserRepo, c.DashboardRepo)
	c.PaymentSessionService = service.NewPaymentSessionService(
		c.SessionRepo,
		c.TipRepo,
		c.QueueClient,
		c.Config.Gratuity.SessionExpireMinutes,
		c.Config.Gratuity.PaymentBaseURL,
	)
	c.CourseService = service.NewCourseService(c.CourseRepo, c.EnrollmentRepo)
	c.ChatService = service.NewChatService(c.ChatRepo, c.UserRepo)
	c.ScheduleService = service.NewScheduleService(c.ShiftRepo, c.UserRepo)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo)
}
