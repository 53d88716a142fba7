package router

import (
	"fmt"
	"strings"

	"github.com/e11even-central/api/internal/cache"
	"github.com/e11even-central/api/internal/config"
	"github.com/e11even-central/api/internal/logger"
	"github.com/e11even-central/api/internal/provider"

	"github.com/gin-gonic/gin"

	adminhandlers "github.com/e11even-central/api/internal/http/handlers/admin"
	publichandlers "github.com/e11even-central/api/internal/http/handlers/public"
)

// SetupRouter builds the HTTP engine with the full route tree.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "e11"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", publicHandler.Register)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.Login)
		}

		// Staff routes.
		staff := api.Group("")
		staff.Use(UserJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			staff.GET("/me", publicHandler.Me)
			staff.PUT("/me/profile", publicHandler.UpdateMe)
			staff.PUT("/me/password", publicHandler.ChangePassword)
			staff.GET("/me/login-logs", publicHandler.MyLoginLogs)

			staff.POST("/gratuity/tips", publicHandler.CreateTip)
			staff.GET("/gratuity/tips", publicHandler.ListMyTips)
			staff.GET("/gratuity/tips/:id", publicHandler.GetTip)
			staff.PUT("/gratuity/tips/:id", publicHandler.UpdateTip)
			staff.DELETE("/gratuity/tips/:id", publicHandler.DeleteTip)
			staff.GET("/gratuity/stats", publicHandler.MyTipStats)
			staff.POST("/gratuity/payment-session", publicHandler.CreateSession)
			staff.GET("/gratuity/payment-session/:sessionId", publicHandler.GetSession)
			staff.POST("/gratuity/payment-session/:sessionId/complete", publicHandler.CompleteSession)
			staff.POST("/gratuity/payment-session/:sessionId/cancel", publicHandler.CancelSession)

			staff.GET("/university/courses", publicHandler.ListCourses)
			staff.GET("/university/courses/:slug", publicHandler.GetCourse)
			staff.POST("/university/courses/:id/enroll", publicHandler.EnrollCourse)
			staff.GET("/university/enrollments", publicHandler.MyEnrollments)
			staff.POST("/university/lessons/:id/complete", publicHandler.CompleteLesson)

			staff.GET("/chat/channels", publicHandler.ListChannels)
			staff.POST("/chat/channels/:id/join", publicHandler.JoinChannel)
			staff.GET("/chat/channels/:id/messages", publicHandler.ListMessages)
			staff.POST("/chat/channels/:id/messages", publicHandler.PostMessage)
			staff.POST("/chat/channels/:id/read", publicHandler.MarkChannelRead)

			staff.GET("/schedule/shifts", publicHandler.ListShifts)
			staff.GET("/schedule/my", publicHandler.MyAssignments)
			staff.POST("/schedule/assignments/:id/confirm", publicHandler.ConfirmAssignment)
			staff.POST("/schedule/assignments/:id/decline", publicHandler.DeclineAssignment)
		}

		// Console routes.
		admin := api.Group("/admin")
		{
			admin.GET("/captcha", adminHandler.Captcha)
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIP), adminHandler.Login)

			authorized := admin.Use(
				AdminJWTAuthMiddleware(cfg.AdminJWT.SecretKey, c.AdminRepo),
				AdminRBACMiddleware(c.AuthzService),
			)
			{
				authorized.GET("/me", adminHandler.Me)
				authorized.PUT("/password", adminHandler.ChangePassword)

				authorized.GET("/dashboard/overview", adminHandler.DashboardOverview)
				authorized.GET("/dashboard/trends", adminHandler.DashboardTipTrends)

				authorized.GET("/users", adminHandler.ListStaff)
				authorized.POST("/users", adminHandler.CreateStaff)
				authorized.PUT("/users/batch-status", adminHandler.BatchStaffStatus)
				authorized.GET("/users/:id", adminHandler.GetStaff)
				authorized.PUT("/users/:id", adminHandler.UpdateStaff)
				authorized.POST("/users/:id/reset-password", adminHandler.ResetStaffPassword)
				authorized.GET("/user-login-logs", adminHandler.ListLoginLogs)

				authorized.GET("/gratuity/tips", adminHandler.ListTips)
				authorized.GET("/gratuity/payment-sessions", adminHandler.ListPaymentSessions)
				authorized.POST("/gratuity/payment-sessions/sweep", adminHandler.SweepPaymentSessions)

				authorized.GET("/university/courses", adminHandler.ListCourses)
				authorized.POST("/university/courses", adminHandler.CreateCourse)
				authorized.PUT("/university/courses/:id", adminHandler.UpdateCourse)
				authorized.DELETE("/university/courses/:id", adminHandler.DeleteCourse)
				authorized.POST("/university/courses/:id/lessons", adminHandler.CreateLesson)
				authorized.PUT("/university/lessons/:id", adminHandler.UpdateLesson)
				authorized.DELETE("/university/lessons/:id", adminHandler.DeleteLesson)

				authorized.GET("/chat/channels", adminHandler.ListChannels)
				authorized.POST("/chat/channels", adminHandler.CreateChannel)
				authorized.PUT("/chat/channels/:id", adminHandler.UpdateChannel)
				authorized.POST("/chat/channels/:id/archive", adminHandler.ArchiveChannel)
				authorized.POST("/chat/channels/:id/members", adminHandler.AddChannelMember)

				authorized.GET("/schedule/shifts", adminHandler.ListShifts)
				authorized.POST("/schedule/shifts", adminHandler.CreateShift)
				authorized.GET("/schedule/shifts/:id", adminHandler.GetShift)
				authorized.PUT("/schedule/shifts/:id", adminHandler.UpdateShift)
				authorized.DELETE("/schedule/shifts/:id", adminHandler.DeleteShift)
				authorized.POST("/schedule/shifts/:id/publish", adminHandler.PublishShift)
				authorized.POST("/schedule/shifts/:id/assign", adminHandler.AssignShift)
				authorized.POST("/schedule/shifts/:id/unassign", adminHandler.UnassignShift)

				authorized.GET("/authz/me", adminHandler.AuthzMe)
				authorized.GET("/authz/roles", adminHandler.ListRoles)
				authorized.POST("/authz/roles", adminHandler.CreateRole)
				authorized.DELETE("/authz/roles/:role", adminHandler.DeleteRole)
				authorized.GET("/authz/roles/:role/policies", adminHandler.GetRolePolicies)
				authorized.POST("/authz/roles/:role/policies", adminHandler.GrantRolePolicy)
				authorized.DELETE("/authz/roles/:role/policies", adminHandler.RevokeRolePolicy)
				authorized.GET("/authz/admins/:id/roles", adminHandler.GetAdminRoles)
				authorized.PUT("/authz/admins/:id/roles", adminHandler.SetAdminRoles)

				authorized.GET("/accounts", adminHandler.ListAdminAccounts)
				authorized.POST("/accounts", adminHandler.CreateAdminAccount)
				authorized.DELETE("/accounts/:id", adminHandler.DeleteAdminAccount)
				authorized.POST("/accounts/:id/revoke-tokens", adminHandler.RevokeAdminTokens)

				authorized.POST("/smtp/test", adminHandler.SendTestEmail)
			}
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
