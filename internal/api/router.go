package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"hostel-portal-backend/config"
	"hostel-portal-backend/internal/auth"
	"hostel-portal-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(h *Handler, authMgr *auth.Manager, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	r.Static(cfg.Uploads.PublicPath, h.uploads.Dir())

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/healthz", h.Healthz)
		api.GET("/vacancy", h.GetVacancy)
		api.GET("/menu", caching, h.GetMenu)
		api.GET("/vapid_public_key", h.GetVAPIDPublicKey)

		authed := api.Group("")
		authed.Use(mw.RequireAuth(authMgr))
		{
			authed.POST("/allocations", h.ClaimAllocation)
			authed.GET("/allocations/mine", h.GetMyAllocation)

			authed.GET("/profile", h.GetMyProfile)
			authed.PUT("/profile", h.PutProfile)

			authed.POST("/leaves", h.CreateLeave)
			authed.GET("/leaves/mine", h.GetMyLeaves)

			authed.POST("/feedbacks", h.CreateFeedback)

			authed.POST("/uploads", h.Upload)

			authed.GET("/subscriptions", h.GetSubscription)
			authed.PUT("/subscriptions", h.PutSubscription)
			authed.DELETE("/subscriptions", h.DeleteSubscription)
		}

		admin := api.Group("/admin")
		admin.Use(mw.RequireAuth(authMgr), mw.RequireAdmin())
		{
			admin.GET("/allocations", h.ListAllocations)
			admin.PATCH("/allocations/:id", h.DecideAllocation)

			admin.GET("/students", h.ListStudents)

			admin.GET("/leaves", h.ListLeaves)
			admin.PATCH("/leaves/:id", h.DecideLeave)

			admin.GET("/feedbacks", h.ListFeedbacks)
			admin.PATCH("/feedbacks/:id", h.SetFeedbackResolved)
			admin.DELETE("/feedbacks/:id", h.DeleteFeedback)

			admin.PUT("/menu", h.PutMenu)
		}
	}

	return r
}
