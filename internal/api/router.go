package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"resource-hub-backend/config"
	"resource-hub-backend/internal/mw"
	"resource-hub-backend/internal/notification"
	"resource-hub-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, s *store.Store, pool *notification.WorkerPool, webpushOptions *webpush.Options) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, pool, webpushOptions)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)
	actor := mw.Actor(s.DB(), cfg.Auth.ActorIDHeader)

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter, actor)
	{
		envs := api.Group("/environments")
		{
			envs.GET("", caching, handler.ListEnvironments)
			envs.GET("/:id", handler.GetEnvironment)
			envs.POST("", mw.RequireActor(), handler.CreateEnvironment)
			envs.PATCH("/:id", mw.RequireActor(), handler.UpdateEnvironment)
			envs.DELETE("/:id", mw.RequireActor(), handler.SoftDeleteEnvironment)
			envs.POST("/:id/restore", mw.RequireActor(), handler.RestoreEnvironment)
			envs.DELETE("/:id/purge", mw.AdminOnly(), handler.HardDeleteEnvironment)
			envs.POST("/:id/requests", mw.RequireActor(), handler.SubmitRequest)
		}

		eqs := api.Group("/equipments")
		{
			eqs.GET("", caching, handler.ListEquipment)
			eqs.GET("/:id", handler.GetEquipment)
			eqs.GET("/:id/transfers", handler.ListTransfers)
			eqs.POST("", mw.RequireActor(), handler.CreateEquipment)
			eqs.PATCH("/:id", mw.RequireActor(), handler.UpdateEquipment)
			eqs.DELETE("/:id", mw.RequireActor(), handler.SoftDeleteEquipment)
			eqs.POST("/:id/restore", mw.RequireActor(), handler.RestoreEquipment)
			eqs.DELETE("/:id/purge", mw.AdminOnly(), handler.HardDeleteEquipment)
		}

		reqs := api.Group("/requests", mw.RequireActor())
		{
			reqs.GET("", handler.ListRequests)
			reqs.POST("/:id/approve", mw.AdminOnly(), handler.ApproveRequest)
			reqs.POST("/:id/reject", mw.AdminOnly(), handler.RejectRequest)
			reqs.POST("/approve", mw.AdminOnly(), handler.BulkApproveRequests)
			reqs.POST("/reject", mw.AdminOnly(), handler.BulkRejectRequests)
		}

		api.PUT("/subscriptions", mw.RequireActor(), handler.PutSubscription)
		api.DELETE("/subscriptions", mw.RequireActor(), handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
