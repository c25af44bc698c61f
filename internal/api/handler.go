package api

import (
	"github.com/SherClockHolmes/webpush-go"

	"hostel-portal-backend/config"
	"hostel-portal-backend/internal/files"
	"hostel-portal-backend/internal/notification"
	"hostel-portal-backend/internal/occupancy"
	"hostel-portal-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store    store.Store
	snapshot *occupancy.Snapshot
	hostel   config.HostelConfig
	uploads  *files.Store
	webpush  *webpush.Options
	pool     *notification.WorkerPool
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, snapshot *occupancy.Snapshot, hostel config.HostelConfig,
	uploads *files.Store, webpushOptions *webpush.Options, pool *notification.WorkerPool) *Handler {
	return &Handler{
		store:    s,
		snapshot: snapshot,
		hostel:   hostel,
		uploads:  uploads,
		webpush:  webpushOptions,
		pool:     pool,
	}
}
