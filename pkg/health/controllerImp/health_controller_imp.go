package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"fieldplot/pkg/logger"
)

const pingTimeout = 800 * time.Millisecond

type check struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

type HealthCtrl struct {
	db      *gorm.DB
	started time.Time
	log     *zap.Logger
}

func NewHealthCtrl(db *gorm.DB, log *zap.Logger) *HealthCtrl {
	return &HealthCtrl{db: db, started: time.Now(), log: logger.OrNop(log)}
}

// Health answers 200 when the plot database is reachable, 503 otherwise.
func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), pingTimeout)
	defer cancel()

	db := h.pingDB(ctx)
	status := http.StatusOK
	if !db.OK {
		status = http.StatusServiceUnavailable
		h.log.Warn("health check failed", zap.String("database", db.Err))
	}
	return c.JSON(status, echo.Map{
		"status":     echo.Map{"ok": db.OK},
		"uptime_sec": int(time.Since(h.started).Seconds()),
		"checks":     echo.Map{"database": db},
		"time":       time.Now().Format(time.RFC3339),
	})
}

func (h *HealthCtrl) pingDB(ctx context.Context) check {
	if h.db == nil {
		return check{Err: "gorm db is nil"}
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return check{Err: "db.DB(): " + err.Error()}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return check{Err: "ping: " + err.Error()}
	}
	return check{OK: true}
}
