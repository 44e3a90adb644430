package handlers

import (
	"context"
	"net/http"
	"os"
	"skillink/internal/adapter/http/middleware"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

const (
	StatusOk          = "ok"
	StatusDown        = "down"
	StatusDisabled    = "disabled"
	healthPingTimeout = 2 * time.Second
)

// BrokerStatus is satisfied by the event publisher when a broker is configured.
type BrokerStatus interface {
	IsConnected() bool
}

type HealthBasic struct {
	AppName           string `json:"app_name"`
	AppVersion        string `json:"app_version"`
	CurrentSystemTime string `json:"current_system_time"`
	Message           string `json:"message"`
}

type HealthServices struct {
	Mysql    string `json:"mysql"`
	Redis    string `json:"redis"`
	RabbitMQ string `json:"rabbitmq"`
}

type HealthAdvanced struct {
	AppName           string         `json:"app_name"`
	AppVersion        string         `json:"app_version"`
	CurrentSystemTime string         `json:"current_system_time"`
	Language          string         `json:"language"`
	Storage           string         `json:"storage"`
	Status            HealthServices `json:"status"`
}

// HealthHandler reports on the optional backends. A nil backend is reported
// as disabled and never fails the check.
type HealthHandler struct {
	storage string
	db      *sqlx.DB
	cache   redis.Cmdable
	broker  BrokerStatus
}

func NewHealthHandler(storage string, db *sqlx.DB, cache redis.Cmdable, broker BrokerStatus) *HealthHandler {
	return &HealthHandler{storage: storage, db: db, cache: cache, broker: broker}
}

func (h *HealthHandler) CheckHealth(c *gin.Context) {
	services := h.services(c.Request.Context())
	statusCode := http.StatusOK
	message := StatusOk

	for _, status := range []string{services.Mysql, services.Redis, services.RabbitMQ} {
		if status == StatusDown {
			statusCode = http.StatusInternalServerError
			message = StatusDown
		}
	}

	c.JSON(statusCode, HealthBasic{
		AppName:           os.Getenv("APP_NAME"),
		AppVersion:        getAppVersion(),
		CurrentSystemTime: time.Now().Format("2006-01-02 15:04:05"),
		Message:           message,
	})
}

func (h *HealthHandler) CheckHealthReport(c *gin.Context) {
	c.JSON(http.StatusOK, HealthAdvanced{
		AppName:           os.Getenv("APP_NAME"),
		AppVersion:        getAppVersion(),
		CurrentSystemTime: time.Now().Format("2006-01-02 15:04:05"),
		Language:          middleware.GetLang(c),
		Storage:           h.storage,
		Status:            h.services(c.Request.Context()),
	})
}

func (h *HealthHandler) services(ctx context.Context) HealthServices {
	timeoutCtx, cancel := context.WithTimeout(ctx, healthPingTimeout)
	defer cancel()

	out := HealthServices{Mysql: StatusDisabled, Redis: StatusDisabled, RabbitMQ: StatusDisabled}
	if h.db != nil {
		out.Mysql = statusOf(h.db.PingContext(timeoutCtx) == nil)
	}
	if h.cache != nil {
		out.Redis = statusOf(h.cache.Ping(timeoutCtx).Err() == nil)
	}
	if h.broker != nil {
		out.RabbitMQ = statusOf(h.broker.IsConnected())
	}
	return out
}

func statusOf(up bool) string {
	if up {
		return StatusOk
	}
	return StatusDown
}

func getAppVersion() string {
	version := os.Getenv("APP_VERSION")
	if version == "" {
		return "dev"
	}
	return version
}
