package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/rshade/accountdesk/internal/account"
	"github.com/rshade/accountdesk/internal/logging"
	"github.com/rshade/accountdesk/internal/source"
)

// MaxUpdateIDs bounds one update request.
const MaxUpdateIDs = 1000

// Options configures the router.
type Options struct {
	// JWTSecret enables bearer authentication on account routes when non-empty.
	JWTSecret []byte
	// AllowOrigins lists CORS origins. Empty disables CORS headers.
	AllowOrigins []string
}

// AccountsResponse is the body of GET /api/accounts.
type AccountsResponse struct {
	Accounts []account.Account `json:"accounts"`
}

// UpdateRequest is the body of POST /api/accounts/update.
type UpdateRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

// UpdateResponse is the body of a successful update.
type UpdateResponse struct {
	Messages []string `json:"messages"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewRouter builds the gin engine serving src.
func NewRouter(src source.Source, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(requestID(), requestLogger(), gin.Recovery())

	if len(opts.AllowOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.AllowOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:     []string{"Content-Type", "Authorization", HeaderRequestID},
			ExposeHeaders:    []string{HeaderRequestID},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "route not found"})
	})

	h := &handlers{src: src}
	api := r.Group("/api")
	api.GET("/health", h.health)

	accounts := api.Group("/accounts")
	if len(opts.JWTSecret) > 0 {
		accounts.Use(requireJWT(opts.JWTSecret))
	}
	accounts.GET("", h.list)
	accounts.POST("/update", h.update)

	return r
}

type handlers struct {
	src source.Source
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handlers) list(c *gin.Context) {
	ctx := c.Request.Context()

	fetch := h.src.FetchAll
	if refresh, _ := strconv.ParseBool(c.Query("refresh")); refresh {
		fetch = h.src.Refresh
	}

	recs, err := fetch(ctx)
	if err != nil {
		logging.FromContext(ctx).Error().Ctx(ctx).
			Str("component", "httpapi").
			Str("operation", "list").
			Err(err).
			Msg("fetch failed")
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "failed to load accounts"})
		return
	}
	if recs == nil {
		recs = []account.Account{}
	}
	c.JSON(http.StatusOK, AccountsResponse{Accounts: recs})
}

func (h *handlers) update(c *gin.Context) {
	ctx := c.Request.Context()

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid payload"})
		return
	}
	if len(req.IDs) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "ids must not be empty"})
		return
	}
	if len(req.IDs) > MaxUpdateIDs {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "too many ids"})
		return
	}

	msgs, err := h.src.UpdateMany(ctx, req.IDs)
	if err != nil {
		status := http.StatusBadGateway
		if ctx.Err() != nil {
			status = http.StatusServiceUnavailable
		}
		logging.FromContext(ctx).Error().Ctx(ctx).
			Str("component", "httpapi").
			Str("operation", "update").
			Str("subject", c.GetString(ctxKeySubject)).
			Int("ids", len(req.IDs)).
			Err(err).
			Msg("update failed")
		c.JSON(status, ErrorResponse{Error: "update failed"})
		return
	}
	if msgs == nil {
		msgs = []string{}
	}

	logging.FromContext(ctx).Info().Ctx(ctx).
		Str("component", "httpapi").
		Str("operation", "update").
		Str("subject", c.GetString(ctxKeySubject)).
		Int("ids", len(req.IDs)).
		Msg("update applied")
	c.JSON(http.StatusOK, UpdateResponse{Messages: msgs})
}
