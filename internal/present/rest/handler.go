package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/citypulse/connect"
	"github.com/citypulse/connect/internal/present/rest/presenter"
	"github.com/citypulse/connect/internal/usecase"
)

// RealtimeSource feeds decoded ledger events to realtime subscribers.
// Satisfied by service.SignalService.
type RealtimeSource interface {
	Realtime(ctx context.Context, output chan<- connect.Event)
}

type Handler struct {
	ledger      *usecase.LedgerUsecase
	presence    *usecase.PresenceUsecase
	credibility *usecase.CredibilityUsecase
	feed        *usecase.FeedUsecase
	engagement  *usecase.EngagementUsecase
	signal      RealtimeSource
}

func NewHandler(
	ledger *usecase.LedgerUsecase,
	presence *usecase.PresenceUsecase,
	credibility *usecase.CredibilityUsecase,
	feed *usecase.FeedUsecase,
	engagement *usecase.EngagementUsecase,
	signal RealtimeSource,
) *Handler {
	return &Handler{
		ledger:      ledger,
		presence:    presence,
		credibility: credibility,
		feed:        feed,
		engagement:  engagement,
		signal:      signal,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/checkins", h.handleRecordCheckIn)
	e.GET("/api/v1/checkins/active", h.handleActiveCheckIns)
	e.GET("/api/v1/feed", h.handleFeed)
	e.GET("/api/v1/venues/live", h.handleLiveVenues)
	e.GET("/api/v1/users/:id/credibility", h.handleCredibility)
	e.GET("/api/v1/users/:id/stamps", h.handleStamps)
	e.POST("/api/v1/activities", h.handleCreateActivity)
	e.POST("/api/v1/activities/:id/going", h.handleToggleGoing)
	e.POST("/api/v1/activities/:id/interested", h.handleToggleInterested)
	e.POST("/api/v1/events/:id/join", h.handleJoinEvent)
	e.GET("/realtime", h.handleRealtime)
}

type recordCheckInRequest struct {
	UserID          string `json:"userId"`
	VenueID         string `json:"venueId"`
	VenueType       string `json:"venueType"`
	UserDisplayName string `json:"userDisplayName"`
	UserAvatarURL   string `json:"userAvatarUrl"`
}

func (h *Handler) handleRecordCheckIn(c echo.Context) error {
	ctx := c.Request().Context()

	var req recordCheckInRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	if req.UserID == "" || req.VenueID == "" || req.VenueType == "" {
		return presenter.BadRequestMessage(c, "userId, venueId and venueType are required")
	}

	checkin, err := h.ledger.Record(ctx, usecase.RecordInput{
		UserID:          req.UserID,
		VenueID:         req.VenueID,
		VenueType:       req.VenueType,
		UserDisplayName: req.UserDisplayName,
		UserAvatarURL:   req.UserAvatarURL,
	})
	if err != nil {
		return presenter.InternalError(c, err)
	}

	return presenter.Created(c, checkin)
}

func (h *Handler) handleActiveCheckIns(c echo.Context) error {
	ctx := c.Request().Context()

	checkins, err := h.ledger.Active(ctx)
	if err != nil {
		return presenter.InternalError(c, err)
	}
	return presenter.OK(c, checkins)
}

func (h *Handler) handleFeed(c echo.Context) error {
	ctx := c.Request().Context()
	region := c.QueryParam("region")

	// composeFeed never fails as a whole; degraded channels come back empty
	result := h.feed.ComposeFeed(ctx, region)
	return presenter.OK(c, result)
}

func (h *Handler) handleLiveVenues(c echo.Context) error {
	ctx := c.Request().Context()
	region := c.QueryParam("region")

	views, skipped, err := h.presence.LiveVenues(ctx, region)
	if err != nil {
		return presenter.InternalError(c, err)
	}
	for _, s := range skipped {
		slog.WarnContext(ctx, "live venue dropped",
			slog.String("venue", s.VenueID),
			slog.String("reason", s.Reason),
			slog.String("module", "rest"),
		)
	}
	return presenter.OK(c, views)
}

func (h *Handler) handleCredibility(c echo.Context) error {
	ctx := c.Request().Context()

	profile, err := h.credibility.Profile(ctx, c.Param("id"))
	if err != nil {
		return presenter.InternalError(c, err)
	}

	// no profile yet is a valid state, delivered as null
	return presenter.OK(c, profile)
}

func (h *Handler) handleStamps(c echo.Context) error {
	ctx := c.Request().Context()

	stamps, err := h.credibility.Stamps(ctx, c.Param("id"))
	if err != nil {
		return presenter.InternalError(c, err)
	}
	return presenter.OK(c, stamps)
}

type createActivityRequest struct {
	HostUserID  string     `json:"hostUserId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Region      string     `json:"region"`
	Address     string     `json:"address"`
	AllDay      bool       `json:"allDay"`
	Date        time.Time  `json:"date"`
	StartTime   *time.Time `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
	Visibility  string     `json:"visibility"`
}

func (h *Handler) handleCreateActivity(c echo.Context) error {
	ctx := c.Request().Context()

	var req createActivityRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	if req.HostUserID == "" || req.Title == "" {
		return presenter.BadRequestMessage(c, "hostUserId and title are required")
	}

	activity, err := h.engagement.CreateActivity(ctx, usecase.CreateActivityInput{
		HostUserID:  req.HostUserID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Region:      req.Region,
		Address:     req.Address,
		AllDay:      req.AllDay,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Visibility:  req.Visibility,
	})
	if err != nil {
		if err == usecase.ErrMissingTimes {
			return presenter.BadRequest(c, err)
		}
		return presenter.InternalError(c, err)
	}

	return presenter.Created(c, activity)
}

type toggleRequest struct {
	UserID    string `json:"userId"`
	Currently bool   `json:"currently"`
}

func (h *Handler) handleToggleGoing(c echo.Context) error {
	ctx := c.Request().Context()

	var req toggleRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	if req.UserID == "" {
		return presenter.BadRequestMessage(c, "userId is required")
	}

	if err := h.engagement.ToggleGoing(ctx, c.Param("id"), req.UserID, req.Currently); err != nil {
		return presenter.InternalError(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleToggleInterested(c echo.Context) error {
	ctx := c.Request().Context()

	var req toggleRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	if req.UserID == "" {
		return presenter.BadRequestMessage(c, "userId is required")
	}

	if err := h.engagement.ToggleInterested(ctx, c.Param("id"), req.UserID, req.Currently); err != nil {
		return presenter.InternalError(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

type joinEventRequest struct {
	UserID string `json:"userId"`
}

func (h *Handler) handleJoinEvent(c echo.Context) error {
	ctx := c.Request().Context()

	var req joinEventRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	if req.UserID == "" {
		return presenter.BadRequestMessage(c, "userId is required")
	}

	if err := h.engagement.JoinEvent(ctx, req.UserID, c.Param("id")); err != nil {
		return presenter.InternalError(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type realtimeRequest struct {
	Type string `json:"type"`
}

// handleRealtime streams the active check-in set over a websocket. Every
// ledger change pushes the FULL current snapshot, expiry-descending and
// capped; subscribers never receive deltas. One subscription per socket;
// closing the socket is the unsubscribe.
func (h *Handler) handleRealtime(c echo.Context) error {
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error(
			"Failed to upgrade WebSocket",
			slog.String("error", err.Error()),
			slog.String("module", "socket"),
		)
		return err
	}
	defer func() {
		ws.Close()
	}()

	ctx := c.Request().Context()

	events := make(chan connect.Event)
	go h.signal.Realtime(ctx, events)

	// closed by the reader; a close never blocks, so the reader cannot
	// leak when the main loop has already returned
	quit := make(chan struct{})

	go func() {
		defer close(quit)
		for {
			var req realtimeRequest
			err := ws.ReadJSON(&req)
			if err != nil {

				wsErr, ok := err.(*websocket.CloseError)
				if ok {
					if !(wsErr.Code == websocket.CloseNormalClosure || wsErr.Code == websocket.CloseGoingAway) {
						slog.DebugContext(
							ctx, "WebSocket closed",
							slog.String("error", wsErr.Error()),
							slog.String("module", "socket"),
						)
					}
				} else {
					slog.ErrorContext(
						ctx, "Error reading message",
						slog.String("error", err.Error()),
						slog.String("module", "socket"),
					)
				}

				break
			}

			switch req.Type {
			case "h": // heartbeat
				// do nothing
			default:
				slog.InfoContext(
					ctx, "Unknown request type",
					slog.String("type", req.Type),
					slog.String("module", "socket"),
				)
			}
		}
	}()

	if err := h.pushSnapshot(c, ws); err != nil {
		return nil
	}

	for {
		select {
		case <-quit:
			return nil
		case <-ctx.Done():
			return nil
		case <-events:
			if err := h.pushSnapshot(c, ws); err != nil {
				return nil
			}
		}
	}
}

func (h *Handler) pushSnapshot(c echo.Context, ws *websocket.Conn) error {
	ctx := c.Request().Context()

	snapshot, err := h.ledger.Active(ctx)
	if err != nil {
		slog.ErrorContext(
			ctx, "Error loading active checkins",
			slog.String("error", err.Error()),
			slog.String("module", "socket"),
		)
		return err
	}

	if err := ws.WriteJSON(snapshot); err != nil {
		slog.ErrorContext(
			ctx, "Error writing message",
			slog.String("error", err.Error()),
			slog.String("module", "socket"),
		)
		return err
	}
	return nil
}
