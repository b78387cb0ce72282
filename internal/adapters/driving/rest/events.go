package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/convivio/internal/core/domain"
	"github.com/custodia-labs/convivio/internal/core/ports/driving"
)

type createEventRequest struct {
	Name     string   `json:"name" binding:"required"`
	Date     string   `json:"date" binding:"required"`
	Location string   `json:"location" binding:"required"`
	Budget   *float64 `json:"budget"`
	Notes    string   `json:"notes"`
}

type addParticipantRequest struct {
	Name         string   `json:"name" binding:"required"`
	Intolerances []string `json:"intolerances"`
	Preferences  []string `json:"preferences"`
	Weight       *float64 `json:"weight"`
}

// updateParticipantRequest keeps omitted lists nil so they stay untouched.
type updateParticipantRequest struct {
	Intolerances []string `json:"intolerances"`
	Preferences  []string `json:"preferences"`
	Weight       *float64 `json:"weight"`
}

type splitRequest struct {
	TotalAmount *float64 `json:"total_amount"`
	Mode        string   `json:"mode"`
}

type splitResponse struct {
	EventID  string         `json:"event_id"`
	Mode     string         `json:"mode"`
	Currency string         `json:"currency"`
	Shares   []domain.Share `json:"shares"`
}

// registerEventRoutes registers the events endpoints on r.
func registerEventRoutes(r gin.IRoutes, events driving.EventService) {
	r.POST("", func(c *gin.Context) {
		var req createEventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "name, date and location required")
			return
		}
		event, err := events.CreateEvent(c.Request.Context(), domain.NewEvent{
			Name:     req.Name,
			Date:     req.Date,
			Location: req.Location,
			Budget:   req.Budget,
			Notes:    req.Notes,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, event)
	})

	r.GET("", func(c *gin.Context) {
		list, err := events.ListEvents(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		if list == nil {
			list = []domain.Event{}
		}
		c.JSON(http.StatusOK, list)
	})

	r.GET("/:id", func(c *gin.Context) {
		event, err := events.GetEvent(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, event)
	})

	r.POST("/:id/participants", func(c *gin.Context) {
		var req addParticipantRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "name required")
			return
		}
		participant, err := events.AddParticipant(c.Request.Context(), c.Param("id"), domain.NewParticipant{
			Name:         req.Name,
			Intolerances: req.Intolerances,
			Preferences:  req.Preferences,
			Weight:       req.Weight,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, participant)
	})

	r.PATCH("/:id/participants/:pid", func(c *gin.Context) {
		var req updateParticipantRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid JSON payload")
			return
		}
		participant, err := events.UpdatePreferences(c.Request.Context(), c.Param("id"), c.Param("pid"),
			domain.ParticipantUpdate{
				Intolerances: req.Intolerances,
				Preferences:  req.Preferences,
				Weight:       req.Weight,
			})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, participant)
	})

	r.GET("/:id/restaurants", func(c *gin.Context) {
		limit := 0
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				badRequest(c, "limit must be an integer")
				return
			}
			limit = n
		}
		suggestions, err := events.SuggestRestaurants(c.Request.Context(), c.Param("id"), limit)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, suggestions)
	})

	r.POST("/:id/split", func(c *gin.Context) {
		var req splitRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.TotalAmount == nil {
			badRequest(c, "total_amount required")
			return
		}
		mode := domain.SplitEqual
		if req.Mode != "" {
			mode = domain.SplitMode(req.Mode)
		}

		id := c.Param("id")
		shares, err := events.SplitBill(c.Request.Context(), id, *req.TotalAmount, mode)
		if err != nil {
			writeError(c, err)
			return
		}
		event, err := events.GetEvent(c.Request.Context(), id)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, splitResponse{
			EventID:  id,
			Mode:     string(mode),
			Currency: event.Currency,
			Shares:   shares,
		})
	})
}
