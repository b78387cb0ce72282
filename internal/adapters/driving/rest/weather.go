package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/convivio/internal/core/domain"
	"github.com/custodia-labs/convivio/internal/core/ports/driving"
)

// registerWeatherRoutes registers the weather endpoints on r.
func registerWeatherRoutes(r gin.IRoutes, weather driving.WeatherService) {
	r.GET("/alerts/:state", func(c *gin.Context) {
		alerts, err := weather.AlertsForState(c.Request.Context(), c.Param("state"))
		if err != nil {
			writeError(c, err)
			return
		}
		if alerts == nil {
			alerts = []domain.Alert{}
		}
		c.JSON(http.StatusOK, gin.H{"alerts": alerts})
	})

	r.GET("/forecast", func(c *gin.Context) {
		lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
		lon, errLon := strconv.ParseFloat(c.Query("lon"), 64)
		if errLat != nil || errLon != nil {
			badRequest(c, "lat and lon must be decimal numbers")
			return
		}

		var periods *int
		if raw := c.Query("periods"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				badRequest(c, "periods must be an integer")
				return
			}
			periods = &n
		}

		bundle, err := weather.ForecastForCoordinates(c.Request.Context(), lat, lon, periods)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, bundle)
	})
}
