package router

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/planify/backend/internal/httperror"
	"github.com/planify/backend/internal/models"
	"github.com/prometheus/client_golang/prometheus"
)

// URLMiddleware makes the API base URL available to all handlers for
// building absolute links.
func URLMiddleware(url *url.URL) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(string(models.ContextURL), url.String())
		c.Next()
	}
}

var metrics = []prometheus.Collector{
	requestCount,
	requestDuration,
	models.RecomputeCount,
}

// registerPrometheusMetrics registers all Prometheus metrics
// with the default registry. Re-registration is tolerated so that
// multiple router setups within one process do not conflict.
func registerPrometheusMetrics() error {
	for _, collector := range metrics {
		err := prometheus.Register(collector)

		var already prometheus.AlreadyRegisteredError
		if err != nil && !errors.As(err, &already) {
			return fmt.Errorf("could not register %s with Prometheus", collector)
		}
	}

	return nil
}

var requestCount = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "requests_total",
		Help: "How many HTTP requests processed, partitioned by status code and HTTP method.",
	},
	[]string{"code", "method", "url"},
)

var requestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name: "request_duration_seconds",
		Help: "The HTTP request latencies in seconds.",
	},
	[]string{"code", "method", "url"},
)

// MetricsMiddleware updates Prometheus metrics.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		elapsed := float64(time.Since(start)) / float64(time.Second)

		// Replace all URL parameters with their name to reduce cardinality
		// https://prometheus.io/docs/practices/naming/#labels
		url := c.Request.URL.Path
		for _, p := range c.Params {
			url = strings.Replace(url, p.Value, fmt.Sprintf(":%s", p.Key), 1)
		}

		requestDuration.WithLabelValues(status, c.Request.Method, url).Observe(elapsed)
		requestCount.WithLabelValues(status, c.Request.Method, url).Inc()
	}
}

// AuthMiddleware resolves the requesting user from the identity headers
// set by the authenticating reverse proxy and provisions the user record
// on first sight. Requests without an identity are rejected.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		email := strings.ToLower(strings.TrimSpace(c.GetHeader("X-User-Email")))
		if email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httperror.New(models.ErrAuthentication))
			return
		}

		var user models.User
		err := models.DB.Where(&models.User{Email: email}).First(&user).Error
		if err != nil {
			if !errors.Is(err, models.ErrResourceNotFound) {
				c.AbortWithStatusJSON(http.StatusInternalServerError, httperror.New(err))
				return
			}

			user = models.User{
				Email:    email,
				FullName: strings.TrimSpace(c.GetHeader("X-User-Name")),
			}

			err = models.DB.Create(&user).Error
			if err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, httperror.New(err))
				return
			}
		}

		c.Set(string(models.ContextUser), user)
		c.Next()
	}
}
