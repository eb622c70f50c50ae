package controllers

import (
	"net/http"
	"strconv"

	json "github.com/goccy/go-json"

	"campusd/internal/models"
	"campusd/internal/providers"
	"campusd/internal/services"
)

type AnalyticsController struct {
	logger    providers.Logger
	analytics services.AnalyticsServiceInterface
	cache     providers.CacheProviderInterface
}

func NewAnalyticsController(logger providers.Logger, analytics services.AnalyticsServiceInterface, cache providers.CacheProviderInterface) *AnalyticsController {
	return &AnalyticsController{logger: logger, analytics: analytics, cache: cache}
}

func (ac *AnalyticsController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		writeRaw(w, http.StatusOK, data)
		return
	}

	result, err := compute()
	if err != nil {
		writeError(w, err)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)
	writeRaw(w, http.StatusOK, gson)
}

func (ac *AnalyticsController) Dashboard(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "dashboard", func() (any, error) {
		return ac.analytics.Dashboard(), nil
	})
}

func (ac *AnalyticsController) GradeDistribution(w http.ResponseWriter, r *http.Request) {
	courseID := r.URL.Query().Get("course_id")
	ac.serveFromCacheOrCompute(w, "grades:"+courseID, func() (any, error) {
		return ac.analytics.GradeDistribution(courseID), nil
	})
}

func (ac *AnalyticsController) AttendanceTrends(w http.ResponseWriter, r *http.Request) {
	courseID := r.URL.Query().Get("course_id")
	days := 30
	if v := r.URL.Query().Get("days"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			days = parsed
		}
	}
	ac.serveFromCacheOrCompute(w, "trends:"+courseID+":"+strconv.Itoa(days), func() (any, error) {
		return ac.analytics.AttendanceTrends(courseID, days), nil
	})
}

func (ac *AnalyticsController) ClassPerformance(w http.ResponseWriter, r *http.Request) {
	courseID := r.PathValue("course_id")
	ac.serveFromCacheOrCompute(w, "performance:"+courseID, func() (any, error) {
		return ac.analytics.ClassPerformance(courseID), nil
	})
}

// StudentPerformance defaults to the caller's own record; students may not
// look up anyone else's.
func (ac *AnalyticsController) StudentPerformance(w http.ResponseWriter, r *http.Request) {
	identity, _ := providers.IdentityFrom(r)

	studentID := r.URL.Query().Get("student_id")
	if studentID == "" {
		studentID = identity.ID
	}
	if identity.Role == models.RoleStudent && studentID != identity.ID {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "not allowed"})
		return
	}

	ac.serveFromCacheOrCompute(w, "performance:student:"+studentID, func() (any, error) {
		return ac.analytics.StudentPerformance(studentID), nil
	})
}

func (ac *AnalyticsController) Summary(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "summary", func() (any, error) {
		return ac.analytics.Summary(), nil
	})
}
