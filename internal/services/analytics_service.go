package services

import (
	"math"
	"sort"
	"time"

	"campusd/internal/models"
	"campusd/internal/storage"
)

type AnalyticsServiceInterface interface {
	Dashboard() DashboardStats
	GradeDistribution(courseID string) Distribution
	AttendanceTrends(courseID string, days int) TrendSeries
	ClassPerformance(courseID string) Performance
	StudentPerformance(studentID string) StudentPerformance
	Summary() InstitutionSummary
}

type DashboardStats struct {
	Users         int `json:"users"`
	Students      int `json:"students"`
	Faculty       int `json:"faculty"`
	Courses       int `json:"courses"`
	Assignments   int `json:"assignments"`
	Bookings      int `json:"bookings"`
	Announcements int `json:"announcements"`
}

type Distribution struct {
	Labels        []string `json:"labels"`
	Data          []int    `json:"data"`
	TotalStudents int      `json:"total_students"`
}

type TrendSeries struct {
	Labels     []string  `json:"labels"`
	Data       []float64 `json:"data"`
	PeriodDays int       `json:"period_days"`
}

type Performance struct {
	Average       float64 `json:"average"`
	Highest       float64 `json:"highest"`
	Lowest        float64 `json:"lowest"`
	PassingRate   float64 `json:"passing_rate"`
	TotalStudents int     `json:"total_students"`
}

type CourseGrade struct {
	CourseName string  `json:"course_name"`
	Grade      string  `json:"grade"`
	Marks      float64 `json:"marks"`
	MaxMarks   float64 `json:"max_marks"`
}

type StudentPerformance struct {
	CGPA             float64       `json:"cgpa"`
	AttendanceRate   float64       `json:"attendance_rate"`
	CoursesCompleted int           `json:"courses_completed"`
	CourseGrades     []CourseGrade `json:"course_grades"`
}

type InstitutionSummary struct {
	Users struct {
		Total  int            `json:"total"`
		ByRole map[string]int `json:"by_role"`
	} `json:"users"`
	Academics struct {
		Courses           int `json:"total_courses"`
		Assignments       int `json:"total_assignments"`
		Submissions       int `json:"total_submissions"`
		GradedSubmissions int `json:"graded_submissions"`
	} `json:"academics"`
	Attendance struct {
		TotalRecords int     `json:"total_records"`
		PresentCount int     `json:"present_count"`
		AverageRate  float64 `json:"average_rate"`
	} `json:"attendance"`
}

var gradeOrder = []string{"A+", "A", "B", "C", "D", "F"}

// gradePoints maps letters onto the 10-point scale used for the CGPA.
var gradePoints = map[string]float64{"A+": 10, "A": 9, "B": 8, "C": 7, "D": 6, "F": 0}

// AnalyticsService computes read-only aggregates over the collection
// store. Results are cached at the controller layer.
type AnalyticsService struct {
	store storage.StoreInterface
	now   func() time.Time
}

func NewAnalyticsService(store storage.StoreInterface) AnalyticsServiceInterface {
	return &AnalyticsService{store: store, now: time.Now}
}

func (s *AnalyticsService) Dashboard() DashboardStats {
	return DashboardStats{
		Users:         s.store.Count("users", nil),
		Students:      s.store.Count("users", map[string]any{"role": models.RoleStudent}),
		Faculty:       s.store.Count("users", map[string]any{"role": models.RoleFaculty}),
		Courses:       s.store.Count("courses", nil),
		Assignments:   s.store.Count("assignments", nil),
		Bookings:      s.store.Count("bookings", nil),
		Announcements: s.store.Count("announcements", nil),
	}
}

// GradeDistribution buckets grades into the fixed letter scale; every
// letter is present in the output even when its count is zero.
func (s *AnalyticsService) GradeDistribution(courseID string) Distribution {
	var recs []storage.Record
	if courseID != "" {
		recs = s.store.GetByField("grades", "course_id", courseID)
	} else {
		recs = s.store.GetAll("grades")
	}

	counts := make(map[string]int)
	for _, rec := range recs {
		counts[models.GradeFromRecord(rec).GradeLetter]++
	}

	dist := Distribution{TotalStudents: len(recs)}
	for _, letter := range gradeOrder {
		dist.Labels = append(dist.Labels, letter)
		dist.Data = append(dist.Data, counts[letter])
	}
	return dist
}

// AttendanceTrends returns the daily attendance rate over the trailing
// window, dates ascending.
func (s *AnalyticsService) AttendanceTrends(courseID string, days int) TrendSeries {
	if days <= 0 {
		days = 30
	}

	var recs []storage.Record
	if courseID != "" {
		recs = s.store.GetByField("attendance", "course_id", courseID)
	} else {
		recs = s.store.GetAll("attendance")
	}

	cutoff := s.now().AddDate(0, 0, -days).Format(models.DateLayout)
	type dayCount struct{ present, total int }
	byDate := make(map[string]*dayCount)
	for _, rec := range recs {
		a := models.AttendanceFromRecord(rec)
		if a.Date < cutoff {
			continue
		}
		dc, ok := byDate[a.Date]
		if !ok {
			dc = &dayCount{}
			byDate[a.Date] = dc
		}
		dc.total++
		if a.IsPresent {
			dc.present++
		}
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	series := TrendSeries{Labels: dates, PeriodDays: days}
	for _, date := range dates {
		dc := byDate[date]
		rate := 0.0
		if dc.total > 0 {
			rate = float64(dc.present) / float64(dc.total) * 100
		}
		series.Data = append(series.Data, round1(rate))
	}
	return series
}

func (s *AnalyticsService) ClassPerformance(courseID string) Performance {
	recs := s.store.GetByField("grades", "course_id", courseID)

	percentages := make([]float64, 0, len(recs))
	for _, rec := range recs {
		g := models.GradeFromRecord(rec)
		if g.MaxMarks > 0 {
			percentages = append(percentages, g.Marks/g.MaxMarks*100)
		}
	}
	if len(percentages) == 0 {
		return Performance{}
	}

	perf := Performance{
		Highest:       percentages[0],
		Lowest:        percentages[0],
		TotalStudents: len(percentages),
	}
	sum, passing := 0.0, 0
	for _, pct := range percentages {
		sum += pct
		perf.Highest = math.Max(perf.Highest, pct)
		perf.Lowest = math.Min(perf.Lowest, pct)
		if pct >= 50 {
			passing++
		}
	}
	perf.Average = round1(sum / float64(len(percentages)))
	perf.Highest = round1(perf.Highest)
	perf.Lowest = round1(perf.Lowest)
	perf.PassingRate = round1(float64(passing) / float64(len(percentages)) * 100)
	return perf
}

// StudentPerformance folds one student's grades and attendance into a
// CGPA on the 10-point scale and an attendance rate. A grade whose course
// record is gone still counts, with the course name left as "Unknown".
func (s *AnalyticsService) StudentPerformance(studentID string) StudentPerformance {
	grades := s.store.GetByField("grades", "student_id", studentID)

	perf := StudentPerformance{CourseGrades: []CourseGrade{}}
	totalPoints := 0.0
	for _, rec := range grades {
		g := models.GradeFromRecord(rec)
		totalPoints += gradePoints[g.GradeLetter]

		courseName := "Unknown"
		if course, ok := s.store.GetByID("courses", g.CourseID); ok {
			courseName = course.GetString("name", "Unknown")
		}
		perf.CourseGrades = append(perf.CourseGrades, CourseGrade{
			CourseName: courseName,
			Grade:      g.GradeLetter,
			Marks:      g.Marks,
			MaxMarks:   g.MaxMarks,
		})
	}
	perf.CoursesCompleted = len(grades)
	if len(grades) > 0 {
		perf.CGPA = math.Round(totalPoints/float64(len(grades))*100) / 100
	}

	attendance := s.store.GetByField("attendance", "student_id", studentID)
	present := 0
	for _, rec := range attendance {
		if rec.GetBool("is_present", false) {
			present++
		}
	}
	if len(attendance) > 0 {
		perf.AttendanceRate = round1(float64(present) / float64(len(attendance)) * 100)
	}
	return perf
}

// Summary is the institution-wide rollup for admins.
func (s *AnalyticsService) Summary() InstitutionSummary {
	var summary InstitutionSummary

	summary.Users.ByRole = make(map[string]int)
	for _, rec := range s.store.GetAll("users") {
		summary.Users.Total++
		summary.Users.ByRole[rec.GetString("role", "unknown")]++
	}

	summary.Academics.Courses = s.store.Count("courses", nil)
	summary.Academics.Assignments = s.store.Count("assignments", nil)
	for _, rec := range s.store.GetAll("submissions") {
		summary.Academics.Submissions++
		if _, graded := rec["marks"]; graded {
			summary.Academics.GradedSubmissions++
		}
	}

	for _, rec := range s.store.GetAll("attendance") {
		summary.Attendance.TotalRecords++
		if rec.GetBool("is_present", false) {
			summary.Attendance.PresentCount++
		}
	}
	if summary.Attendance.TotalRecords > 0 {
		summary.Attendance.AverageRate = round1(float64(summary.Attendance.PresentCount) / float64(summary.Attendance.TotalRecords) * 100)
	}
	return summary
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
