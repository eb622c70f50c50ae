package internal

import (
	"net/http"

	"campusd/internal/controllers"
	"campusd/internal/models"
	"campusd/internal/providers"
)

type Controllers struct {
	Auth         *controllers.AuthController
	Attendance   *controllers.AttendanceController
	Course       *controllers.CourseController
	Assignment   *controllers.AssignmentController
	Booking      *controllers.BookingController
	Announcement *controllers.AnnouncementController
	Analytics    *controllers.AnalyticsController
	Admin        *controllers.AdminController
	User         *controllers.UserController
}

func NewControllers(
	auth *controllers.AuthController,
	attendance *controllers.AttendanceController,
	course *controllers.CourseController,
	assignment *controllers.AssignmentController,
	booking *controllers.BookingController,
	announcement *controllers.AnnouncementController,
	analytics *controllers.AnalyticsController,
	admin *controllers.AdminController,
	user *controllers.UserController,
) *Controllers {
	return &Controllers{
		Auth:         auth,
		Attendance:   attendance,
		Course:       course,
		Assignment:   assignment,
		Booking:      booking,
		Announcement: announcement,
		Analytics:    analytics,
		Admin:        admin,
		User:         user,
	}
}

func InitRoutes(c *Controllers, verifier providers.IdentityVerifier) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	authed := func(h http.HandlerFunc) http.Handler {
		return providers.AuthMiddleware(verifier, h)
	}
	role := func(h http.HandlerFunc, roles ...string) http.Handler {
		return providers.AuthMiddleware(verifier, providers.RequireRole(h, roles...))
	}

	routers.Post("/api/auth/login", http.HandlerFunc(c.Auth.Login))
	routers.Post("/api/auth/register", http.HandlerFunc(c.Auth.Register))
	routers.Get("/api/auth/me", authed(c.Auth.Me))
	routers.Post("/api/auth/logout", authed(c.Auth.Logout))

	routers.Get("/api/courses", authed(c.Course.List))
	routers.Get("/api/courses/{id}", authed(c.Course.Get))
	routers.Post("/api/courses", role(c.Course.Create, models.RoleFaculty, models.RoleAdmin))

	routers.Get("/api/assignments", authed(c.Assignment.List))
	routers.Get("/api/assignments/grades", authed(c.Assignment.Grades))
	routers.Get("/api/assignments/{id}", authed(c.Assignment.Get))
	routers.Post("/api/assignments", role(c.Assignment.Create, models.RoleFaculty))

	routers.Get("/api/bookings/rooms", authed(c.Booking.Rooms))
	routers.Get("/api/bookings/rooms/available", authed(c.Booking.AvailableRooms))
	routers.Get("/api/bookings", authed(c.Booking.List))
	routers.Post("/api/bookings", authed(c.Booking.Create))
	routers.Delete("/api/bookings/{id}", authed(c.Booking.Cancel))

	routers.Post("/api/attendance/generate-qr", role(c.Attendance.GenerateQR, models.RoleFaculty))
	routers.Post("/api/attendance/invalidate", role(c.Attendance.Invalidate, models.RoleFaculty))
	routers.Post("/api/attendance/mark", role(c.Attendance.Mark, models.RoleStudent))
	routers.Get("/api/attendance", authed(c.Attendance.List))
	routers.Get("/api/attendance/summary", authed(c.Attendance.Summary))

	routers.Get("/api/users/directory", authed(c.User.Directory))
	routers.Get("/api/users/{id}", authed(c.User.Get))
	routers.Put("/api/users/{id}", authed(c.User.Update))

	routers.Get("/api/announcements", authed(c.Announcement.List))
	routers.Post("/api/announcements", role(c.Announcement.Create, models.RoleFaculty, models.RoleAdmin))
	routers.Delete("/api/announcements/{id}", authed(c.Announcement.Delete))

	routers.Get("/api/analytics/dashboard", authed(c.Analytics.Dashboard))
	routers.Get("/api/analytics/grades/distribution", authed(c.Analytics.GradeDistribution))
	routers.Get("/api/analytics/attendance/trends", authed(c.Analytics.AttendanceTrends))
	routers.Get("/api/analytics/performance/class/{course_id}", authed(c.Analytics.ClassPerformance))
	routers.Get("/api/analytics/performance/student", authed(c.Analytics.StudentPerformance))
	routers.Get("/api/analytics/summary", role(c.Analytics.Summary, models.RoleAdmin))

	routers.Get("/api/admin/users", role(c.Admin.ListUsers, models.RoleAdmin))
	routers.Post("/api/admin/users", role(c.Admin.CreateUser, models.RoleAdmin))
	routers.Post("/api/admin/users/bulk-create", role(c.Admin.BulkCreateUsers, models.RoleAdmin))
	routers.Get("/api/admin/users/{id}", role(c.Admin.GetUser, models.RoleAdmin))
	routers.Put("/api/admin/users/{id}", role(c.Admin.UpdateUser, models.RoleAdmin))
	routers.Put("/api/admin/users/{id}/role", role(c.Admin.UpdateUserRole, models.RoleAdmin))
	routers.Delete("/api/admin/users/{id}", role(c.Admin.DeactivateUser, models.RoleAdmin))
	routers.Post("/api/admin/users/{id}/restore", role(c.Admin.RestoreUser, models.RoleAdmin))
	routers.Get("/api/admin/stats", role(c.Admin.SystemStats, models.RoleAdmin))
	routers.Post("/api/admin/archive", role(c.Admin.Archive, models.RoleAdmin))
	routers.Get("/api/admin/archive/{name}", role(c.Admin.DownloadArchive, models.RoleAdmin))

	return routers
}
