package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/nivedpm/hostelhub/internal/app/controllers"
	"github.com/nivedpm/hostelhub/internal/app/models"
	"github.com/nivedpm/hostelhub/internal/middleware"
	"github.com/nivedpm/hostelhub/internal/pkg/auth"
)

// Controllers bundles the handlers registered on the router.
type Controllers struct {
	User       *controllers.UserController
	Attendance *controllers.AttendanceController
	Messcut    *controllers.MesscutController
}

// Register mounts the API under /api/v1. Reads are public; attendance
// capture, messcut decisions and student mutations require an admin token.
func Register(router *gin.Engine, ctrl Controllers, jwtService *auth.JWTService) {
	authRequired := middleware.JWTAuth(jwtService)
	adminOnly := middleware.RoleRequired(models.RoleAdmin)

	api := router.Group("/api/v1")

	users := api.Group("/users")
	{
		users.POST("", ctrl.User.Register)
		users.POST("/login", ctrl.User.Login)
		users.GET("", ctrl.User.GetProfile)
		users.PUT("/password", ctrl.User.UpdatePassword)
		users.GET("/rooms", ctrl.User.Rooms)
		users.GET("/by-room", ctrl.User.StudentsByRoom)
		users.GET("/sems", ctrl.User.Semesters)
		users.GET("/by-sem", ctrl.User.StudentsBySemester)
	}

	students := api.Group("/students")
	{
		students.GET("", ctrl.User.AllStudents)
		students.GET("/summary", ctrl.User.Summary)
		students.GET("/map", ctrl.User.StudentMap)
		students.GET("/:id", ctrl.User.GetStudent)
		students.PUT("/:id", authRequired, adminOnly, ctrl.User.UpdateStudent)
		students.DELETE("/:id", authRequired, adminOnly, ctrl.User.DeleteStudent)
		students.PUT("/:id/photo", authRequired, adminOnly, ctrl.User.UpdatePhoto)
	}

	attendance := api.Group("/attendance")
	{
		attendance.POST("", authRequired, adminOnly, ctrl.Attendance.Save)
		attendance.GET("", ctrl.Attendance.Report)
		attendance.GET("/absentees", ctrl.Attendance.Absentees)
	}

	messcut := api.Group("/messcut")
	{
		messcut.POST("", authRequired, ctrl.Messcut.Create)
		messcut.PUT("/:id/status", authRequired, adminOnly, ctrl.Messcut.UpdateStatus)
		messcut.GET("/report", ctrl.Messcut.Report)
		messcut.GET("/student", ctrl.Messcut.StudentDetails)
	}
}
