package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"frontdesk-go/frontdesk"
)

// NewRouter wires the front desk API routes
func NewRouter(desk *frontdesk.Desk, logger zerolog.Logger) *gin.Engine {
	apiHandler := NewAPIHandler(desk, logger)
	s := apiHandler.serialized

	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(apiHandler.log))

	api := router.Group("/api")
	{
		// Student routes
		api.GET("/students", s(apiHandler.GetAllStudents))
		api.GET("/students/:id", s(apiHandler.GetStudentByID))
		api.POST("/students", s(apiHandler.RegisterStudent))
		api.POST("/students/:id/enrolments", s(apiHandler.EnrolStudent))

		// Teacher routes
		api.GET("/teachers", s(apiHandler.GetAllTeachers))
		api.GET("/teachers/:id", s(apiHandler.GetTeacherByID))
		api.POST("/teachers", s(apiHandler.AddTeacher))

		api.GET("/search", s(apiHandler.Search))

		// Workbook routes
		api.POST("/import/students", s(apiHandler.ImportStudents))
		api.GET("/export", s(apiHandler.ExportRoster))

		api.GET("/ping", PingHandler)
	}
	return router
}
