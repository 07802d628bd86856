package handlers

import (
	"bytes"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"frontdesk-go/frontdesk"
	"frontdesk-go/models"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// APIHandler exposes the front desk over HTTP. gin serves requests on many
// goroutines while the Desk is single-threaded, so every handler runs under mu.
type APIHandler struct {
	mu   sync.Mutex
	Desk *frontdesk.Desk
	log  zerolog.Logger
}

// NewAPIHandler creates a new APIHandler
func NewAPIHandler(desk *frontdesk.Desk, logger zerolog.Logger) *APIHandler {
	return &APIHandler{
		Desk: desk,
		log:  logger.With().Str("component", "http").Logger(),
	}
}

type registerRequest struct {
	Name       string `json:"name"`
	Instrument string `json:"instrument"`
}

type enrolRequest struct {
	Instrument string `json:"instrument"`
}

type teacherRequest struct {
	Name       string `json:"name"`
	Speciality string `json:"speciality"`
}

// serialized wraps a handler so only one request touches the Desk at a time
func (h *APIHandler) serialized(fn gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.mu.Lock()
		defer h.mu.Unlock()
		fn(c)
	}
}

// --- Student Handlers ---

// GetAllStudents handles GET /api/students
func (h *APIHandler) GetAllStudents(c *gin.Context) {
	c.JSON(http.StatusOK, h.Desk.Students())
}

// GetStudentByID handles GET /api/students/:id
func (h *APIHandler) GetStudentByID(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	student, found := h.Desk.Student(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}
	c.JSON(http.StatusOK, student)
}

// RegisterStudent handles POST /api/students
func (h *APIHandler) RegisterStudent(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	id, status := h.Desk.Register(c.Request.Context(), req.Name, req.Instrument)
	student, _ := h.Desk.Student(id)
	c.JSON(http.StatusCreated, gin.H{"student": student, "status": status})
}

// EnrolStudent handles POST /api/students/:id/enrolments
func (h *APIHandler) EnrolStudent(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req enrolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	status := h.Desk.Enrol(c.Request.Context(), id, req.Instrument)
	if status == models.EnrollStatusNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found", "status": status})
		return
	}
	student, _ := h.Desk.Student(id)
	c.JSON(http.StatusOK, gin.H{"student": student, "status": status})
}

// --- Teacher Handlers ---

// GetAllTeachers handles GET /api/teachers
func (h *APIHandler) GetAllTeachers(c *gin.Context) {
	c.JSON(http.StatusOK, h.Desk.Teachers())
}

// GetTeacherByID handles GET /api/teachers/:id
func (h *APIHandler) GetTeacherByID(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	teacher, found := h.Desk.Teacher(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Teacher not found"})
		return
	}
	c.JSON(http.StatusOK, teacher)
}

// AddTeacher handles POST /api/teachers
func (h *APIHandler) AddTeacher(c *gin.Context) {
	var req teacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	id := h.Desk.AddTeacher(c.Request.Context(), req.Name, req.Speciality)
	teacher, _ := h.Desk.Teacher(id)
	c.JSON(http.StatusCreated, teacher)
}

// --- Search Handler ---

// Search handles GET /api/search?term=
func (h *APIHandler) Search(c *gin.Context) {
	res, err := h.Desk.Lookup(c.Query("term"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a search term"})
		return
	}
	c.JSON(http.StatusOK, res)
}

// --- Import / Export Handlers ---

// ImportStudents handles POST /api/import/students
func (h *APIHandler) ImportStudents(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Error retrieving uploaded file: " + err.Error()})
		return
	}
	defer file.Close()

	h.log.Info().Str("file", header.Filename).Msg("received student import")

	importedCount, err := h.Desk.ImportStudents(c.Request.Context(), file)
	if err != nil {
		h.log.Error().Err(err).Str("file", header.Filename).Msg("student import failed")
		c.JSON(http.StatusBadRequest, gin.H{"message": "Failed to import students: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Import successful",
		"importedCount": importedCount,
	})
}

// ExportRoster handles GET /api/export
func (h *APIHandler) ExportRoster(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.Desk.ExportRoster(&buf); err != nil {
		h.log.Error().Err(err).Msg("roster export failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export roster"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="roster.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// --- Ping Handler ---

func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Pong!"})
}

// --- Utility ---

func (h *APIHandler) pathID(c *gin.Context) (int, bool) {
	id, err := frontdesk.ParseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format. Please enter a number"})
		return 0, false
	}
	return id, true
}

// RequestLogger logs each request through zerolog instead of gin's default
// stdout logger.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		var ev *zerolog.Event
		switch {
		case status >= http.StatusInternalServerError:
			ev = logger.Error()
		case status >= http.StatusBadRequest:
			ev = logger.Warn()
		default:
			ev = logger.Info()
		}
		ev.Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
