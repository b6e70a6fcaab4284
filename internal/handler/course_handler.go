package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/elearning-backend/internal/apperror"
	"github.com/stemsi/elearning-backend/internal/model"
	"github.com/stemsi/elearning-backend/internal/repository"
	"github.com/stemsi/elearning-backend/internal/response"
	"github.com/stemsi/elearning-backend/internal/validator"
)

// CourseHandler handles the course catalog endpoints.
type CourseHandler struct {
	courseRepo *repository.CourseRepository
	log        zerolog.Logger
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(courseRepo *repository.CourseRepository, log zerolog.Logger) *CourseHandler {
	return &CourseHandler{
		courseRepo: courseRepo,
		log:        log.With().Str("component", "course_handler").Logger(),
	}
}

// ListCourses godoc
// @Summary  List all courses ordered by title
// @Tags     courses
// @Produce  json
// @Success  200 {object} response.Response{data=[]model.Course}
// @Failure  500 {object} response.Response
// @Router   /api/courses [get]
func (h *CourseHandler) ListCourses(c *gin.Context) {
	h.log.Info().Msg("Getting all courses")

	courses, err := h.courseRepo.GetAll(c.Request.Context())
	if err != nil {
		_ = c.Error(apperror.Internal(err, "An error occurred while retrieving courses"))
		return
	}

	h.log.Info().Int("course_count", len(courses)).Msg("Retrieved courses")
	response.Success(c, http.StatusOK, nonNil(courses))
}

// GetCourse godoc
// @Summary  Get a course by id
// @Tags     courses
// @Produce  json
// @Param    id  path  int  true  "Course ID"
// @Success  200 {object} response.Response{data=model.Course}
// @Failure  400 {object} response.Response
// @Failure  404 {object} response.Response
// @Failure  500 {object} response.Response
// @Router   /api/courses/{id} [get]
func (h *CourseHandler) GetCourse(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	h.log.Info().Int("course_id", id).Msg("Getting course")

	course, err := h.courseRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			h.log.Warn().Int("course_id", id).Msg("Course not found")
			_ = c.Error(apperror.CourseNotFound(id))
			return
		}
		_ = c.Error(apperror.Internal(err, "An error occurred while retrieving the course"))
		return
	}

	response.Success(c, http.StatusOK, course)
}

// CreateCourse godoc
// @Summary  Create a course
// @Tags     courses
// @Accept   json
// @Produce  json
// @Param    course  body  model.CourseRequest  true  "Course"
// @Success  201 {object} response.Response{data=model.Course}
// @Failure  400 {object} response.Response
// @Failure  429 {object} response.Response
// @Failure  500 {object} response.Response
// @Router   /api/courses [post]
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req model.CourseRequest
	if err := validator.BindJSON(c, &req); err != nil {
		h.log.Warn().Msg("Invalid payload for course creation")
		_ = c.Error(err)
		return
	}

	h.log.Info().Str("title", req.Title).Msg("Creating new course")

	created, err := h.courseRepo.Create(c.Request.Context(), req.ToCourse())
	if err != nil {
		_ = c.Error(apperror.Internal(err, "An error occurred while creating the course"))
		return
	}

	h.log.Info().Int("course_id", created.ID).Msg("Course created successfully")
	response.Created(c, courseLocation(created.ID), created)
}

// UpdateCourse godoc
// @Summary  Replace every mutable field of a course
// @Tags     courses
// @Accept   json
// @Produce  json
// @Param    id      path  int                  true  "Course ID"
// @Param    course  body  model.CourseRequest  true  "Course; id must equal the path id"
// @Success  200 {object} response.Response{data=model.Course}
// @Failure  400 {object} response.Response
// @Failure  404 {object} response.Response
// @Failure  429 {object} response.Response
// @Failure  500 {object} response.Response
// @Router   /api/courses/{id} [put]
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	h.log.Info().Int("course_id", id).Msg("Updating course")

	var req model.CourseRequest
	bindErr := validator.BindJSON(c, &req)

	var appErr *apperror.Error
	if errors.As(bindErr, &appErr) && appErr.Kind == apperror.KindInvalidPayload {
		_ = c.Error(bindErr)
		return
	}
	if req.ID != id {
		h.log.Warn().Int("url_id", id).Int("course_id", req.ID).Msg("Course ID mismatch")
		_ = c.Error(apperror.IDMismatch())
		return
	}
	if bindErr != nil {
		_ = c.Error(bindErr)
		return
	}

	updated, err := h.courseRepo.Update(c.Request.Context(), req.ToCourse())
	if err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			_ = c.Error(apperror.CourseNotFound(id))
			return
		}
		_ = c.Error(apperror.Internal(err, "An error occurred while updating the course"))
		return
	}

	h.log.Info().Int("course_id", id).Msg("Course updated successfully")
	response.Success(c, http.StatusOK, updated)
}

// DeleteCourse godoc
// @Summary  Delete a course
// @Tags     courses
// @Param    id  path  int  true  "Course ID"
// @Success  204
// @Failure  400 {object} response.Response
// @Failure  404 {object} response.Response
// @Failure  429 {object} response.Response
// @Failure  500 {object} response.Response
// @Router   /api/courses/{id} [delete]
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	h.log.Info().Int("course_id", id).Msg("Deleting course")

	deleted, err := h.courseRepo.Delete(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(apperror.Internal(err, "An error occurred while deleting the course"))
		return
	}
	if !deleted {
		_ = c.Error(apperror.CourseNotFound(id))
		return
	}

	h.log.Info().Int("course_id", id).Msg("Course deleted successfully")
	c.Status(http.StatusNoContent)
}

// ListCategories godoc
// @Summary  List one category per course, ordered
// @Tags     courses
// @Produce  json
// @Success  200 {object} response.Response{data=[]string}
// @Failure  500 {object} response.Response
// @Router   /api/courses/categories [get]
func (h *CourseHandler) ListCategories(c *gin.Context) {
	categories, err := h.courseRepo.GetCategories(c.Request.Context())
	if err != nil {
		_ = c.Error(apperror.Internal(err, "An error occurred while retrieving categories"))
		return
	}

	if categories == nil {
		categories = []string{}
	}
	response.Success(c, http.StatusOK, categories)
}

// ListByCategory godoc
// @Summary  List courses in a category (case-insensitive)
// @Tags     courses
// @Produce  json
// @Param    category  path  string  true  "Category"
// @Success  200 {object} response.Response{data=[]model.Course}
// @Failure  500 {object} response.Response
// @Router   /api/courses/category/{category} [get]
func (h *CourseHandler) ListByCategory(c *gin.Context) {
	category := c.Param("category")
	h.log.Info().Str("category", category).Msg("Getting courses for category")

	courses, err := h.courseRepo.GetByCategory(c.Request.Context(), category)
	if err != nil {
		_ = c.Error(apperror.Internal(err, "An error occurred while retrieving courses"))
		return
	}

	response.Success(c, http.StatusOK, nonNil(courses))
}

// ListPublished godoc
// @Summary  List published courses
// @Tags     courses
// @Produce  json
// @Success  200 {object} response.Response{data=[]model.Course}
// @Failure  500 {object} response.Response
// @Router   /api/courses/published [get]
func (h *CourseHandler) ListPublished(c *gin.Context) {
	h.log.Info().Msg("Getting all published courses")

	courses, err := h.courseRepo.GetPublished(c.Request.Context())
	if err != nil {
		_ = c.Error(apperror.Internal(err, "An error occurred while retrieving published courses"))
		return
	}

	response.Success(c, http.StatusOK, nonNil(courses))
}

// pathID parses the :id segment and records an InvalidID error on failure.
func pathID(c *gin.Context) (int, bool) {
	raw := c.Param("id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		_ = c.Error(apperror.InvalidID(raw))
		return 0, false
	}
	return id, true
}

func courseLocation(id int) string {
	return fmt.Sprintf("/api/courses/%d", id)
}

func nonNil(courses []model.Course) []model.Course {
	if courses == nil {
		return []model.Course{}
	}
	return courses
}
