package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nivedpm/hostelhub/internal/app/models/dto"
	"github.com/nivedpm/hostelhub/internal/app/services"
	"github.com/nivedpm/hostelhub/internal/middleware"
	"github.com/nivedpm/hostelhub/internal/pkg/apperrors"
)

// UserController handles user and student endpoints
type UserController struct {
	userService *services.UserService
}

// NewUserController creates a new user controller
func NewUserController(userService *services.UserService) *UserController {
	return &UserController{userService: userService}
}

func studentID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperrors.NewBadRequestError("Invalid student id")
	}
	return id, nil
}

// Register godoc
// @Summary Register a new user
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.RegisterUserRequest true "Registration payload"
// @Success 201 {object} dto.APIResponse
// @Router /users [post]
func (uc *UserController) Register(c *gin.Context) {
	var req dto.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequestError("Invalid request body"))
		return
	}

	user, err := uc.userService.Register(c.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessResponse(user, "User registered successfully"))
}

// Login godoc
// @Summary Authenticate a user
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse}
// @Router /users/login [post]
func (uc *UserController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequestError("Invalid request body"))
		return
	}

	result, err := uc.userService.Login(c.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(result, "Login successful"))
}

// GetProfile godoc
// @Summary Look up a user profile by admission number
// @Tags users
// @Produce json
// @Param admissionNumber query string true "Admission number"
// @Success 200 {object} dto.APIResponse{data=dto.UserProfileResponse}
// @Router /users [get]
func (uc *UserController) GetProfile(c *gin.Context) {
	profile, err := uc.userService.GetByAdmission(c.Request.Context(), c.Query("admissionNumber"))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(profile, ""))
}

// UpdatePassword godoc
// @Summary Change a user's password
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.UpdatePasswordRequest true "Password change payload"
// @Success 200 {object} dto.APIResponse
// @Router /users/password [put]
func (uc *UserController) UpdatePassword(c *gin.Context) {
	var req dto.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequestError("Invalid request body"))
		return
	}

	if err := uc.userService.UpdatePassword(c.Request.Context(), req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewMessageResponse("Password updated successfully"))
}

// Rooms returns the distinct room numbers in use.
func (uc *UserController) Rooms(c *gin.Context) {
	rooms, err := uc.userService.Rooms(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(rooms, len(rooms)))
}

// StudentsByRoom returns one room's occupants.
func (uc *UserController) StudentsByRoom(c *gin.Context) {
	cards, err := uc.userService.StudentsByRoom(c.Request.Context(), c.Query("roomNo"))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(cards, len(cards)))
}

// Semesters returns the sorted distinct semester labels.
func (uc *UserController) Semesters(c *gin.Context) {
	sems, err := uc.userService.Semesters(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(sems, len(sems)))
}

// StudentsBySemester returns one semester's students sorted by name.
func (uc *UserController) StudentsBySemester(c *gin.Context) {
	students, err := uc.userService.StudentsBySemester(c.Request.Context(), c.Query("sem"))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(students, len(students)))
}

// AllStudents returns every student sorted by semester then name.
func (uc *UserController) AllStudents(c *gin.Context) {
	students, err := uc.userService.AllStudents(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(students, len(students)))
}

// Summary returns roster totals.
func (uc *UserController) Summary(c *gin.Context) {
	summary, err := uc.userService.Summary(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(summary, ""))
}

// StudentMap returns an admission-number-keyed map of students.
func (uc *UserController) StudentMap(c *gin.Context) {
	byAdmission, err := uc.userService.StudentMap(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(byAdmission, len(byAdmission)))
}

// GetStudent returns a single student by id.
func (uc *UserController) GetStudent(c *gin.Context) {
	id, err := studentID(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	student, err := uc.userService.GetStudent(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(student, ""))
}

// UpdateStudent applies a partial profile update to a student.
func (uc *UserController) UpdateStudent(c *gin.Context) {
	id, err := studentID(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequestError("Invalid request body"))
		return
	}

	student, err := uc.userService.UpdateStudent(c.Request.Context(), id, req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(student, "Student updated successfully"))
}

// DeleteStudent removes a student and their stored photo.
func (uc *UserController) DeleteStudent(c *gin.Context) {
	id, err := studentID(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := uc.userService.DeleteStudent(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewMessageResponse("Student deleted successfully"))
}

// UpdatePhoto godoc
// @Summary Upload a student's profile photo
// @Tags students
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Student id"
// @Param photo formData file true "Profile photo"
// @Success 200 {object} dto.APIResponse
// @Router /students/{id}/photo [put]
func (uc *UserController) UpdatePhoto(c *gin.Context) {
	id, err := studentID(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequestError("Photo file is required"))
		return
	}

	student, err := uc.userService.UpdateProfilePhoto(c.Request.Context(), id, fileHeader)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(student, "Profile photo updated"))
}
