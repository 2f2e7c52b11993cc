package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/booking-api/internal/dto"
	"github.com/BruksfildServices01/booking-api/internal/httperr"
	"github.com/BruksfildServices01/booking-api/internal/middleware"
	"github.com/BruksfildServices01/booking-api/internal/usecase/staff"
)

const maxImageBytes = 5 << 20

type AuthHandler struct {
	login       *staff.Login
	register    *staff.Register
	getEmployee *staff.GetEmployee
	imageURL    func(string) string
}

func NewAuthHandler(
	login *staff.Login,
	register *staff.Register,
	getEmployee *staff.GetEmployee,
	imageURL func(string) string,
) *AuthHandler {
	return &AuthHandler{
		login:       login,
		register:    register,
		getEmployee: getEmployee,
		imageURL:    imageURL,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" form:"name" binding:"required"`
	Job      string `json:"job" form:"job"`
	Email    string `json:"email" form:"email" binding:"required,email"`
	Phone    string `json:"phone" form:"phone"`
	Password string `json:"password" form:"password" binding:"required,min=6"`
	IsAdmin  bool   `json:"is_admin" form:"is_admin"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

// Register accepts JSON or multipart/form-data; the multipart form may
// carry an "image" file.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	var image []byte

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := c.ShouldBind(&req); err != nil {
			httperr.BadRequest(c, "invalid_request", err.Error())
			return
		}

		if fh, err := c.FormFile("image"); err == nil {
			if fh.Size > maxImageBytes {
				httperr.BadRequest(c, "image_too_large", "Image must be at most 5 MB.")
				return
			}
			f, err := fh.Open()
			if err != nil {
				httperr.BadRequest(c, "invalid_image", "Could not read the uploaded image.")
				return
			}
			image, err = io.ReadAll(io.LimitReader(f, maxImageBytes))
			f.Close()
			if err != nil {
				httperr.BadRequest(c, "invalid_image", "Could not read the uploaded image.")
				return
			}
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	emp, err := h.register.Execute(c.Request.Context(), staff.RegisterInput{
		Name:     req.Name,
		Job:      req.Job,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		IsAdmin:  req.IsAdmin,
		Image:    image,
		ActorID:  actorID(c),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"employee": dto.EmployeeFrom(*emp, h.imageURL),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	out, err := h.login.Execute(c.Request.Context(), staff.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":    out.Token,
		"employee": dto.EmployeeFrom(*out.Employee, h.imageURL),
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	id, ok := middleware.EmployeeID(c)
	if !ok {
		httperr.Unauthorized(c, "employee_not_in_context", "Not authenticated.")
		return
	}

	emp, err := h.getEmployee.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"employee": dto.EmployeeFrom(*emp, h.imageURL),
	})
}
