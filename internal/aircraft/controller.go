package aircraft

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"skybook/internal/shared/utils/response"
)

type Controller interface {
	CreateTemplate(c *gin.Context)
	GetTemplate(c *gin.Context)
	GetAllTemplates(c *gin.Context)
	CreateAircraft(c *gin.Context)
	GetAircraft(c *gin.Context)
	GetAllAircraft(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreateTemplate(c *gin.Context) {
	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	template, err := ctrl.service.CreateTemplate(c.Request.Context(), req)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Seat template created successfully", template, nil)
}

func (ctrl *controller) GetTemplate(c *gin.Context) {
	templateID, err := uuid.Parse(c.Param("templateId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid template ID", nil, err.Error())
		return
	}

	template, err := ctrl.service.GetTemplate(c.Request.Context(), templateID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrTemplateNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Seat template retrieved successfully", gin.H{
		"template": template,
		"seats":    ExpandTemplate(template),
	}, nil)
}

func (ctrl *controller) GetAllTemplates(c *gin.Context) {
	templates, err := ctrl.service.GetAllTemplates(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Seat templates retrieved successfully", templates, nil)
}

func (ctrl *controller) CreateAircraft(c *gin.Context) {
	var req CreateAircraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	ac, err := ctrl.service.CreateAircraft(c.Request.Context(), req)
	if err != nil {
		statusCode := http.StatusBadRequest
		if errors.Is(err, ErrTemplateNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Aircraft created successfully", ac, nil)
}

func (ctrl *controller) GetAircraft(c *gin.Context) {
	aircraftID, err := uuid.Parse(c.Param("aircraftId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid aircraft ID", nil, err.Error())
		return
	}

	ac, err := ctrl.service.GetAircraft(c.Request.Context(), aircraftID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrAircraftNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Aircraft retrieved successfully", ac, nil)
}

func (ctrl *controller) GetAllAircraft(c *gin.Context) {
	list, err := ctrl.service.GetAllAircraft(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Aircraft retrieved successfully", list, nil)
}
