// controller/renewal_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	echo_errors "github.com/pmb-ti/accountrenewal/errors"
	logger "github.com/pmb-ti/accountrenewal/logging"
	"github.com/pmb-ti/accountrenewal/model"
	"github.com/pmb-ti/accountrenewal/service"
	"github.com/pmb-ti/accountrenewal/util"
)

type RenewalController struct {
	renewalService service.IRenewalService
}

func NewRenewalController(renewalService service.IRenewalService) *RenewalController {
	return &RenewalController{
		renewalService: renewalService,
	}
}

// RenewalRequest is the body of POST /renewals. Login is validated by the
// service so that an empty login yields a report instead of a binding error.
type RenewalRequest struct {
	Login          string `json:"login"`
	Domain         string `json:"domain" binding:"required"`
	Classification string `json:"classification" binding:"required"`
}

// RegisterRoutes registers the API routes
func (rc *RenewalController) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/renewals", rc.RenewAccount)

	accounts := r.Group("/accounts")
	{
		accounts.GET("/:domain/:login", rc.GetAccount)
	}
}

// RenewAccount endpoint
func (rc *RenewalController) RenewAccount(c *gin.Context) {
	var req RenewalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid renewal request", err)
		return
	}

	classification, err := model.ParseClassification(req.Classification)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid classification", err)
		return
	}

	report, err := rc.renewalService.Execute(c.Request.Context(), req.Login, model.NormalizeDomainID(req.Domain), classification)
	if err != nil {
		if errors.Is(err, echo_errors.ErrInvalidClassification) {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid classification", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to renew account", echo_errors.ErrInternalServer)
		}
		return
	}

	logger.Debug("Renewal request served",
		zap.String("request_id", util.RequestIDFromContext(c.Request.Context())),
		zap.String("kind", string(report.Kind)))
	c.JSON(statusForOutcome(report.Kind), report)
}

// GetAccount endpoint
func (rc *RenewalController) GetAccount(c *gin.Context) {
	domain := model.NormalizeDomainID(c.Param("domain"))
	login := c.Param("login")

	view, err := rc.renewalService.Lookup(c.Request.Context(), login, domain)
	if err != nil {
		switch {
		case errors.Is(err, echo_errors.ErrValidation):
			util.RespondWithError(c, http.StatusBadRequest, util.MsgLoginRequired, err)
		case errors.Is(err, echo_errors.ErrAccountNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Account not found", err)
		case errors.Is(err, echo_errors.ErrDirectoryFault):
			util.RespondWithError(c, http.StatusBadGateway, "Directory unavailable", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to get account", echo_errors.ErrInternalServer)
		}
		return
	}

	c.JSON(http.StatusOK, view)
}

func statusForOutcome(kind model.OutcomeKind) int {
	switch kind {
	case model.OutcomeSuccess:
		return http.StatusOK
	case model.OutcomeValidationError:
		return http.StatusBadRequest
	case model.OutcomeAccountNotFound:
		return http.StatusNotFound
	case model.OutcomeRenewalRefused:
		return http.StatusUnprocessableEntity
	case model.OutcomeDirectoryFault:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
