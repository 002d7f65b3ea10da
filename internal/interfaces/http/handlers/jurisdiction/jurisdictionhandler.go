package jurisdiction

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"permitflow/internal/application/catalog/usecases"
	"permitflow/internal/shared/logger"
	"permitflow/internal/shared/utils"
)

type ListJurisdictionsExecutor interface {
	Execute(ctx context.Context) ([]usecases.JurisdictionDTO, error)
}

type JurisdictionHandler struct {
	listUC ListJurisdictionsExecutor
	logger logger.Interface
}

func NewJurisdictionHandler(listUC ListJurisdictionsExecutor) *JurisdictionHandler {
	return &JurisdictionHandler{
		listUC: listUC,
		logger: logger.NewLogger(),
	}
}

// ListJurisdictions handles GET /jurisdictions
func (h *JurisdictionHandler) ListJurisdictions(c *gin.Context) {
	result, err := h.listUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
