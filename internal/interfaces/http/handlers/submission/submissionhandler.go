package submission

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"permitflow/internal/application/submission/usecases"
	"permitflow/internal/interfaces/http/middleware"
	"permitflow/internal/shared/id"
	"permitflow/internal/shared/logger"
	"permitflow/internal/shared/utils"
)

type SubmissionHandler struct {
	createUC        usecases.CreateSubmissionExecutor
	getUC           usecases.GetSubmissionExecutor
	listUC          usecases.ListSubmissionsExecutor
	updateDraftUC   usecases.UpdateDraftExecutor
	transitionUC    usecases.TransitionSubmissionExecutor
	requestPacketUC usecases.RequestPacketExecutor
	getPacketUC     usecases.GetPacketExecutor
	listEventsUC    usecases.ListEventsExecutor
	logger          logger.Interface
}

func NewSubmissionHandler(
	createUC usecases.CreateSubmissionExecutor,
	getUC usecases.GetSubmissionExecutor,
	listUC usecases.ListSubmissionsExecutor,
	updateDraftUC usecases.UpdateDraftExecutor,
	transitionUC usecases.TransitionSubmissionExecutor,
	requestPacketUC usecases.RequestPacketExecutor,
	getPacketUC usecases.GetPacketExecutor,
	listEventsUC usecases.ListEventsExecutor,
) *SubmissionHandler {
	return &SubmissionHandler{
		createUC:        createUC,
		getUC:           getUC,
		listUC:          listUC,
		updateDraftUC:   updateDraftUC,
		transitionUC:    transitionUC,
		requestPacketUC: requestPacketUC,
		getPacketUC:     getPacketUC,
		listEventsUC:    listEventsUC,
		logger:          logger.NewLogger(),
	}
}

// CreateSubmission handles POST /submissions
func (h *SubmissionHandler) CreateSubmission(c *gin.Context) {
	var req CreateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create submission", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	a, _ := middleware.GetActor(c)

	result, err := h.createUC.Execute(c.Request.Context(), req.ToCommand(a))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Submission created successfully")
}

// GetSubmission handles GET /submissions/:id
func (h *SubmissionHandler) GetSubmission(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixSubmission, "submission")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	a, _ := middleware.GetActor(c)

	result, err := h.getUC.Execute(c.Request.Context(), usecases.GetSubmissionQuery{SID: sid, Actor: a})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListSubmissions handles GET /submissions
func (h *SubmissionHandler) ListSubmissions(c *gin.Context) {
	req, err := parseListSubmissionsRequest(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	a, _ := middleware.GetActor(c)

	result, err := h.listUC.Execute(c.Request.Context(), req.ToQuery(a))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Submissions, result.Total, req.Page, req.PageSize)
}

// UpdateSubmission handles PUT /submissions/:id
func (h *SubmissionHandler) UpdateSubmission(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixSubmission, "submission")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update submission", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	a, _ := middleware.GetActor(c)

	result, err := h.updateDraftUC.Execute(c.Request.Context(), req.ToCommand(sid, a))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Submission updated successfully", result)
}

// TransitionSubmission handles POST /submissions/:id/transition
func (h *SubmissionHandler) TransitionSubmission(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixSubmission, "submission")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	a, _ := middleware.GetActor(c)

	result, err := h.transitionUC.Execute(c.Request.Context(), usecases.TransitionSubmissionCommand{
		SID:         sid,
		TargetState: req.TargetState,
		Actor:       a,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Submission transitioned successfully", result)
}

// RequestPacket handles POST /submissions/:id/packet
func (h *SubmissionHandler) RequestPacket(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixSubmission, "submission")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	a, _ := middleware.GetActor(c)

	result, err := h.requestPacketUC.Execute(c.Request.Context(), usecases.RequestPacketCommand{SID: sid, Actor: a})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.AcceptedResponse(c, result, "Packet generation queued")
}

// GetPacket handles GET /submissions/:id/packet
func (h *SubmissionHandler) GetPacket(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixSubmission, "submission")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	a, _ := middleware.GetActor(c)

	result, err := h.getPacketUC.Execute(c.Request.Context(), usecases.GetPacketQuery{SID: sid, Actor: a})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListEvents handles GET /submissions/:id/events
func (h *SubmissionHandler) ListEvents(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixSubmission, "submission")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	a, _ := middleware.GetActor(c)

	result, err := h.listEventsUC.Execute(c.Request.Context(), usecases.ListEventsQuery{SID: sid, Actor: a})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
