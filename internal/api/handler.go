package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/marginlab/ccpmargin/internal/domain/dto"
	"github.com/marginlab/ccpmargin/internal/domain/models"
	"github.com/marginlab/ccpmargin/internal/ingestion"
	"github.com/marginlab/ccpmargin/internal/middleware"
	"github.com/marginlab/ccpmargin/internal/service"
	"github.com/marginlab/ccpmargin/internal/storage"
)

// Handler exposes the simulation endpoints.
//
// Responsibilities:
//   - Decode and validate request payloads
//   - Hand work to the service layer
//   - Translate snapshots into response DTOs with appropriate status codes
type Handler struct {
	svc      service.SimulationService
	repo     storage.SnapshotRepository
	defaults models.Scenario
}

// NewHandler constructs a Handler. The repo may be nil when persistence is
// disabled; in that case the read endpoints answer 503.
func NewHandler(svc service.SimulationService, repo storage.SnapshotRepository, defaults models.Scenario) *Handler {
	return &Handler{svc: svc, repo: repo, defaults: defaults}
}

// RunSimulation handles POST /api/v1/simulations.
//
// RunSimulation godoc
// @Summary      Run a margin simulation
// @Description  Prices the uploaded portfolio, nets it bilaterally and through the CCP, and returns the margin snapshot
// @Tags         simulations
// @Accept       json
// @Produce      json
// @Param        request  body      dto.SimulationRequest  true  "Base64-encoded CSV inputs plus optional scenario overrides"
// @Success      201      {object}  dto.SnapshotResponse   "Created"
// @Failure      400      {object}  dto.ErrorResponse      "Bad Request"
// @Failure      500      {object}  dto.ErrorResponse      "Internal Error"
// @Router       /api/v1/simulations [post]
func (h *Handler) RunSimulation(c *gin.Context) {
	var req dto.SimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	in, err := ingestion.LoadBase64(req.TradesCSV, req.RatesCSV, req.FXCSV)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid input files", err)
		return
	}

	sc := req.Scenario(h.defaults)
	if err := sc.Validate(); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid scenario", err)
		return
	}

	snap, err := h.svc.Run(c.Request.Context(), in, sc)
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "simulation failed", err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSnapshotResponse(snap))
}

// GetSimulation handles GET /api/v1/simulations/:run_id.
//
// GetSimulation godoc
// @Summary      Fetch a past simulation
// @Description  Returns the stored margin snapshot for one run ID
// @Tags         simulations
// @Produce      json
// @Param        run_id  path      string  true  "Run ID"
// @Success      200     {object}  dto.SnapshotResponse  "Success"
// @Failure      404     {object}  dto.ErrorResponse     "Not Found"
// @Failure      500     {object}  dto.ErrorResponse     "Internal Error"
// @Failure      503     {object}  dto.ErrorResponse     "Persistence Disabled"
// @Router       /api/v1/simulations/{run_id} [get]
func (h *Handler) GetSimulation(c *gin.Context) {
	if h.repo == nil {
		middleware.AbortWithError(c, http.StatusServiceUnavailable, "persistence disabled", nil)
		return
	}

	snap, err := h.repo.GetSnapshotByRunID(c.Param("run_id"))
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to fetch snapshot", err)
		return
	}
	if snap == nil {
		middleware.AbortWithError(c, http.StatusNotFound, "run not found", nil)
		return
	}

	c.JSON(http.StatusOK, dto.NewSnapshotResponse(snap))
}

// ListSimulations handles GET /api/v1/simulations.
//
// ListSimulations godoc
// @Summary      List recent simulations
// @Description  Returns the most recent margin snapshots, newest first
// @Tags         simulations
// @Produce      json
// @Param        limit  query     int  false  "Maximum rows to return (default 20)"
// @Success      200    {array}   dto.SnapshotResponse  "Success"
// @Failure      400    {object}  dto.ErrorResponse     "Bad Request"
// @Failure      500    {object}  dto.ErrorResponse     "Internal Error"
// @Failure      503    {object}  dto.ErrorResponse     "Persistence Disabled"
// @Router       /api/v1/simulations [get]
func (h *Handler) ListSimulations(c *gin.Context) {
	if h.repo == nil {
		middleware.AbortWithError(c, http.StatusServiceUnavailable, "persistence disabled", nil)
		return
	}

	limit := 0
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			middleware.AbortWithError(c, http.StatusBadRequest, "invalid limit", err)
			return
		}
		limit = n
	}

	snaps, err := h.repo.ListSnapshots(limit)
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to list snapshots", err)
		return
	}

	out := make([]dto.SnapshotResponse, 0, len(snaps))
	for i := range snaps {
		out = append(out, dto.NewSnapshotResponse(&snaps[i]))
	}
	c.JSON(http.StatusOK, out)
}
