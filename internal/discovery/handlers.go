// internal/discovery/handlers.go

package discovery

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/joinember/ember-backend/internal/common/utils"
)

type Handler struct {
	service Service
	hub     *Hub
}

func NewHandler(service Service, hub *Hub) *Handler {
	return &Handler{service: service, hub: hub}
}

func (h *Handler) GetFeed(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	feed, err := h.service.GetFeed(r.Context(), userID, page, limit)
	if err != nil {
		h.respondDiscoveryError(w, err, "Failed to get discovery feed")
		return
	}

	utils.RespondWithData(w, http.StatusOK, feed)
}

func (h *Handler) GetNextUser(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	next, err := h.service.GetNextUser(r.Context(), userID)
	if err != nil {
		h.respondDiscoveryError(w, err, "Failed to get next user")
		return
	}

	utils.RespondWithData(w, http.StatusOK, next)
}

func (h *Handler) Like(w http.ResponseWriter, r *http.Request) {
	h.recordInteraction(w, r, InteractionLike)
}

func (h *Handler) Pass(w http.ResponseWriter, r *http.Request) {
	h.recordInteraction(w, r, InteractionPass)
}

func (h *Handler) recordInteraction(w http.ResponseWriter, r *http.Request, defaultType InteractionType) {
	userID := r.Context().Value("userID").(int64)

	var req InteractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	// The like endpoint accepts an optional type upgrade to superlike; the
	// pass endpoint ignores the field.
	interactionType := defaultType
	if defaultType == InteractionLike && req.Type != "" {
		interactionType = InteractionType(req.Type)
	}

	result, err := h.service.RecordInteraction(r.Context(), userID, req.TargetUserID, interactionType)
	if err != nil {
		h.respondDiscoveryError(w, err, "Failed to record interaction")
		return
	}

	utils.RespondWithData(w, http.StatusCreated, result)
}

func (h *Handler) GetMatches(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	matches, err := h.service.GetMatches(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get matches")
		return
	}

	utils.RespondWithData(w, http.StatusOK, matches)
}

func (h *Handler) Unmatch(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	matchID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid match ID")
		return
	}

	if err := h.service.Unmatch(r.Context(), userID, matchID); err != nil {
		h.respondDiscoveryError(w, err, "Failed to unmatch")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Unmatched successfully",
	})
}

func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	h.hub.ServeWS(w, r)
}

// respondDiscoveryError maps the service sentinels onto HTTP statuses and
// diagnostic flags. The profile-gate failures carry flags the client uses to
// route the user back into onboarding.
func (h *Handler) respondDiscoveryError(w http.ResponseWriter, err error, fallback string) {
	var incomplete *IncompleteProfileError
	switch {
	case errors.Is(err, ErrRequiresBasicInfo):
		utils.RespondWithErrorFlags(w, http.StatusForbidden, err.Error(), map[string]interface{}{
			"requires_basic_info": true,
		})
	case errors.As(err, &incomplete):
		utils.RespondWithErrorFlags(w, http.StatusForbidden, err.Error(), map[string]interface{}{
			"requires_profile_completion": true,
			"missing_fields":              incomplete.MissingFields,
		})
	case errors.Is(err, ErrCannotLikeSelf), errors.Is(err, ErrInvalidInteractionType):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrAlreadyInteracted):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrMatchNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrUnauthorized):
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrTooManySwipes):
		utils.RespondWithError(w, http.StatusTooManyRequests, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, fallback)
	}
}
