// Package http provides http transport for manual contributions
package http

import (
	stdhttp "net/http"
	"strconv"
	"time"

	"yellowboard/internal/modkit/httpkit"
	perr "yellowboard/internal/platform/errors"
	"yellowboard/internal/services/contrib/domain"
)

// Register mounts contribution admin endpoints on the given router
func Register(r httpkit.Router, reader domain.ReaderPort, writer domain.WriterPort) {
	h := &handlers{reader: reader, writer: writer}

	httpkit.Get(r, "/", h.list)
	httpkit.PostJSON(r, "/", h.add)
	httpkit.PutJSON(r, "/", h.update)
	httpkit.Delete(r, "/", h.remove)
}

type handlers struct {
	reader domain.ReaderPort
	writer domain.WriterPort
}

// AddContributionRequest records a new manual contribution. A zero
// points value falls back to the category default weight
// swagger:model
type AddContributionRequest struct {
	ChatID     int64   `json:"chat_id"     validate:"required"        example:"123456789"`
	Category   string  `json:"category"    validate:"required"        example:"hosting_ama"`
	Points     float64 `json:"points"      validate:"omitempty,gte=0" example:"10"`
	Note       string  `json:"note"        validate:"max=500"         example:"hosted the April AMA"`
	RecordedBy string  `json:"recorded_by" validate:"required"        example:"admin"`
}

// UpdateContributionRequest rewrites the points and note of an
// existing contribution
// swagger:model
type UpdateContributionRequest struct {
	ID     int64   `json:"id"     validate:"required"      example:"42"`
	Points float64 `json:"points" validate:"required,gt=0" example:"12"`
	Note   string  `json:"note"   validate:"max=500"       example:"points corrected"`
}

// ContributionCreated carries the id of a newly recorded contribution
// swagger:model
type ContributionCreated struct {
	ID int64 `json:"id" example:"42"`
}

// ContributionDTO is one recorded contribution
// swagger:model
type ContributionDTO struct {
	ID         int64   `json:"id"          example:"42"`
	ChatID     int64   `json:"chat_id"     example:"123456789"`
	Category   string  `json:"category"    example:"hosting_ama"`
	Points     float64 `json:"points"      example:"10"`
	Note       string  `json:"note"        example:"hosted the April AMA"`
	RecordedBy string  `json:"recorded_by" example:"admin"`
	CreatedAt  string  `json:"created_at"  example:"2025-04-23T00:05:00Z"`
}

func toDTO(c domain.Contribution) ContributionDTO {
	return ContributionDTO{
		ID:         c.ID,
		ChatID:     c.ChatID,
		Category:   string(c.Category),
		Points:     c.Points,
		Note:       c.Note,
		RecordedBy: c.RecordedBy,
		CreatedAt:  c.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toDTOs(items []domain.Contribution) []ContributionDTO {
	out := make([]ContributionDTO, 0, len(items))
	for _, c := range items {
		out = append(out, toDTO(c))
	}
	return out
}

func chatIDParam(r *stdhttp.Request) (int64, error) {
	raw := r.URL.Query().Get("chat_id")
	if raw == "" {
		return 0, perr.InvalidArgf("chat_id query parameter is required")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, perr.InvalidArgf("chat_id must be a positive integer")
	}
	return id, nil
}

func idParam(r *stdhttp.Request) (int64, error) {
	raw := r.URL.Query().Get("id")
	if raw == "" {
		return 0, perr.InvalidArgf("id query parameter is required")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, perr.InvalidArgf("id must be a positive integer")
	}
	return id, nil
}

// swagger:route GET /contrib Contrib contribList
// @Summary Contributions recorded for one participant, newest first
// @Tags Contrib
// @Produce json
// @Param chat_id query integer true "participant chat id"
// @Success 200 {array} ContributionDTO "ok"
// @Router /contrib [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	chatID, err := chatIDParam(r)
	if err != nil {
		return nil, err
	}
	items, err := h.reader.List(r.Context(), chatID)
	if err != nil {
		return nil, err
	}
	return toDTOs(items), nil
}

// swagger:route POST /contrib Contrib contribAdd
// @Summary Record a manual contribution
// @Tags Contrib
// @Accept json
// @Produce json
// @Param payload body AddContributionRequest true "contribution to record"
// @Success 200 type ContributionCreated "ok"
// @Router /contrib [post]
func (h *handlers) add(r *stdhttp.Request, in AddContributionRequest) (any, error) {
	cat := domain.Category(in.Category)
	if !cat.Valid() {
		return nil, perr.InvalidArgf("unknown category %q", in.Category)
	}
	id, err := h.writer.Add(r.Context(), domain.Contribution{
		ChatID:     in.ChatID,
		Category:   cat,
		Points:     in.Points,
		Note:       in.Note,
		RecordedBy: in.RecordedBy,
	})
	if err != nil {
		return nil, err
	}
	return ContributionCreated{ID: id}, nil
}

// swagger:route PUT /contrib Contrib contribUpdate
// @Summary Rewrite the points and note of a contribution
// @Tags Contrib
// @Accept json
// @Produce json
// @Param payload body UpdateContributionRequest true "fields to rewrite"
// @Success 200 type ContributionCreated "ok"
// @Router /contrib [put]
func (h *handlers) update(r *stdhttp.Request, in UpdateContributionRequest) (any, error) {
	if err := h.writer.Update(r.Context(), in.ID, in.Points, in.Note); err != nil {
		return nil, err
	}
	return ContributionCreated{ID: in.ID}, nil
}

// swagger:route DELETE /contrib Contrib contribRemove
// @Summary Delete a contribution by id
// @Tags Contrib
// @Produce json
// @Param id query integer true "contribution id"
// @Success 200 type ContributionCreated "ok"
// @Router /contrib [delete]
func (h *handlers) remove(r *stdhttp.Request) (any, error) {
	id, err := idParam(r)
	if err != nil {
		return nil, err
	}
	if err := h.writer.Remove(r.Context(), id); err != nil {
		return nil, err
	}
	return ContributionCreated{ID: id}, nil
}
