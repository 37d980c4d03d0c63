// Package http provides http transport for the leaderboard
package http

import (
	stdhttp "net/http"
	"time"

	"yellowboard/internal/modkit/httpkit"
	perr "yellowboard/internal/platform/errors"
	"yellowboard/internal/services/board/domain"
)

// Register mounts leaderboard endpoints on the given router
func Register(r httpkit.Router, reader domain.ReaderPort) {
	h := &handlers{reader: reader}

	httpkit.Get(r, "/live", h.live)
	httpkit.Get(r, "/history", h.history)
	httpkit.Get(r, "/dates", h.dates)
}

type handlers struct{ reader domain.ReaderPort }

// RowDTO is one leaderboard position
// swagger:model
type RowDTO struct {
	Rank        int    `json:"rank"          example:"1"`
	ChatID      int64  `json:"chat_id"       example:"123456789"`
	DisplayName string `json:"display_name"  example:"Ana"`
	Handle      string `json:"handle"        example:"ana_web3"`

	TweetsText   int     `json:"tweets_text"   example:"4"`
	TweetsImage  int     `json:"tweets_image"  example:"2"`
	TweetsVideo  int     `json:"tweets_video"  example:"1"`
	TweetsThread int     `json:"tweets_thread" example:"1"`
	PostScore    float64 `json:"post_score"    example:"16"`

	RetweetsMade    int     `json:"retweets_made"    example:"3"`
	CommentsMade    int     `json:"comments_made"    example:"5"`
	EngagementScore float64 `json:"engagement_score" example:"16"`

	ActivityScore float64 `json:"activity_score" example:"12.5"`

	ContribCounts map[string]int `json:"contrib_counts"`
	ContribScore  float64        `json:"contrib_score" example:"10"`

	GrandTotal float64 `json:"grand_total" example:"54.5"`
}

// SnapshotDTO is one dated leaderboard snapshot
// swagger:model
type SnapshotDTO struct {
	Date        string   `json:"date"         example:"2025-04-23"`
	RunID       string   `json:"run_id"       example:"4b4e2b6e-6f3c-4b4f-9a2e-1f0b1c2d3e4f"`
	GeneratedAt string   `json:"generated_at" example:"2025-04-23T00:05:00Z"`
	Rows        []RowDTO `json:"rows"`
}

func toDTO(r domain.Row) RowDTO {
	return RowDTO{
		Rank:        r.Rank,
		ChatID:      r.ChatID,
		DisplayName: r.DisplayName,
		Handle:      r.Handle,

		TweetsText:   r.TweetsText,
		TweetsImage:  r.TweetsImage,
		TweetsVideo:  r.TweetsVideo,
		TweetsThread: r.TweetsThread,
		PostScore:    r.PostScore,

		RetweetsMade:    r.RetweetsMade,
		CommentsMade:    r.CommentsMade,
		EngagementScore: r.EngagementScore,

		ActivityScore: r.ActivityScore,

		ContribCounts: map[string]int{
			"partner_introduction":   r.Contrib.PartnerIntroduction,
			"hosting_ama":            r.Contrib.HostingAMA,
			"recruitment_ambassador": r.Contrib.RecruitmentAmbassador,
			"product_feedback":       r.Contrib.ProductFeedback,
			"recruitment_investor":   r.Contrib.RecruitmentInvestor,
		},
		ContribScore: r.ContribScore,

		GrandTotal: r.GrandTotal,
	}
}

func toDTOs(rows []domain.Row) []RowDTO {
	out := make([]RowDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, toDTO(r))
	}
	return out
}

func dateParam(r *stdhttp.Request) (string, error) {
	date := r.URL.Query().Get("date")
	if date == "" {
		return "", perr.InvalidArgf("date query parameter is required")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return "", perr.InvalidArgf("date must be YYYY-MM-DD")
	}
	return date, nil
}

// swagger:route GET /board/live Board boardLive
// @Summary Current leaderboard in rank order
// @Tags Board
// @Produce json
// @Success 200 {array} RowDTO "ok"
// @Router /board/live [get]
func (h *handlers) live(r *stdhttp.Request) (any, error) {
	rows, err := h.reader.Live(r.Context())
	if err != nil {
		return nil, err
	}
	return toDTOs(rows), nil
}

// swagger:route GET /board/history Board boardHistory
// @Summary Leaderboard snapshot taken on one date
// @Tags Board
// @Produce json
// @Param date query string true "snapshot date, YYYY-MM-DD"
// @Success 200 type SnapshotDTO "ok"
// @Router /board/history [get]
func (h *handlers) history(r *stdhttp.Request) (any, error) {
	date, err := dateParam(r)
	if err != nil {
		return nil, err
	}
	snap, err := h.reader.History(r.Context(), date)
	if err != nil {
		return nil, err
	}
	return SnapshotDTO{
		Date:        snap.Date,
		RunID:       snap.RunID.String(),
		GeneratedAt: snap.GeneratedAt.UTC().Format(time.RFC3339),
		Rows:        toDTOs(snap.Rows),
	}, nil
}

// swagger:route GET /board/dates Board boardDates
// @Summary Snapshot dates, newest first
// @Tags Board
// @Produce json
// @Success 200 {array} string "ok"
// @Router /board/dates [get]
func (h *handlers) dates(r *stdhttp.Request) (any, error) {
	return h.reader.Dates(r.Context())
}
