// Package http provides http transport for chat activity
package http

import (
	stdhttp "net/http"
	"sort"
	"strconv"
	"time"

	"yellowboard/internal/modkit/httpkit"
	perr "yellowboard/internal/platform/errors"
	"yellowboard/internal/services/activity/domain"
)

// Register mounts activity endpoints on the given router
func Register(r httpkit.Router, reader domain.ReaderPort) {
	h := &handlers{reader: reader}

	httpkit.Get(r, "/user", h.user)
	httpkit.Get(r, "/totals", h.totals)
}

type handlers struct{ reader domain.ReaderPort }

// SessionDTO is one scored 3-hour bucket
// swagger:model
type SessionDTO struct {
	Messages int     `json:"messages" example:"7"`
	Score    float64 `json:"score"    example:"8.2071"`
}

// DayDTO is one participant day
// swagger:model
type DayDTO struct {
	Date     string                `json:"date"  example:"2025-04-23"`
	Total    float64               `json:"total" example:"12.5"`
	Sessions map[string]SessionDTO `json:"sessions"`
}

// TotalDTO is one participant's summed window score
// swagger:model
type TotalDTO struct {
	ChatID int64   `json:"chat_id" example:"123456789"`
	Total  float64 `json:"total"   example:"44.25"`
}

func dateRange(r *stdhttp.Request) (since, until string, err error) {
	q := r.URL.Query()
	since, until = q.Get("since"), q.Get("until")
	if until == "" {
		until = time.Now().UTC().Format("2006-01-02")
	}
	if since == "" {
		since = "1970-01-01"
	}
	for _, d := range []string{since, until} {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return "", "", perr.InvalidArgf("dates must be YYYY-MM-DD")
		}
	}
	return since, until, nil
}

// swagger:route GET /activity/user Activity activityUser
// @Summary Scored activity days for one participant
// @Tags Activity
// @Produce json
// @Param chat_id query int true "participant chat id"
// @Param since query string false "window start, YYYY-MM-DD"
// @Param until query string false "window end, YYYY-MM-DD"
// @Success 200 {array} DayDTO "ok"
// @Router /activity/user [get]
func (h *handlers) user(r *stdhttp.Request) (any, error) {
	chatID, err := strconv.ParseInt(r.URL.Query().Get("chat_id"), 10, 64)
	if err != nil {
		return nil, perr.InvalidArgf("chat_id must be an integer")
	}
	since, until, err := dateRange(r)
	if err != nil {
		return nil, err
	}

	records, err := h.reader.ForParticipant(r.Context(), chatID, since, until)
	if err != nil {
		return nil, err
	}

	out := make([]DayDTO, 0, len(records))
	for _, rec := range records {
		day := DayDTO{
			Date:     rec.Date,
			Total:    rec.Total,
			Sessions: make(map[string]SessionDTO, len(rec.Sessions)),
		}
		for label, st := range rec.Sessions {
			day.Sessions[label] = SessionDTO{Messages: st.Messages, Score: st.Score}
		}
		out = append(out, day)
	}
	return out, nil
}

// swagger:route GET /activity/totals Activity activityTotals
// @Summary Summed activity score per participant over a window
// @Tags Activity
// @Produce json
// @Param since query string false "window start, YYYY-MM-DD"
// @Param until query string false "window end, YYYY-MM-DD"
// @Success 200 {array} TotalDTO "ok"
// @Router /activity/totals [get]
func (h *handlers) totals(r *stdhttp.Request) (any, error) {
	since, until, err := dateRange(r)
	if err != nil {
		return nil, err
	}

	totals, err := h.reader.TotalsInWindow(r.Context(), since, until)
	if err != nil {
		return nil, err
	}

	out := make([]TotalDTO, 0, len(totals))
	for chatID, total := range totals {
		out = append(out, TotalDTO{ChatID: chatID, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].ChatID < out[j].ChatID
	})
	return out, nil
}
