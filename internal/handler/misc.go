package handler

import (
	"net/http"
	"time"

	"github.com/LevanIlashvili/stylish-go-app/internal/leaderboard"
	"github.com/LevanIlashvili/stylish-go-app/internal/notify"
)

// InfoHandler serves read-only screens that never fail.
type InfoHandler struct {
	ranking leaderboard.Source
	feed    *notify.Feed
}

// NewInfoHandler creates a new InfoHandler
func NewInfoHandler(ranking leaderboard.Source, feed *notify.Feed) *InfoHandler {
	return &InfoHandler{ranking: ranking, feed: feed}
}

// Leaderboard handles GET /leaderboard
// @Summary      Leaderboard
// @Description  Top players by points. Empty when the data source is unavailable.
// @Tags         info
// @Produce      json
// @Success      200  {array}   model.LeaderboardEntry
// @Router       /leaderboard [get]
func (h *InfoHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	entries, err := h.ranking.GetLeaderboard(r.Context())
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// Notifications handles GET /notifications
// @Summary      Notifications
// @Description  Recent toast notifications, oldest first
// @Tags         info
// @Produce      json
// @Param        since  query     string  false  "Only newer than this RFC 3339 time"
// @Success      200    {array}   notify.Notification
// @Failure      400    {object}  model.ErrorResponse
// @Router       /notifications [get]
func (h *InfoHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}

	items := h.feed.Recent()
	if sinceStr := r.URL.Query().Get("since"); sinceStr != "" {
		since, err := time.Parse(time.RFC3339Nano, sinceStr)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid since: use RFC 3339 (e.g. 2006-01-02T15:04:05Z)"})
			return
		}
		items = h.feed.Since(since)
	}
	if items == nil {
		items = []notify.Notification{}
	}
	writeJSON(w, http.StatusOK, items)
}
