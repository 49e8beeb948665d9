package gateway

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const defaultHistoryLimit = 20

type historyQuery struct {
	Limit int64 `form:"limit" json:"limit" validate:"omitempty,min=1,max=100"`
}

type historyEntry struct {
	Type string                 `json:"type"`
	Data map[string]interface{} `json:"data"`
	At   time.Time              `json:"at"`
}

// cartHistory lists the client's journaled cart and order events, newest first.
func (g *Gateway) cartHistory(c *gin.Context) {
	if g.journal == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "history_unavailable"})
		return
	}

	var q historyQuery
	if err := BindQueryAndValidate(c, &q, g.validate); err != nil {
		return
	}
	if q.Limit == 0 {
		q.Limit = defaultHistoryLimit
	}

	logs, err := g.journal.GetAuditLogs(c.Request.Context(), clientID(c), q.Limit)
	if err != nil {
		g.writeError(c, err, nil)
		return
	}

	events := make([]historyEntry, len(logs))
	for i, l := range logs {
		events[i] = historyEntry{Type: l.Action, Data: l.Data, At: l.CreatedAt}
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}
