package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	tipdomain "github.com/smallbiznis/tipfolio/internal/tip/domain"
	"github.com/smallbiznis/tipfolio/pkg/db/pagination"
)

const dateLayout = "2006-01-02"

type recordTipRequest struct {
	Date   string  `json:"date" binding:"required"`
	Amount float64 `json:"amount"`
}

type tipResponse struct {
	Date        string `json:"date"`
	Amount      string `json:"amount"`
	AmountMinor int64  `json:"amount_minor"`
}

func toTipResponse(rec *tipdomain.TipRecord) tipResponse {
	return tipResponse{
		Date:        tipdomain.DateISO(rec.TipDate),
		Amount:      tipdomain.FormatMajor(rec.AmountMinor),
		AmountMinor: rec.AmountMinor,
	}
}

func (s *Server) HandleRecordTip(c *gin.Context) {
	var req recordTipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		AbortWithError(c, newValidationError("date", "invalid_date", "date must be YYYY-MM-DD"))
		return
	}

	user := currentUser(c)
	record, err := s.tipSvc.Record(c.Request.Context(), tipdomain.RecordRequest{
		UserID:      user.ID,
		Date:        date,
		AmountMinor: tipdomain.ToMinorUnits(req.Amount),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTipResponse(record))
}

type listTipsQuery struct {
	From string `form:"from"`
	To   string `form:"to"`
	pagination.Pagination
}

func (s *Server) HandleListTips(c *gin.Context) {
	var query listTipsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	req := tipdomain.ListRequest{
		UserID: currentUser(c).ID,
		Page:   query.Pagination,
	}
	if query.From != "" {
		from, err := time.Parse(dateLayout, query.From)
		if err != nil {
			AbortWithError(c, newValidationError("from", "invalid_date", "from must be YYYY-MM-DD"))
			return
		}
		req.From = &from
	}
	if query.To != "" {
		to, err := time.Parse(dateLayout, query.To)
		if err != nil {
			AbortWithError(c, newValidationError("to", "invalid_date", "to must be YYYY-MM-DD"))
			return
		}
		req.To = &to
	}

	resp, err := s.tipSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	records := make([]tipResponse, 0, len(resp.Records))
	for _, rec := range resp.Records {
		records = append(records, toTipResponse(rec))
	}
	c.JSON(http.StatusOK, gin.H{
		"records":   records,
		"page_info": resp.PageInfo,
	})
}

func (s *Server) HandleDeleteTip(c *gin.Context) {
	date, err := time.Parse(dateLayout, c.Param("date"))
	if err != nil {
		AbortWithError(c, newValidationError("date", "invalid_date", "date must be YYYY-MM-DD"))
		return
	}

	if err := s.tipSvc.Delete(c.Request.Context(), currentUser(c).ID, date); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
