package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/tipfolio/internal/importer"
	tipdomain "github.com/smallbiznis/tipfolio/internal/tip/domain"
)

type importRequest struct {
	Text string `json:"text"`
}

type candidateResponse struct {
	RawLine string `json:"raw_line"`
	Date    string `json:"date"`
	Amount  string `json:"amount"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func toCandidateResponses(candidates []*importer.Candidate) []candidateResponse {
	out := make([]candidateResponse, 0, len(candidates))
	for _, cand := range candidates {
		out = append(out, candidateResponse{
			RawLine: cand.RawLine,
			Date:    tipdomain.DateISO(cand.Date),
			Amount:  tipdomain.FormatMajor(cand.AmountMinor),
			Status:  string(cand.Status),
			Message: cand.Message,
		})
	}
	return out
}

// HandleImport parses pasted text and persists every valid candidate.
func (s *Server) HandleImport(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.importer.Import(c.Request.Context(), currentUser(c).ID, req.Text)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if len(result.Candidates) == 0 {
		AbortWithError(c, newValidationError("text", "no_candidates", "no valid date/amount pairs found"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success_count": result.SuccessCount,
		"candidates":    toCandidateResponses(result.Candidates),
		"skipped_lines": result.SkippedLines,
		"clean":         result.Clean,
	})
}

// HandleImportPreview parses without persisting so the user can review
// candidates first.
func (s *Server) HandleImportPreview(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	parsed, err := s.importer.Preview(req.Text)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"candidates":    toCandidateResponses(parsed.Candidates),
		"skipped_lines": parsed.SkippedLines,
	})
}
