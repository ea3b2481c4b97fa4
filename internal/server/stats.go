package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) HandleStatsSummary(c *gin.Context) {
	summary, err := s.statsSvc.Summary(c.Request.Context(), currentUser(c).ID, s.clock.Now())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
