package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) HandleProjections(c *gin.Context) {
	projection, err := s.projectionSvc.Project(c.Request.Context(), currentUser(c).ID, s.clock.Now())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, projection)
}

type assistantRequest struct {
	Question string `json:"question" binding:"required"`
}

func (s *Server) HandleAssistant(c *gin.Context) {
	var req assistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	answer, err := s.assistantSvc.Ask(c.Request.Context(), currentUser(c).ID, req.Question, s.clock.Now())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, answer)
}
