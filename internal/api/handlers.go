package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type submitRequest struct {
	Word string `json:"word"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleProgress(c *gin.Context) {
	userID, ok := playerID(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.puzzles.Progress(c.Request.Context(), userID))
}

func (s *Server) handleWords(c *gin.Context) {
	userID, ok := playerID(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"words": s.puzzles.FoundWords(c.Request.Context(), userID)})
}

func (s *Server) handleSubmit(c *gin.Context) {
	userID, ok := playerID(c)
	if !ok {
		return
	}

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := s.players.EnsurePlayer(userID, ""); err != nil {
		s.logger.Error("Failed to ensure player exists",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.String("request_id", RequestID(c.Request.Context())),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	result := s.puzzles.SubmitWord(c.Request.Context(), userID, req.Word)
	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, result)
}

func playerID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid player id"})
		return 0, false
	}
	return id, true
}
