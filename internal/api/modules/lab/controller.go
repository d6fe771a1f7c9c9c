package lab

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imfe-lab/aulalab/internal/dialogue"
	"github.com/imfe-lab/aulalab/internal/index"
	"github.com/imfe-lab/aulalab/internal/session"
	"github.com/imfe-lab/aulalab/pkg/sdk"
)

// maxUploadBytes bounds the course-notes upload (32 MiB)
const maxUploadBytes = 32 << 20

// CreateSession handles POST requests to set up a new lab session from the
// multipart setup form: course_code, group_id, participants, file (PDF)
func CreateSession(c *gin.Context) {
	courseCode := c.PostForm("course_code")
	groupID := c.PostForm("group_id")
	participants := c.PostForm("participants")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Course notes PDF is required", err).AsGinResponse())
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Course notes PDF is too large", nil).AsGinResponse())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Could not open uploaded file", err).AsGinResponse())
		return
	}
	defer file.Close()

	document, err := io.ReadAll(file)
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Could not read uploaded file", err).AsGinResponse())
		return
	}

	// Build the index and activate the session
	service := GetService()
	sess, err := service.CreateSession(c.Request.Context(), courseCode, groupID, participants, document)
	if err != nil {
		switch {
		case errors.Is(err, index.ErrDecode), errors.Is(err, index.ErrEmptyDocument):
			c.JSON(sdk.NewErrorResponse(http.StatusUnprocessableEntity, "Could not process the course notes", err).AsGinResponse())
		case errors.Is(err, index.ErrEmbeddingUnavailable):
			c.JSON(sdk.NewErrorResponse(http.StatusBadGateway, "Embedding service unavailable", err).AsGinResponse())
		case errors.Is(err, session.ErrInvalidSession):
			c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Invalid session setup", err).AsGinResponse())
		default:
			c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to create session", err).AsGinResponse())
		}
		return
	}

	c.JSON(sdk.NewSuccessResponse("Session created successfully", toSDKSession(sess)).AsGinResponse())
}

// GetSession handles GET requests to retrieve an active session by UUID
func GetSession(c *gin.Context) {
	uuid := c.Param("uuid")

	service := GetService()
	sess, err := service.FindSession(uuid)
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusNotFound, "Session not found", err).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccessResponse("Session retrieved successfully", toSDKSession(sess)).AsGinResponse())
}

// PostTurn handles POST requests to submit an explanation turn
func PostTurn(c *gin.Context) {
	uuid := c.Param("uuid")

	// Parse request body
	var req sdk.PostTurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Could not parse request body", err).AsGinResponse())
		return
	}

	service := GetService()
	turn, err := service.HandleTurn(c.Request.Context(), uuid, req.Author, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrSessionNotFound):
			c.JSON(sdk.NewErrorResponse(http.StatusNotFound, "Session not found", err).AsGinResponse())
		case errors.Is(err, dialogue.ErrInvalidAuthor), errors.Is(err, dialogue.ErrEmptyInput):
			c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Invalid turn submission", err).AsGinResponse())
		case errors.Is(err, dialogue.ErrNotReady):
			c.JSON(sdk.NewErrorResponse(http.StatusConflict, "Session setup is not complete", err).AsGinResponse())
		case errors.Is(err, dialogue.ErrGenerationFailed):
			// The turn can be resubmitted verbatim; prior turns are unaffected
			c.JSON(sdk.NewErrorResponse(http.StatusBadGateway, "Virtual student is unavailable, please retry", err).AsGinResponse())
		default:
			c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to handle turn", err).AsGinResponse())
		}
		return
	}

	c.JSON(sdk.NewSuccessResponse("Turn recorded successfully", toSDKTurn(turn)).AsGinResponse())
}

// GetTranscript handles GET requests for the session's display transcript
func GetTranscript(c *gin.Context) {
	uuid := c.Param("uuid")

	service := GetService()
	messages, err := service.Transcript(uuid)
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusNotFound, "Session not found", err).AsGinResponse())
		return
	}

	resp := sdk.TranscriptResponse{SessionID: uuid}
	for _, msg := range messages {
		resp.Messages = append(resp.Messages, sdk.TranscriptMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	c.JSON(sdk.NewSuccessResponse("Transcript retrieved successfully", resp).AsGinResponse())
}

// ExportCSV handles GET requests to download the session's research dataset
func ExportCSV(c *gin.Context) {
	uuid := c.Param("uuid")

	service := GetService()
	filename, data, err := service.ExportCSV(uuid)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			c.JSON(sdk.NewErrorResponse(http.StatusNotFound, "Session not found", err).AsGinResponse())
			return
		}
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to export session", err).AsGinResponse())
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// DeleteSession handles DELETE requests to end a session
func DeleteSession(c *gin.Context) {
	uuid := c.Param("uuid")

	service := GetService()
	sess, err := service.RemoveSession(uuid)
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusNotFound, "Session not found", err).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccessResponse("Session ended successfully", toSDKSession(sess)).AsGinResponse())
}

// Helper method to convert an internal session to its sdk representation
func toSDKSession(sess *session.CourseSession) sdk.SessionInfo {
	passageCount := 0
	if sess.Index != nil {
		passageCount = sess.Index.Len()
	}

	return sdk.SessionInfo{
		ID:           sess.ID.String(),
		CourseCode:   sess.CourseCode,
		GroupID:      sess.GroupID,
		Participants: sess.Participants,
		PassageCount: passageCount,
		TurnCount:    sess.Log.Len(),
	}
}

// Helper method to convert an internal turn to its sdk representation
func toSDKTurn(turn session.Turn) sdk.TurnResponse {
	return sdk.TurnResponse{
		Timestamp:      turn.Timestamp,
		CourseCode:     turn.CourseCode,
		GroupID:        turn.GroupID,
		Author:         turn.Author,
		StudentMessage: turn.StudentMessage,
		AIResponse:     turn.AIResponse,
		ResponseLength: turn.ResponseLength,
	}
}
