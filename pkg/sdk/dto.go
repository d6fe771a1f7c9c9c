package sdk

import (
	"encoding/json"
	"time"
)

// StatusType marks a response as successful or failed
type StatusType string

const (
	StatusSuccess StatusType = "success"
	StatusError   StatusType = "error"
)

// ApiResponse represents a standard API response structure
type ApiResponse[T any] struct {
	Status  StatusType `json:"status"`          // Status message
	Code    int        `json:"code"`            // Status code
	Message string     `json:"message"`         // Human-readable message
	Data    T          `json:"data,omitempty"`  // Optional data field for successful responses
	Error   any        `json:"error,omitempty"` // Optional errors field for error responses
}

// AsGinResponse converts the ApiResponse to a format suitable for Gin framework
func (r ApiResponse[T]) AsGinResponse() (int, any) {
	return r.Code, r
}

// AsJSON converts the ApiResponse to a format suitable for JSON responses
func (r ApiResponse[T]) AsJSON() (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func NewSuccess(message string) ApiResponse[any] {
	return ApiResponse[any]{
		Status:  StatusSuccess,
		Code:    200,
		Message: message,
	}
}

func NewSuccessResponse[T any](message string, data T) ApiResponse[T] {
	return ApiResponse[T]{
		Status:  StatusSuccess,
		Code:    200,
		Message: message,
		Data:    data,
	}
}

func NewErrorResponse(code int, message string, err any) ApiResponse[any] {
	resp := ApiResponse[any]{
		Status:  StatusError,
		Code:    code,
		Message: message,
	}

	// Gin renders error values as empty objects, so keep the string form
	if e, ok := err.(error); ok {
		resp.Error = e.Error()
	} else {
		resp.Error = err
	}

	return resp
}

/** Requests */

// PostTurnRequest represents the request body for submitting an explanation turn
type PostTurnRequest struct {
	Author string `json:"author" binding:"required"`
	Text   string `json:"text" binding:"required"`
}

/** Responses */

// SessionInfo represents an active lab session in API responses
type SessionInfo struct {
	ID           string   `json:"id"`
	CourseCode   string   `json:"course_code"`
	GroupID      string   `json:"group_id"`
	Participants []string `json:"participants"`
	PassageCount int      `json:"passage_count"`
	TurnCount    int      `json:"turn_count"`
}

// TurnResponse represents one recorded explanation/reply exchange
type TurnResponse struct {
	Timestamp      time.Time `json:"timestamp"`
	CourseCode     string    `json:"course_code"`
	GroupID        string    `json:"group_id"`
	Author         string    `json:"author"`
	StudentMessage string    `json:"student_message"`
	AIResponse     string    `json:"ai_response"`
	ResponseLength int       `json:"response_length"`
}

// TranscriptMessage is one display message in a session transcript
type TranscriptMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// TranscriptResponse represents the ordered display transcript of a session
type TranscriptResponse struct {
	SessionID string              `json:"session_id"`
	Messages  []TranscriptMessage `json:"messages"`
}
