// Package interaction mirrors recorded turns into the durable research store.
// The store is write-only: nothing in the service reads it back.
package interaction

import (
	"gorm.io/gorm"

	"github.com/imfe-lab/aulalab/internal/session"
)

// Interaction is one mirrored turn in the interactions table
type Interaction struct {
	gorm.Model
	CourseCode     string `json:"course_code" gorm:"size:64;not null;index"`
	GroupID        string `json:"group_id" gorm:"size:64;not null;index"`
	Author         string `json:"author" gorm:"size:255;not null"`
	StudentMessage string `json:"student_message" gorm:"type:text"`
	AIResponse     string `json:"ai_response" gorm:"type:text"`
	// Character count of the student's explanation; the column name is the
	// research datasets' historical contract
	ResponseLengthMetric int `json:"response_length_metric"`
}

// TableName pins the table name used by the research tooling
func (Interaction) TableName() string {
	return "interactions"
}

// NewInteraction converts a recorded turn into its mirrored row
func NewInteraction(turn session.Turn) *Interaction {
	return &Interaction{
		CourseCode:           turn.CourseCode,
		GroupID:              turn.GroupID,
		Author:               turn.Author,
		StudentMessage:       turn.StudentMessage,
		AIResponse:           turn.AIResponse,
		ResponseLengthMetric: turn.ResponseLength,
	}
}
