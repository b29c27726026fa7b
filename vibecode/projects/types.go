package projects

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"codeberg.org/vibecode/server/internal/analyzer"
)

type Repository struct {
	db *pgxpool.Pool
}

// a saved generated component with the conversation that produced it
type Project struct {
	ID                  string              `json:"id"`
	UserID              string              `json:"user_id"`
	Title               string              `json:"title"`
	Code                string              `json:"code"`
	Language            string              `json:"language"`
	ComponentName       string              `json:"component_name"`
	IsPublic            bool                `json:"is_public"`
	Description         string              `json:"description,omitempty"`
	Tags                []string            `json:"tags,omitempty"`
	ConversationHistory ConversationHistory `json:"conversation_history,omitempty"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

type ConversationHistory []analyzer.Message

func (ch ConversationHistory) Value() (driver.Value, error) {
	if len(ch) == 0 {
		return "[]", nil
	}

	bytes, err := json.Marshal(ch)
	if err != nil {
		return nil, err
	}

	return string(bytes), nil
}

func (ch *ConversationHistory) Scan(value interface{}) error {
	if value == nil {
		*ch = []analyzer.Message{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, ch)
}

type CreateProjectRequest struct {
	Title               string              `json:"title" binding:"required,max=200"`
	Code                string              `json:"code" binding:"required,max=1048576"` // 1MB limit
	Language            string              `json:"language" binding:"required,oneof=tsx jsx"`
	ComponentName       string              `json:"component_name" binding:"required,max=100"`
	IsPublic            bool                `json:"is_public"`
	Description         string              `json:"description,omitempty" binding:"max=2000"`
	Tags                []string            `json:"tags,omitempty" binding:"max=20,dive,max=50"`      // max 20 tags, each max 50 chars
	ConversationHistory ConversationHistory `json:"conversation_history,omitempty" binding:"max=100"` // max 100 messages
}

type UpdateProjectRequest struct {
	Title               *string             `json:"title,omitempty" binding:"omitempty,max=200"`
	Code                *string             `json:"code,omitempty" binding:"omitempty,max=1048576"` // 1MB limit
	ComponentName       *string             `json:"component_name,omitempty" binding:"omitempty,max=100"`
	IsPublic            *bool               `json:"is_public,omitempty"`
	Description         *string             `json:"description,omitempty" binding:"omitempty,max=2000"`
	Tags                []string            `json:"tags,omitempty" binding:"max=20,dive,max=50"`
	ConversationHistory ConversationHistory `json:"conversation_history,omitempty" binding:"max=100"`
}
