package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultColor is assigned when a note is created without an explicit color
const DefaultColor = "#ffffff"

// StringList is an order-preserving string slice stored as a JSON column
type StringList []string

// Value serializes the list for storage. A nil list is stored as [].
func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		s = StringList{}
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan deserializes the list from storage
func (s *StringList) Scan(value interface{}) error {
	if value == nil {
		*s = StringList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("unsupported tags column type %T", value)
	}
}

// Note represents a user-owned note
type Note struct {
	ID        string     `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	UserID    uint64     `gorm:"column:user_id;index" json:"-"`
	Title     string     `gorm:"column:title;type:varchar(255)" json:"title"`
	Content   string     `gorm:"column:content;type:text" json:"content"`
	Tags      StringList `gorm:"column:tags;type:json" json:"tags"`
	Color     string     `gorm:"column:color;type:varchar(20)" json:"color"`
	IsPinned  bool       `gorm:"column:is_pinned;default:false" json:"isPinned"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Note) TableName() string { return "notes" }

// BeforeCreate assigns the opaque identifier and fills defaults.
// The identifier is generated by the store layer and is stable for the
// lifetime of the note.
func (n *Note) BeforeCreate(_ *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Tags == nil {
		n.Tags = StringList{}
	}
	if n.Color == "" {
		n.Color = DefaultColor
	}
	return nil
}

// CreateNoteRequest is the POST /notes body.
// Title and content are validated in the service so that empty and
// whitespace-only values produce itemized field errors.
type CreateNoteRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags"`
	Color    string   `json:"color"`
	IsPinned bool     `json:"isPinned"`
}

// UpdateNoteRequest is the PUT /notes/:id body. Nil fields are left unchanged.
type UpdateNoteRequest struct {
	Title    *string   `json:"title"`
	Content  *string   `json:"content"`
	Tags     *[]string `json:"tags"`
	Color    *string   `json:"color"`
	IsPinned *bool     `json:"isPinned"`
}
