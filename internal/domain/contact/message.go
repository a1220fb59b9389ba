package contact

import (
	"time"

	"agency-site/internal/domain/validation"
)

type Message struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name    string `gorm:"not null" json:"name"`
	Email   string `gorm:"not null" json:"email"`
	Message string `gorm:"type:text;not null" json:"message"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Message) TableName() string { return "contact_messages" }

type MessageInput struct {
	Name    string `json:"name" validate:"required,notblank"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,notblank"`
}

func (in *MessageInput) Validate() error {
	return validation.Struct(in)
}

func (in MessageInput) ToModel() Message {
	return Message{Name: in.Name, Email: in.Email, Message: in.Message}
}
