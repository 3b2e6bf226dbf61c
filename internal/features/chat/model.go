package chat

import (
	"time"

	"github.com/tunespace/tunespace-api/internal/features/auth"
)

type Message struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SenderID    uint      `gorm:"index;not null" json:"senderId"`
	Sender      auth.User `gorm:"foreignKey:SenderID" json:"sender"`
	RecipientID uint      `gorm:"index;not null" json:"recipientId"`
	Recipient   auth.User `gorm:"foreignKey:RecipientID" json:"recipient"`
	Content     string    `gorm:"size:2000;not null" json:"content"`
	IsRead      bool      `gorm:"default:false;not null" json:"isRead"`
	CreatedAt   time.Time `json:"createdAt"`
}

type SendMessageRequest struct {
	RecipientID uint   `json:"recipientId" binding:"required"`
	Content     string `json:"content" binding:"required,max=2000"`
}

// Conversation summarizes a chat with one partner for the inbox view.
type Conversation struct {
	Partner     map[string]interface{} `json:"partner"`
	LastMessage *Message               `json:"lastMessage"`
	UnreadCount int64                  `json:"unreadCount"`
}

// wsEnvelope is the frame format exchanged over the websocket. Clients send
// {recipientId, content} and receive full message objects.
type wsEnvelope struct {
	RecipientID uint   `json:"recipientId"`
	Content     string `json:"content"`
}
