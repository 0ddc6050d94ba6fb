package model

import "time"

type ChatHistory struct {
	Id             int64     `gorm:"primaryKey;autoIncrement"`
	ConversationId string    `gorm:"type:text;not null;index"`
	Role           string    `gorm:"type:varchar(50);not null"`
	Content        string    `gorm:"type:text;not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

func (ChatHistory) TableName() string {
	return "chat_history"
}
