package models

import "time"

type Feedback struct {
	ID        string    `json:"id" gorm:"primaryKey" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" gorm:"index" bson:"email"`
	Message   string    `json:"message" gorm:"type:text" bson:"message"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

func (Feedback) TableName() string {
	return "feedbacks"
}
