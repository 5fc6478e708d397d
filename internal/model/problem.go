package model

import (
	"time"

	"gorm.io/gorm"
)

// Problem AI 서버가 생성한 문제. ID는 AI 서버가 발급한 값을 그대로 사용한다.
// swagger:model Problem
type Problem struct {
	ID        string         `gorm:"primaryKey;type:varchar(64)" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserID    uint   `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Question  string `gorm:"type:text;not null" json:"question"`
	Answer    string `gorm:"type:text;not null" json:"-"`
	ImagePath string `gorm:"size:255" json:"imagePath"`
	WholeText string `gorm:"type:text" json:"-"`
}

func (Problem) TableName() string {
	return "problems"
}
