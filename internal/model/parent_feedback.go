package model

// ParentFeedback 보호자가 남긴 피드백. 문제 생성 시 개인화 컨텍스트에 전부 포함된다.
// swagger:model ParentFeedback
type ParentFeedback struct {
	BaseModel
	UserID  uint   `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Content string `gorm:"type:text;not null" json:"content"`
}

func (ParentFeedback) TableName() string {
	return "parent_feedbacks"
}
