package model

// Achievement 업적 항목. Level은 "최고 정답률" 업적에서는 [0,1] 범위의 정답률이다.
// swagger:model Achievement
type Achievement struct {
	BaseModel
	Title       string  `gorm:"size:100;not null" json:"title"`
	Description string  `gorm:"size:255" json:"description"`
	Level       float64 `gorm:"not null;default:0" json:"level"`
}

func (Achievement) TableName() string {
	return "achievements"
}

// UserAchievement 사용자-업적 연결. "최고 정답률" 업적은 사용자당 최대 1건 유지.
// swagger:model UserAchievement
type UserAchievement struct {
	BaseModel
	UserID        uint        `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	AchievementID uint        `gorm:"index;type:bigint unsigned;not null" json:"achievementId"`
	Achievement   Achievement `gorm:"foreignKey:AchievementID" json:"achievement"`
}

func (UserAchievement) TableName() string {
	return "user_achievements"
}
