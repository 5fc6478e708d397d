package model

// SolveHistory 채점 1회당 1건 생성, 이후 수정하지 않는다.
// swagger:model SolveHistory
type SolveHistory struct {
	BaseModel
	UserID    uint   `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	ProblemID string `gorm:"index;type:varchar(64)" json:"problemId"`
	IsCorrect bool   `gorm:"not null" json:"isCorrect"`
	Feedback  string `gorm:"type:text" json:"feedback"`
	VoicePath string `gorm:"size:255" json:"voicePath"`
}

func (SolveHistory) TableName() string {
	return "solve_histories"
}
