package model

import (
	"strings"
	"time"
)

// swagger:model User
type User struct {
	BaseModel
	Name          string    `gorm:"size:100;not null" json:"name"`
	Email         string    `gorm:"size:100;unique;not null" json:"email"`
	Password      string    `gorm:"size:100;not null" json:"-"`
	BirthDate     time.Time `gorm:"not null" json:"birthDate"`
	Interests     string    `gorm:"size:255" json:"-"` // 쉼표로 연결해 저장
	LanguageGoals *string   `gorm:"size:255" json:"languageGoals"`
	Avatar        string    `gorm:"size:255" json:"avatar"`
}

func (User) TableName() string {
	return "users"
}

// InterestList 저장된 관심사 문자열을 목록으로 변환
func (u *User) InterestList() []string {
	if u.Interests == "" {
		return []string{}
	}
	parts := strings.Split(u.Interests, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// SetInterests 관심사 목록을 저장 형식으로 반영
func (u *User) SetInterests(interests []string) {
	u.Interests = strings.Join(interests, ",")
}
