package util

import (
	"github.com/google/uuid"
)

// GenerateTempName 업로드 임시 파일용 충돌 없는 이름 생성
func GenerateTempName(ext string) string {
	return uuid.New().String() + ext
}
