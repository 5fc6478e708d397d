package service

import (
	"github.com/elect10/sesac-hackathon/internal/model"
)

// AnswerAccuracy 풀이 이력에서 계산한 정답 통계.
// Rate는 [0,1] 범위의 정답률이며 이력이 없으면 0이다.
type AnswerAccuracy struct {
	Correct int
	Total   int
	Rate    float64
}

// CalculateAccuracy 풀이 이력 전체를 받아 정답 수와 정답률을 구한다
func CalculateAccuracy(histories []model.SolveHistory) AnswerAccuracy {
	acc := AnswerAccuracy{Total: len(histories)}
	for _, h := range histories {
		if h.IsCorrect {
			acc.Correct++
		}
	}
	if acc.Total > 0 {
		acc.Rate = float64(acc.Correct) / float64(acc.Total)
	}
	return acc
}
