package service

import (
	"testing"

	"github.com/elect10/sesac-hackathon/internal/model"

	"github.com/stretchr/testify/assert"
)

func histories(results ...bool) []model.SolveHistory {
	hs := make([]model.SolveHistory, len(results))
	for i, correct := range results {
		hs[i] = model.SolveHistory{UserID: 1, IsCorrect: correct}
	}
	return hs
}

func TestCalculateAccuracy(t *testing.T) {
	tests := []struct {
		name        string
		histories   []model.SolveHistory
		wantCorrect int
		wantTotal   int
		wantRate    float64
	}{
		{"이력 없음", nil, 0, 0, 0},
		{"빈 슬라이스", []model.SolveHistory{}, 0, 0, 0},
		{"전부 정답", histories(true, true, true), 3, 3, 1},
		{"전부 오답", histories(false, false), 0, 2, 0},
		{"절반 정답", histories(true, false, true, false), 2, 4, 0.5},
		{"한 건 정답", histories(true), 1, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := CalculateAccuracy(tt.histories)
			assert.Equal(t, tt.wantCorrect, acc.Correct)
			assert.Equal(t, tt.wantTotal, acc.Total)
			assert.InDelta(t, tt.wantRate, acc.Rate, 1e-9)
		})
	}
}

func TestCalculateAccuracy_CorrectCountMatches(t *testing.T) {
	hs := histories(true, false, true, true, false, true, false)

	acc := CalculateAccuracy(hs)

	count := 0
	for _, h := range hs {
		if h.IsCorrect {
			count++
		}
	}
	assert.Equal(t, count, acc.Correct)
	assert.InDelta(t, float64(count)/float64(len(hs)), acc.Rate, 1e-9)
}
