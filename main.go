// @title SeSAC 말하기 학습 백엔드 API
// @version 1.0
// @description 유아 언어 학습 앱의 백엔드 서버. 개인화 문제 생성과 음성 답변 채점을 담당한다.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"github.com/elect10/sesac-hackathon/internal/app"
	"github.com/elect10/sesac-hackathon/internal/config"
	"github.com/elect10/sesac-hackathon/pkg/configwatcher"
	"github.com/elect10/sesac-hackathon/pkg/logger"
)

func main() {
	// 커맨드라인 인자. 마이그레이션 자체는 시작 시 항상 수행된다.
	migrateOnly := flag.Bool("migrate-only", false, "DB 마이그레이션만 수행하고 종료")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	// 마이그레이션 완료 후 바로 종료
	if *migrateOnly {
		log.Println("DB 마이그레이션 완료, 종료합니다")
		return
	}

	// AI 서버 주소 등 설정 핫리로드
	go configwatcher.WatchConfig("configs/config.yaml", application.ApplyConfig)

	application.Run()
}
