package util

const (
	DateFormat = "2006-01-02"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// 음성 업로드 관련 상수
const (
	MimeImage       = "image/"
	MimeOctetStream = "application/octet-stream"

	// MaxVoiceDurationSeconds 한 번의 답변 녹음 최대 길이
	MaxVoiceDurationSeconds = 120
)

var (
	AllowedVoiceExtensions = []string{".wav", ".mp3", ".m4a", ".ogg", ".webm"}
)
