package app

import (
	"github.com/fotoflesz/printshop-backend/internal/platform/envutil"
)

type Config struct {
	Port        string
	UploadRoot  string
	MaxUploadMB int
}

func LoadConfig() Config {
	return Config{
		Port:        envutil.Str("PORT", "5001"),
		UploadRoot:  envutil.Str("UPLOAD_ROOT", "uploads"),
		MaxUploadMB: envutil.Int("MAX_UPLOAD_MB", 32),
	}
}
