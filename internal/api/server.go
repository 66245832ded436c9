package api

import (
	"github.com/yeonsu/vocaflash/internal/services"
)

// Server wires the HTTP handlers to the service layer. All endpoints speak
// JSON.
type Server struct {
	Lessons  services.LessonService
	Words    services.WordService
	Practice services.PracticeService
	Settings services.SettingsService
	Stats    services.StatsService
	Imports  services.ImportService
}
