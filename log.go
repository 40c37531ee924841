package quizanything

import "go.uber.org/zap"

// NewLogger builds the application logger for the given environment.
func NewLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
