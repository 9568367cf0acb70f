package config

import "go.uber.org/zap"

// NewLogger builds the process logger: JSON output in prod, the colored
// console encoder everywhere else.
func NewLogger(c Config) (*zap.Logger, error) {
	if c.IsProd() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
