package coffeereviewweb

import "go.uber.org/zap"

const IntegrationName = "coffeereview_web"

type CoffeeReviewWebIntegration struct {
	logger *zap.Logger
}

func NewCoffeeReviewWebIntegration(logger *zap.Logger) *CoffeeReviewWebIntegration {
	return &CoffeeReviewWebIntegration{logger: logger}
}
