package integrations

import (
	"go.uber.org/zap"

	coffeereviewweb "brewnote.dev/BrewNote/pkg/integrations/coffeereview-web"
	"brewnote.dev/BrewNote/pkg/model"
)

type Integration interface {
	FindBean(query string) ([]model.BeanInfo, error)
}

func GetIntegration(name string, logger *zap.Logger) Integration {
	if name == coffeereviewweb.IntegrationName {
		return coffeereviewweb.NewCoffeeReviewWebIntegration(logger)
	}

	return nil
}
