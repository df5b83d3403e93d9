// controller/controllers.go
package controller

import "github.com/pmb-ti/accountrenewal/service"

type Controllers struct {
	Renewal *RenewalController
	Health  *HealthController
}

func InitializeControllers(services *service.Services) *Controllers {
	return &Controllers{
		Renewal: NewRenewalController(services.Renewal),
		Health:  NewHealthController(),
	}
}
