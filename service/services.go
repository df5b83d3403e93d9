// service/services.go
package service

import (
	"context"
	"fmt"

	"github.com/pmb-ti/accountrenewal/config"
	"github.com/pmb-ti/accountrenewal/db"
	"github.com/pmb-ti/accountrenewal/directory"
	"github.com/pmb-ti/accountrenewal/model"
	"github.com/pmb-ti/accountrenewal/util"
)

type Services struct {
	Directory directory.Service
	Renewal   IRenewalService
}

// NewDirectory builds the directory binding selected by directory.backend.
// The neo4j backend expects db.InitNeo4j to have run.
func NewDirectory(ctx context.Context, backend string) (directory.Service, error) {
	switch backend {
	case "ldap":
		domains := make(map[model.DomainID]directory.LDAPDomain)
		for _, d := range config.Domains() {
			c, _ := config.Domain(d.ID)
			domains[d.ID] = directory.LDAPDomain{
				URL:                c.URL,
				BaseDN:             c.BaseDN,
				BindUser:           c.BindUser,
				BindPassword:       c.BindPassword,
				Timeout:            c.Timeout,
				InsecureSkipVerify: c.InsecureSkipVerify,
			}
		}
		return directory.NewLDAPDirectory(domains), nil
	case "neo4j":
		if db.Neo4jDriver == nil {
			return nil, fmt.Errorf("neo4j directory backend requires a connected driver")
		}
		dir := directory.NewNeo4jDirectory(db.Neo4jDriver, config.GetString("neo4j.database"))
		if err := dir.EnsureUniqueConstraint(ctx); err != nil {
			return nil, err
		}
		return dir, nil
	case "memory":
		ids := make([]model.DomainID, 0)
		for _, d := range config.Domains() {
			ids = append(ids, d.ID)
		}
		return directory.NewMemoryDirectory(ids...), nil
	default:
		return nil, fmt.Errorf("unknown directory backend %q", backend)
	}
}

func InitializeServices(
	dir directory.Service,
	validationUtil *util.ValidationUtil,
	eventBus *util.EventBus,
) *Services {
	return &Services{
		Directory: dir,
		Renewal: NewRenewalService(dir, validationUtil,
			WithEventBus(eventBus),
			WithDomainLabels(config.DomainLabel),
		),
	}
}
