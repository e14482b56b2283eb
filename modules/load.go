package modules

import (
	"github.com/iota-uz/usecase-catalog/modules/catalog"
	"github.com/iota-uz/usecase-catalog/pkg/application"
)

// BuiltInModules returns the modules every binary registers.
func BuiltInModules(catalogOpts *catalog.ModuleOptions) []application.Module {
	return []application.Module{
		catalog.NewModule(catalogOpts),
	}
}

func Load(app application.Application, modules ...application.Module) error {
	for _, module := range modules {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
