// Package fixes holds the Storybook 7 upgrade fixes and the catalog that
// orders them.
package fixes

import "github.com/openkraft/automigrate/internal/domain"

var storybook7 = domain.MustCoerceVersion("7.0.0")

// NewCatalog returns every fix in evaluation order.
func NewCatalog() (*domain.Catalog, error) {
	return domain.NewCatalog(
		SbScripts{},
		MissingFramework{},
		MissingBabelRc{},
	)
}
