package app

import (
	"gorm.io/gorm"

	"github.com/sarunks7/storely-backend/internal/data/repos"
	"github.com/sarunks7/storely-backend/internal/platform/logger"
)

type Repos struct {
	User      repos.UserRepo
	UserToken repos.UserTokenRepo
	Product   repos.ProductRepo
	Variation repos.VariationRepo
	Cart      repos.CartRepo
	CartLine  repos.CartLineRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:      repos.NewUserRepo(db, log),
		UserToken: repos.NewUserTokenRepo(db, log),
		Product:   repos.NewProductRepo(db, log),
		Variation: repos.NewVariationRepo(db, log),
		Cart:      repos.NewCartRepo(db, log),
		CartLine:  repos.NewCartLineRepo(db, log),
	}
}
