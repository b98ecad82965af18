package repos

import (
	"gorm.io/gorm"

	"github.com/sarunks7/storely-backend/internal/data/repos/auth"
	"github.com/sarunks7/storely-backend/internal/data/repos/cart"
	"github.com/sarunks7/storely-backend/internal/data/repos/catalog"
	"github.com/sarunks7/storely-backend/internal/data/repos/user"
	"github.com/sarunks7/storely-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo
type UserTokenRepo = auth.UserTokenRepo

type ProductRepo = catalog.ProductRepo
type VariationRepo = catalog.VariationRepo

type CartRepo = cart.CartRepo
type CartLineRepo = cart.CartLineRepo

func NewUserRepo(db *gorm.DB, log *logger.Logger) UserRepo { return user.NewUserRepo(db, log) }
func NewUserTokenRepo(db *gorm.DB, log *logger.Logger) UserTokenRepo {
	return auth.NewUserTokenRepo(db, log)
}
func NewProductRepo(db *gorm.DB, log *logger.Logger) ProductRepo {
	return catalog.NewProductRepo(db, log)
}
func NewVariationRepo(db *gorm.DB, log *logger.Logger) VariationRepo {
	return catalog.NewVariationRepo(db, log)
}
func NewCartRepo(db *gorm.DB, log *logger.Logger) CartRepo { return cart.NewCartRepo(db, log) }
func NewCartLineRepo(db *gorm.DB, log *logger.Logger) CartLineRepo {
	return cart.NewCartLineRepo(db, log)
}
