package domain

import (
	"github.com/sarunks7/storely-backend/internal/domain/auth"
	"github.com/sarunks7/storely-backend/internal/domain/cart"
	"github.com/sarunks7/storely-backend/internal/domain/catalog"
	"github.com/sarunks7/storely-backend/internal/domain/user"
)

type User = user.User

type UserToken = auth.UserToken
type TokenKind = auth.TokenKind

const (
	TokenKindAuth          = auth.TokenKindAuth
	TokenKindActivate      = auth.TokenKindActivate
	TokenKindPasswordReset = auth.TokenKindPasswordReset
)

type Product = catalog.Product
type Variation = catalog.Variation

type Cart = cart.Cart
type CartLine = cart.CartLine
type CartOwner = cart.Owner
type LineOwnerRef = cart.LineOwnerRef
type Totals = cart.Totals

var (
	SessionOwner = cart.SessionOwner
	UserOwner    = cart.UserOwner
	CartRef      = cart.CartRef
	UserRef      = cart.UserRef
)
