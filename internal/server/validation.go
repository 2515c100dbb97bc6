package server

import (
	authdomain "github.com/replenix/replenix/internal/auth/domain"
	orderdomain "github.com/replenix/replenix/internal/order/domain"
	productdomain "github.com/replenix/replenix/internal/product/domain"
)

func isAuthValidationError(err error) bool {
	switch err {
	case authdomain.ErrInvalidUsername,
		authdomain.ErrInvalidPassword,
		authdomain.ErrInvalidRole,
		authdomain.ErrInvalidCompanyName,
		authdomain.ErrInvalidContactInfo:
		return true
	default:
		return false
	}
}

func isProductValidationError(err error) bool {
	switch err {
	case productdomain.ErrInvalidName,
		productdomain.ErrInvalidQuantity,
		productdomain.ErrInvalidLeadTime,
		productdomain.ErrInvalidSalesHistory,
		productdomain.ErrInvalidID:
		return true
	default:
		return false
	}
}

func isOrderValidationError(err error) bool {
	switch err {
	case orderdomain.ErrInvalidQuantity,
		orderdomain.ErrInvalidID,
		orderdomain.ErrProductWithoutSupplier:
		return true
	default:
		return false
	}
}
