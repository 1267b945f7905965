package payement

import (
	"eshop_back_end/internal/database"
	"eshop_back_end/internal/handlers"
	"eshop_back_end/internal/models"
)

var coupons = handlers.NewFactory[models.Coupon](
	"coupon", database.Coupons,
	handlers.WithSearch[models.Coupon]("name"),
)

var (
	CreateCoupon = coupons.CreateOne
	GetCoupons   = coupons.GetAll
	GetCoupon    = coupons.GetOne
	UpdateCoupon = coupons.UpdateOne
	DeleteCoupon = coupons.DeleteOne
)
