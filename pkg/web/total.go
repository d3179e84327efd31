package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-orderform/pkg/pricing"
)

type totalResponse struct {
	Price    float64 `json:"price"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

func (s *server) total(c *gin.Context) {
	price, discount, err := parsePricing(c.Query("price"), c.Query("discount"))
	if err != nil {
		writeError(c, StatusError{Code: http.StatusBadRequest, Err: err})
		return
	}
	c.JSON(http.StatusOK, totalResponse{
		Price:    price,
		Discount: discount,
		Total:    pricing.Total(price, discount),
	})
}

func parsePricing(rawPrice, rawDiscount string) (float64, float64, error) {
	price, err := pricing.ParseAmount(rawPrice)
	if err != nil {
		return 0, 0, err
	}
	if err := pricing.ValidatePrice(price); err != nil {
		return 0, 0, err
	}
	discount, err := pricing.ParseAmount(rawDiscount)
	if err != nil {
		return 0, 0, err
	}
	if err := pricing.ValidateDiscount(discount); err != nil {
		return 0, 0, err
	}
	return price, discount, nil
}
