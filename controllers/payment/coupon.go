package paymentControllers

import (
	"fmt"
	"strconv"

	stripe "github.com/stripe/stripe-go/v74"

	"github.com/Stivenjs/reffinato-api/payments"
)

func formatUint(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

// ensureCoupon finds a single-use percent-off coupon matching the discount,
// creating one when none exists. The match is a linear scan by percentage,
// so two promotion codes with the same percentage share a coupon — a known
// approximation, not something this function tries to repair.
func ensureCoupon(provider payments.Provider, percentOff float64, promotionCode string) (string, error) {
	listParams := &stripe.CouponListParams{}
	listParams.Limit = stripe.Int64(100)
	coupons, err := provider.ListCoupons(listParams)
	if err != nil {
		return "", err
	}

	for _, coupon := range coupons {
		if coupon.PercentOff == percentOff && coupon.Duration == stripe.CouponDurationOnce {
			return coupon.ID, nil
		}
	}

	name := fmt.Sprintf("Discount %g%%", percentOff)
	if promotionCode != "" {
		name = fmt.Sprintf("Discount %g%% - %s", percentOff, promotionCode)
	}
	params := &stripe.CouponParams{
		PercentOff: stripe.Float64(percentOff),
		Duration:   stripe.String(string(stripe.CouponDurationOnce)),
		Name:       stripe.String(name),
	}
	code := promotionCode
	if code == "" {
		code = "none"
	}
	params.AddMetadata("promotionCode", code)

	coupon, err := provider.CreateCoupon(params)
	if err != nil {
		return "", err
	}
	return coupon.ID, nil
}
