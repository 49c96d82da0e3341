package shop

import "fmt"

// FormatPrice renders a price in minor units as dollars with two decimals.
func FormatPrice(minor int) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s$%d.%02d", sign, minor/100, minor%100)
}
