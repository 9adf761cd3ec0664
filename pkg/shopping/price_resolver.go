package shopping

// priceResolver returns a unit price for an aggregation key, or nil when the
// source has no answer. Resolvers run in priority order and the first hit
// wins: explicitly recorded prices beat recipe estimates beat pantry
// estimates.
type priceResolver func(name, unit string) *float64

func resolvePrice(resolvers []priceResolver, name, unit string) *float64 {
	for _, resolve := range resolvers {
		if price := resolve(name, unit); price != nil {
			return price
		}
	}
	return nil
}

// knownPriceResolver matches on folded item name only.
func knownPriceResolver(prices map[string]float64) priceResolver {
	return func(name, _ string) *float64 {
		if price, ok := prices[name]; ok {
			return &price
		}
		return nil
	}
}

// recipePriceResolver matches on the full aggregation key (name and unit),
// since a recipe's estimate is tied to the unit it was written in.
func recipePriceResolver(prices map[aggregationKey]float64) priceResolver {
	return func(name, unit string) *float64 {
		if price, ok := prices[aggregationKey{name: name, unit: unit}]; ok {
			return &price
		}
		return nil
	}
}

// pantryPriceResolver matches on folded item name only.
func pantryPriceResolver(prices map[string]float64) priceResolver {
	return func(name, _ string) *float64 {
		if price, ok := prices[name]; ok {
			return &price
		}
		return nil
	}
}
