package catalog

import (
	"fmt"
	"math"

	"plan-advisor/pkg/plan"
)

// requiredSpecs are the spec keys every package must carry. The price key
// in particular is a data-quality contract: the engine tolerates a missing
// price by treating it as 0, which would make the package look free, so the
// requirement is enforced here at the boundary instead.
var requiredSpecs = []string{"data", "calls", plan.PriceKey}

// Validate checks a package list for structural problems and returns one
// human-readable message per problem. An empty result means the data is
// usable.
func Validate(packages []plan.Product) []string {
	errs := make([]string, 0)

	for i, pkg := range packages {
		if pkg.Name == "" {
			errs = append(errs, fmt.Sprintf("套餐 %d: 缺少字段 'name'", i))
		}
		if pkg.Specs == nil {
			errs = append(errs, fmt.Sprintf("套餐 %d: 缺少字段 'specs'", i))
			continue
		}
		for _, key := range requiredSpecs {
			value, ok := pkg.Specs[key]
			if !ok {
				errs = append(errs, fmt.Sprintf("套餐 %d: specs缺少字段 '%s'", i, key))
				continue
			}
			if math.IsNaN(value) || math.IsInf(value, 0) {
				errs = append(errs, fmt.Sprintf("套餐 %d: specs.%s 应为数字类型", i, key))
			}
			if value < 0 {
				errs = append(errs, fmt.Sprintf("套餐 %d: specs.%s 不能为负数", i, key))
			}
		}
	}
	return errs
}
