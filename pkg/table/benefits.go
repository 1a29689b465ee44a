package table

import (
	"fmt"
	"strconv"

	"github.com/mithrel/perktable/pkg/api"
)

const (
	BenefitsColumn = "benefits"

	// maternityStandardMonths is the government-mandated leave; anything
	// above it is called out.
	maternityStandardMonths = 4
)

// TranslateBenefits turns a benefits mapping into README sentences. A nil or
// non-mapping value is read as an empty mapping.
func TranslateBenefits(benefits any) []string {
	get := func(field string) any { return lookup(field, benefits) }

	out := []string{"Has standard insurance"}
	if truthy(get("good_insurance")) {
		out[0] = "Has good insurance"
	}

	pregnancy := truthy(get("pregnancy"))
	dependents := truthy(get("covers_dependents"))
	if pregnancy || dependents {
		out[0] = "Has GREAT insurance"
	}
	if pregnancy {
		out = append(out, "Pregnancy & childbirth is covered")
	}
	if dependents {
		out = append(out, "Insurance is extended to dependents")
	}

	out = append(out, maternitySentence(get("maternity_leaves")))

	switch extras := get("extras").(type) {
	case nil:
	case bool:
		if extras {
			out = append(out, "Yes")
		}
	case []any:
		for _, it := range extras {
			out = append(out, api.FormatScalar(it))
		}
	case []string:
		out = append(out, extras...)
	default:
		out = append(out, api.FormatScalar(extras))
	}
	return out
}

func maternitySentence(months any) string {
	n, ok := number(months)
	if !ok {
		return "WIP"
	}
	if n > maternityStandardMonths {
		return fmt.Sprintf("Maternity leave is more than standard, %s months", formatMonths(n))
	}
	return "Maternity leave is standard to gov policy"
}

func formatMonths(n float64) string {
	if n == float64(int64(n)) {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
