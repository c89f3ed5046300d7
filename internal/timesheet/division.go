package timesheet

import "fmt"

// The two divisions projects belong to. Each has its own auto-allocated
// prefix window; prefixes are unique across both.
const (
	DivisionMelbournePower = "Melbourne Power"
	DivisionLiquidPack     = "Liquid Pack"
)

// Divisions lists the recognized division names in display order.
var Divisions = []string{DivisionMelbournePower, DivisionLiquidPack}

func ValidDivision(division string) bool {
	return division == DivisionMelbournePower || division == DivisionLiquidPack
}

// AutoRange returns the half-open auto-allocation window [base, upper) for a
// division: Melbourne Power uses [1000, 2000), Liquid Pack [2000, 3000).
// The division must already be validated by the caller.
func AutoRange(division string) (base, upper int64) {
	if division == DivisionLiquidPack {
		return 2000, 3000
	}
	return 1000, 2000
}

// ValidateCustomPrefix checks an explicit machine-ID prefix request.
// Custom prefixes are allowed only for Liquid Pack, must be positive, and
// must not fall inside Liquid Pack's auto window. Global uniqueness against
// existing projects is checked separately at the repository.
func ValidateCustomPrefix(division string, prefix int64) error {
	if division != DivisionLiquidPack {
		return fmt.Errorf("custom prefix is only allowed for %s machine ID projects", DivisionLiquidPack)
	}
	if prefix <= 0 {
		return fmt.Errorf("machine ID prefix must be a positive integer")
	}
	base, upper := AutoRange(DivisionLiquidPack)
	if prefix >= base && prefix < upper {
		return fmt.Errorf("machine ID prefix must not be between %d and %d (reserved for auto-generated projects)", base, upper-1)
	}
	return nil
}
