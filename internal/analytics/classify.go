package analytics

import "strings"

// Semantic product buckets for the category rollups.
const (
	BucketPerro        = "perro"
	BucketGato         = "gato"
	BucketHuesos       = "huesos"
	BucketComplementos = "complementos"
	BucketOtros        = "otros"
)

// Buckets in a stable presentation order.
var Buckets = []string{BucketPerro, BucketGato, BucketHuesos, BucketComplementos, BucketOtros}

// Classify buckets a line item purely by substring match on its name.
// Known fragility: renaming a product silently reclassifies its entire sales
// history. Kept as-is for compatibility with existing data; a product-id
// mapping table would be the hardened replacement.
func Classify(productName string) string {
	name := strings.ToLower(productName)
	switch {
	case strings.Contains(name, "complemento"):
		return BucketComplementos
	case strings.Contains(name, "perro"):
		return BucketPerro
	case strings.Contains(name, "gato"):
		return BucketGato
	case strings.Contains(name, "hueso"):
		return BucketHuesos
	default:
		return BucketOtros
	}
}
