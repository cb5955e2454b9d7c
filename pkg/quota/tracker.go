package quota

import "sort"

// Check computes the LimitResult for one resource. Unlimited ceilings take a
// single early path; for bounded ceilings the exceeded boundary is inclusive,
// so current == max already blocks the next creation.
func Check(def LimitDef, current int64) LimitResult {
	if current < 0 {
		current = 0
	}

	if def.Max == Unlimited {
		return LimitResult{
			Resource:  def.Resource,
			Current:   current,
			Max:       Unlimited,
			Remaining: Unlimited,
			Unlimited: true,
		}
	}

	result := LimitResult{
		Resource: def.Resource,
		Current:  current,
		Max:      def.Max,
		Exceeded: current >= def.Max,
	}

	if remaining := def.Max - current; remaining > 0 {
		result.Remaining = remaining
	}

	if def.Max > 0 {
		result.Percentage = min(100, float64(current)*100/float64(def.Max))
	}

	return result
}

// CheckAll computes LimitResults for every defined ceiling, reading usage
// from the given snapshot. Resources absent from the snapshot count as zero.
// Results are sorted by resource name for stable output.
func CheckAll(quotas map[Resource]int64, usage map[Resource]int64) []LimitResult {
	results := make([]LimitResult, 0, len(quotas))
	for res, max := range quotas {
		results = append(results, Check(LimitDef{Resource: res, Max: max}, usage[res]))
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Resource < results[j].Resource
	})
	return results
}
