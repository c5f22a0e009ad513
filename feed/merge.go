package feed

import (
	"sort"
)

// AggregatedPrefix pairs one raw feed record with the complete region and
// service lists accumulated across every record sharing its CIDR. The
// lists keep duplicates and publication order.
type AggregatedPrefix struct {
	IPPrefix string
	Regions  []string
	Services []string
}

// MergePrefixes accumulates regions and services per CIDR, then emits one
// AggregatedPrefix per input record in input order. A CIDR published N
// times yields N entries, each carrying the full accumulated lists; the
// lists are copied so later edits to one entry never leak into another.
func MergePrefixes(prefixes []Prefix) []AggregatedPrefix {
	regions := make(map[string][]string)
	services := make(map[string][]string)
	for _, p := range prefixes {
		regions[p.IPPrefix] = append(regions[p.IPPrefix], p.Region)
		services[p.IPPrefix] = append(services[p.IPPrefix], p.Service)
	}

	merged := make([]AggregatedPrefix, 0, len(prefixes))
	for _, p := range prefixes {
		merged = append(merged, AggregatedPrefix{
			IPPrefix: p.IPPrefix,
			Regions:  append([]string(nil), regions[p.IPPrefix]...),
			Services: append([]string(nil), services[p.IPPrefix]...),
		})
	}
	return merged
}

// RegionServiceIndex maps each region to the set of services published
// there. It drives the scope tree: one child per region, one grandchild
// per (region, service) pair.
type RegionServiceIndex map[string]map[string]struct{}

// ExtractRegionServices builds the region to service-set index from the
// raw prefix records.
func ExtractRegionServices(prefixes []Prefix) RegionServiceIndex {
	index := make(RegionServiceIndex)
	for _, p := range prefixes {
		set, ok := index[p.Region]
		if !ok {
			set = make(map[string]struct{})
			index[p.Region] = set
		}
		set[p.Service] = struct{}{}
	}
	return index
}

// Regions returns the indexed region names in sorted order.
func (x RegionServiceIndex) Regions() []string {
	regions := make([]string, 0, len(x))
	for region := range x {
		regions = append(regions, region)
	}
	sort.Strings(regions)
	return regions
}

// Services returns the distinct services of a region in sorted order.
func (x RegionServiceIndex) Services(region string) []string {
	set := x[region]
	services := make([]string, 0, len(set))
	for service := range set {
		services = append(services, service)
	}
	sort.Strings(services)
	return services
}
