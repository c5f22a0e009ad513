// Package policy implements the include/exclude filter rules applied to
// feed records. A Policy is built once at startup from flags and
// configuration and passed into every component; nothing reads filter
// state ambiently.
package policy

// Policy holds the service and region filters for one run. The zero value
// allows everything. Exclusion always wins over inclusion.
type Policy struct {
	include map[string]struct{}
	exclude map[string]struct{}
	regions map[string]struct{}
}

// New builds an immutable Policy from the raw flag values. The slices are
// copied; later mutation of the arguments has no effect.
func New(include, exclude, regions []string) Policy {
	return Policy{
		include: toSet(include),
		exclude: toSet(exclude),
		regions: toSet(regions),
	}
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// RegionAllowed reports whether a prefix tagged with the given regions
// passes the region filter: an empty filter allows everything, otherwise
// at least one region must be allowed.
func (p Policy) RegionAllowed(regions []string) bool {
	if len(p.regions) == 0 {
		return true
	}
	for _, r := range regions {
		if _, ok := p.regions[r]; ok {
			return true
		}
	}
	return false
}

// RegionAllowedOne is RegionAllowed for a single region.
func (p Policy) RegionAllowedOne(region string) bool {
	if len(p.regions) == 0 {
		return true
	}
	_, ok := p.regions[region]
	return ok
}

// ServiceAllowed reports whether a prefix tagged with the given services
// passes the service filter. Any excluded service rejects the whole set;
// otherwise an empty include list allows everything, and a non-empty one
// requires at least one match.
func (p Policy) ServiceAllowed(services []string) bool {
	for _, s := range services {
		if _, ok := p.exclude[s]; ok {
			return false
		}
	}
	if len(p.include) == 0 {
		return true
	}
	for _, s := range services {
		if _, ok := p.include[s]; ok {
			return true
		}
	}
	return false
}

// ServiceAllowedOne is ServiceAllowed for a single service.
func (p Policy) ServiceAllowedOne(service string) bool {
	if _, ok := p.exclude[service]; ok {
		return false
	}
	if len(p.include) == 0 {
		return true
	}
	_, ok := p.include[service]
	return ok
}
