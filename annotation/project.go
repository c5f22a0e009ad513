// Package annotation projects the aggregated IP ranges feed into the
// row set uploaded to the platform's asset inventory.
package annotation

import (
	"aws-visibility/feed"
	"aws-visibility/policy"
)

// Provider is the inventory provider label stamped on every row
const Provider = "AWS"

// GenericService is the catch-all label AWS publishes alongside more
// specific service labels for the same CIDR
const GenericService = "AMAZON"

// Row is one annotation bound to a CIDR prefix
type Row struct {
	IP        string
	Provider  string
	Region    string
	Component string
}

// Project applies policy to the aggregated prefixes and emits one row
// per distinct CIDR that passes, in first-occurrence order. Policy sees
// the complete accumulated region and service lists; the emitted row
// collapses them to a single region and component.
func Project(merged []feed.AggregatedPrefix, pol policy.Policy) []Row {
	seen := make(map[string]struct{}, len(merged))
	rows := make([]Row, 0, len(merged))

	for _, entry := range merged {
		if _, ok := seen[entry.IPPrefix]; ok {
			continue
		}
		seen[entry.IPPrefix] = struct{}{}

		if len(entry.Regions) == 0 || len(entry.Services) == 0 {
			continue
		}
		if !pol.RegionAllowed(entry.Regions) || !pol.ServiceAllowed(entry.Services) {
			continue
		}

		rows = append(rows, Row{
			IP:        entry.IPPrefix,
			Provider:  Provider,
			Region:    entry.Regions[0],
			Component: component(entry.Services),
		})
	}
	return rows
}

// component picks the service label for a row: the first entry after
// dropping one generic "AMAZON" occurrence. The generic label survives
// only when it is the sole entry.
func component(services []string) string {
	if services[0] == GenericService && len(services) > 1 {
		return services[1]
	}
	return services[0]
}
