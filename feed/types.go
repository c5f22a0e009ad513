// Package feed downloads and reshapes the published AWS IP ranges
// document. The aggregation helpers here feed both sync paths: annotation
// rows and the region/service scope tree.
package feed

import (
	"aws-visibility/internal/errors"
)

// DefaultURL is the published AWS IP ranges document
const DefaultURL = "https://ip-ranges.amazonaws.com/ip-ranges.json"

// Document is the decoded ip-ranges.json payload
type Document struct {
	SyncToken    string       `json:"syncToken"`
	CreateDate   string       `json:"createDate"`
	Prefixes     []Prefix     `json:"prefixes"`
	IPv6Prefixes []IPv6Prefix `json:"ipv6_prefixes"`
}

// Prefix is one published (CIDR, region, service) record. The same
// ip_prefix appears once per service label, so generic "AMAZON" entries
// usually coexist with a more specific service for the same CIDR.
type Prefix struct {
	IPPrefix           string `json:"ip_prefix"`
	Region             string `json:"region"`
	Service            string `json:"service"`
	NetworkBorderGroup string `json:"network_border_group"`
}

// IPv6Prefix is the v6 counterpart. Annotation and scope sync only
// consume IPv4 prefixes; the v6 list is decoded for reporting.
type IPv6Prefix struct {
	IPv6Prefix         string `json:"ipv6_prefix"`
	Region             string `json:"region"`
	Service            string `json:"service"`
	NetworkBorderGroup string `json:"network_border_group"`
}

// Validate checks the document against the schema the sync logic relies
// on: a non-empty prefix list where every record carries ip_prefix,
// region and service. A malformed feed fails here, before any
// aggregation runs.
func (d *Document) Validate() error {
	if len(d.Prefixes) == 0 {
		return errors.Schema("feed document contains no prefixes")
	}
	for i, p := range d.Prefixes {
		switch {
		case p.IPPrefix == "":
			return errors.Schema("prefix %d: missing ip_prefix", i)
		case p.Region == "":
			return errors.Schema("prefix %d (%s): missing region", i, p.IPPrefix)
		case p.Service == "":
			return errors.Schema("prefix %d (%s): missing service", i, p.IPPrefix)
		}
	}
	return nil
}
