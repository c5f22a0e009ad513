package feed

import (
	"reflect"
	"testing"
)

// TestMergePrefixesOnePerRecord proves the merge emits one entry per raw
// record, each carrying the full accumulated lists for its CIDR.
func TestMergePrefixesOnePerRecord(t *testing.T) {
	prefixes := []Prefix{
		{IPPrefix: "3.5.0.0/16", Region: "us-east-1", Service: "AMAZON"},
		{IPPrefix: "3.5.0.0/16", Region: "us-east-1", Service: "S3"},
		{IPPrefix: "13.34.0.0/16", Region: "eu-west-1", Service: "EC2"},
	}

	merged := MergePrefixes(prefixes)
	if len(merged) != len(prefixes) {
		t.Fatalf("Expected %d merged entries, got %d", len(prefixes), len(merged))
	}

	// Both entries for the duplicated CIDR see the complete lists.
	for i := 0; i < 2; i++ {
		got := merged[i]
		if got.IPPrefix != "3.5.0.0/16" {
			t.Fatalf("Entry %d: expected prefix 3.5.0.0/16, got %s", i, got.IPPrefix)
		}
		if !reflect.DeepEqual(got.Regions, []string{"us-east-1", "us-east-1"}) {
			t.Errorf("Entry %d: unexpected regions %v", i, got.Regions)
		}
		if !reflect.DeepEqual(got.Services, []string{"AMAZON", "S3"}) {
			t.Errorf("Entry %d: unexpected services %v", i, got.Services)
		}
	}

	last := merged[2]
	if !reflect.DeepEqual(last.Regions, []string{"eu-west-1"}) || !reflect.DeepEqual(last.Services, []string{"EC2"}) {
		t.Errorf("Unexpected singleton entry: %+v", last)
	}
}

// TestMergePrefixesListsAligned proves every entry carries region and
// service lists of equal length, one element per raw occurrence.
func TestMergePrefixesListsAligned(t *testing.T) {
	prefixes := []Prefix{
		{IPPrefix: "3.5.0.0/16", Region: "us-east-1", Service: "AMAZON"},
		{IPPrefix: "3.5.0.0/16", Region: "us-east-1", Service: "S3"},
		{IPPrefix: "3.5.0.0/16", Region: "us-west-2", Service: "AMAZON"},
		{IPPrefix: "52.94.0.0/22", Region: "us-east-1", Service: "DYNAMODB"},
	}

	for i, entry := range MergePrefixes(prefixes) {
		if len(entry.Regions) != len(entry.Services) {
			t.Errorf("Entry %d (%s): regions %d, services %d", i, entry.IPPrefix, len(entry.Regions), len(entry.Services))
		}
	}
}

// TestMergePrefixesCopiesLists proves entries do not share backing
// arrays, so trimming one entry's service list leaves its siblings
// intact.
func TestMergePrefixesCopiesLists(t *testing.T) {
	prefixes := []Prefix{
		{IPPrefix: "3.5.0.0/16", Region: "us-east-1", Service: "AMAZON"},
		{IPPrefix: "3.5.0.0/16", Region: "us-east-1", Service: "S3"},
	}

	merged := MergePrefixes(prefixes)
	merged[0].Services[0] = "MUTATED"

	if merged[1].Services[0] != "AMAZON" {
		t.Errorf("Sibling entry saw mutation: %v", merged[1].Services)
	}
}

func TestMergePrefixesEmpty(t *testing.T) {
	if got := MergePrefixes(nil); len(got) != 0 {
		t.Errorf("Expected no entries for empty input, got %d", len(got))
	}
}

// TestExtractRegionServices proves the index deduplicates services per
// region and the accessors iterate in sorted order.
func TestExtractRegionServices(t *testing.T) {
	prefixes := []Prefix{
		{IPPrefix: "3.5.0.0/16", Region: "us-east-1", Service: "S3"},
		{IPPrefix: "3.5.4.0/22", Region: "us-east-1", Service: "S3"},
		{IPPrefix: "52.94.0.0/22", Region: "us-east-1", Service: "DYNAMODB"},
		{IPPrefix: "13.34.0.0/16", Region: "eu-west-1", Service: "EC2"},
		{IPPrefix: "13.34.0.0/16", Region: "eu-west-1", Service: "AMAZON"},
	}

	index := ExtractRegionServices(prefixes)

	regions := index.Regions()
	if !reflect.DeepEqual(regions, []string{"eu-west-1", "us-east-1"}) {
		t.Fatalf("Unexpected regions: %v", regions)
	}

	if got := index.Services("us-east-1"); !reflect.DeepEqual(got, []string{"DYNAMODB", "S3"}) {
		t.Errorf("Unexpected us-east-1 services: %v", got)
	}
	if got := index.Services("eu-west-1"); !reflect.DeepEqual(got, []string{"AMAZON", "EC2"}) {
		t.Errorf("Unexpected eu-west-1 services: %v", got)
	}
	if got := index.Services("ap-south-1"); len(got) != 0 {
		t.Errorf("Expected no services for unindexed region, got %v", got)
	}
}
