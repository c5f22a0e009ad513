package feed

import (
	"encoding/json"
	"strings"
	"testing"

	"aws-visibility/internal/errors"
)

const sampleDocument = `{
  "syncToken": "1756214426",
  "createDate": "2025-08-26-13-20-26",
  "prefixes": [
    {"ip_prefix": "3.5.0.0/16", "region": "us-east-1", "service": "AMAZON", "network_border_group": "us-east-1"},
    {"ip_prefix": "3.5.0.0/16", "region": "us-east-1", "service": "S3", "network_border_group": "us-east-1"},
    {"ip_prefix": "13.34.0.0/16", "region": "eu-west-1", "service": "EC2", "network_border_group": "eu-west-1"}
  ],
  "ipv6_prefixes": [
    {"ipv6_prefix": "2600:1f00::/24", "region": "us-east-1", "service": "AMAZON", "network_border_group": "us-east-1"}
  ]
}`

// TestDocumentDecode proves the published document shape maps onto the
// Document model field for field.
func TestDocumentDecode(t *testing.T) {
	var doc Document
	if err := json.Unmarshal([]byte(sampleDocument), &doc); err != nil {
		t.Fatalf("failed to decode sample document: %v", err)
	}

	if doc.SyncToken != "1756214426" {
		t.Errorf("Expected syncToken '1756214426', got '%s'", doc.SyncToken)
	}
	if doc.CreateDate != "2025-08-26-13-20-26" {
		t.Errorf("Expected createDate '2025-08-26-13-20-26', got '%s'", doc.CreateDate)
	}
	if len(doc.Prefixes) != 3 {
		t.Fatalf("Expected 3 prefixes, got %d", len(doc.Prefixes))
	}
	if len(doc.IPv6Prefixes) != 1 {
		t.Fatalf("Expected 1 ipv6 prefix, got %d", len(doc.IPv6Prefixes))
	}

	first := doc.Prefixes[0]
	if first.IPPrefix != "3.5.0.0/16" || first.Region != "us-east-1" || first.Service != "AMAZON" {
		t.Errorf("Unexpected first prefix: %+v", first)
	}
	if doc.IPv6Prefixes[0].IPv6Prefix != "2600:1f00::/24" {
		t.Errorf("Unexpected ipv6 prefix: %+v", doc.IPv6Prefixes[0])
	}
}

func TestValidate(t *testing.T) {
	valid := Prefix{IPPrefix: "3.5.0.0/16", Region: "us-east-1", Service: "S3"}

	tests := []struct {
		name     string
		doc      Document
		wantErr  bool
		fragment string
	}{
		{
			name:    "valid document",
			doc:     Document{Prefixes: []Prefix{valid}},
			wantErr: false,
		},
		{
			name:     "no prefixes",
			doc:      Document{},
			wantErr:  true,
			fragment: "no prefixes",
		},
		{
			name: "missing ip_prefix",
			doc: Document{Prefixes: []Prefix{
				valid,
				{Region: "us-east-1", Service: "S3"},
			}},
			wantErr:  true,
			fragment: "missing ip_prefix",
		},
		{
			name: "missing region",
			doc: Document{Prefixes: []Prefix{
				{IPPrefix: "3.5.0.0/16", Service: "S3"},
			}},
			wantErr:  true,
			fragment: "missing region",
		},
		{
			name: "missing service",
			doc: Document{Prefixes: []Prefix{
				{IPPrefix: "3.5.0.0/16", Region: "us-east-1"},
			}},
			wantErr:  true,
			fragment: "missing service",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.doc.Validate()
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("Validate() returned unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() returned nil, expected schema error")
			}
			if !errors.IsType(err, errors.TypeSchema) {
				t.Errorf("Expected SCHEMA_ERROR, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.fragment) {
				t.Errorf("Expected error containing %q, got %q", tt.fragment, err.Error())
			}
		})
	}
}
