package tetration

import (
	"context"
	"encoding/json"

	"aws-visibility/internal/errors"
)

// scopePayload is the request body for scope creation
type scopePayload struct {
	ShortName        string     `json:"short_name"`
	ShortQuery       shortQuery `json:"short_query"`
	ParentAppScopeID string     `json:"parent_app_scope_id"`
}

// shortQuery is the membership query attached to a scope
type shortQuery struct {
	Type  string `json:"type"`
	Field string `json:"field"`
	Value string `json:"value"`
}

// CreateScope creates one scope under a parent, with an equality
// membership query on the given annotation field, and returns the new
// scope's id.
func (c *Client) CreateScope(ctx context.Context, parentID, shortName, queryField, queryValue string) (string, error) {
	payload := scopePayload{
		ShortName: shortName,
		ShortQuery: shortQuery{
			Type:  "eq",
			Field: queryField,
			Value: queryValue,
		},
		ParentAppScopeID: parentID,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", errors.Internal("failed to encode scope payload", err)
	}

	resp, err := c.Post(ctx, "/app_scopes", body)
	if err != nil {
		return "", err
	}
	if !resp.OK() {
		return "", errors.Remote("scope creation failed", resp.StatusCode, string(resp.Body)).
			WithContext("short_name", shortName)
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(resp.Body, &created); err != nil {
		return "", errors.Wrapf(errors.TypeRemote, err, "failed to decode scope response for %s", shortName)
	}
	return created.ID, nil
}
