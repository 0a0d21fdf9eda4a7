// Package cardform exposes the card entry pipeline over net/http: field
// normalization, network classification, paste sanitizing, previews, commits
// and the record listing.
//
// The component is mounted under a base path (see RegisterRoutes). It serves
// its own OpenAPI document at {base}/openapi.json and validates request
// bodies against the schemas declared there. Request and commit counters are
// exported through a Prometheus registry.
package cardform
