// Package recommend talks to the external ML recommendation service.
//
// The service has answered with three different shapes over its lifetime:
//
//	{"recommendations": [{"id": "12", "score": 0.93}, ...]}
//	{"ids": ["12", "40", ...]}
//	["12", "40", ...]
//
// ParseItems accepts all of them and yields identifiers in the order the
// service ranked them. Connectivity failures are classified by
// IsUnavailable so callers can degrade instead of failing.
package recommend
