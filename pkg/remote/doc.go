// Package remote implements the search fetcher behind every dropdown of the
// order form. Each call performs one GET against a LoopBack-style list
// endpoint, optionally constrained by a `filter={"where": {...}}` query
// parameter on the level's display-name field and on the parent identifier,
// then validates and de-duplicates the returned records.
//
// Nothing is cached between calls. Network failures surface as *FetchError
// values matching ErrNetwork; records failing the display-name checks are
// dropped silently.
package remote
