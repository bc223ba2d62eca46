// Package httpapi exposes an account source over REST (gin) and provides an
// HTTP client that implements source.Source against that API.
//
// Routes:
//
//	GET  /api/health
//	GET  /api/accounts            ?refresh=true bypasses backend caches
//	POST /api/accounts/update     {"ids": ["001", ...]} -> {"messages": [...]}
//
// When a JWT secret is configured, /api/accounts routes require an HS256
// bearer token.
package httpapi
