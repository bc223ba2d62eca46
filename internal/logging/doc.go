// Package logging configures zerolog for accountdesk and carries loggers and
// trace ids through context.Context.
package logging
