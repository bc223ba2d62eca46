// Package memory provides an in-process account backend seeded from YAML
// fixtures. It applies the same promotion rules as the SQL backend and is the
// default source for the CLI and the demo server.
package memory
