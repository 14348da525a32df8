// Package manifest loads custom tool definitions from a YAML tools file. Files
// are validated against an embedded JSON Schema before they are decoded, so
// users get path-level messages (e.g. "/tools/0/file: missing property")
// instead of a bare decoding error.
package manifest
