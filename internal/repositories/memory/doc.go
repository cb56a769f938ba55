// Package memory provides in-process implementations of the repository ports.
// Every method returns copies so callers can never mutate stored records.
package memory
