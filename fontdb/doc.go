// Package fontdb is a registry of named font sources with attribute queries.
//
// A Registry maps names to text.FontSource values loaded from files,
// directories, memory or the operating system's font directories. Query
// turns strings like "Sans Bold 20" into a composite text.Font whose primary
// is the best match and whose fallbacks are the remaining matches in rank
// order.
//
// Registries are safe for concurrent use: loads and removals take an
// exclusive lock, lookups and queries a shared one. Default returns a lazily
// created process-wide registry used by the package-level functions.
package fontdb
