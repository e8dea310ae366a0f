// Package memory holds the in-process stores behind the mock console backend.
// Every store is safe for concurrent use and is seeded with a small
// organization so the console has something to show on first start.
package memory
