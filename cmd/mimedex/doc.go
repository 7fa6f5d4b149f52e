// Command mimedex queries the media type registry from the terminal: content
// type and filename lookups, registry statistics, snapshot cache maintenance,
// and data source compilation.
package main
