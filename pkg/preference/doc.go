// Package preference implements the stores the resolver persists the chosen
// language in.
//
// Cookie keeps the preference in the visitor's browser and needs no server
// state. Cache and Postgres keep it on the server, keyed by a visitor ID that
// lives in its own long-lived cookie (see Visitor). All stores are
// last-write-wins.
package preference
