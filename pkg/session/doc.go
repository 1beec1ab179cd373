/*
Package session keeps the conversations served by the network adapters.

A Manager owns one conversation.Tracker per session ID and serializes access to
each of them, so the HTTP and MCP adapters can share trackers across requests
without the tracker itself being safe for concurrent use. Sessions live in
memory only and disappear when the process exits.
*/
package session
