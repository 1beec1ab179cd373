/*
Package conversation tracks a single chat session: it scores each user turn,
keeps a bounded rolling History, picks a templated reply and summarizes the
sentiment trend across the stored turns.

A Tracker is owned by one logical thread of control and performs no locking.
Shells that multiplex sessions (HTTP, MCP) serialize access per session
themselves; see package session.

All non-determinism (template choice and the personalization coin-flip) flows
through an injected Random source, so tests can script it.
*/
package conversation
