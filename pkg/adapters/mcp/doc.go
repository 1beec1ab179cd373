// Package mcp exposes moodbot as a Model Context Protocol tool server.
//
// Tools: analyze_sentiment, chat, sentiment_trend and end_session. Conversations
// started through chat are kept in a session.Manager and addressed by the
// returned session_id.
package mcp
