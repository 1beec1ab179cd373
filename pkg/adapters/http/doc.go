/*
Package http exposes moodbot over a JSON HTTP API.

Routes:

	GET    /health                  liveness probe
	GET    /info                    app name and version
	POST   /analyze                 one-shot scoring ({"text": ...}; ?explain=true adds hits)
	POST   /sessions                start a conversation ({"name": ...} optional)
	GET    /sessions                list live session IDs
	POST   /sessions/{id}/messages  send a message, get the bot's reply
	GET    /sessions/{id}/trend     trend report of the recent exchanges
	GET    /sessions/{id}/history   recent exchanges, oldest first
	GET    /sessions/{id}/graph     Mermaid flowchart of the recent exchanges
	GET    /sessions/{id}/events    server-sent events, one per exchange
	DELETE /sessions/{id}           end a conversation
	GET    /metrics                 prometheus exposition
*/
package http
