/*
Package moodbot is a small conversational engine that reads the mood of free-text
messages and answers in kind.

Each message is scored against a fixed polarity lexicon (package sentiment), recorded
in a rolling five-turn history, and answered with a reply template chosen for its
label (package conversation). The history is also summarized into a trend: is the
conversation heading up, down, or staying level?

# Usage

	package main

	import (
		"fmt"
		"log"

		"github.com/aretw0/moodbot"
	)

	func main() {
		bot, err := moodbot.New(moodbot.WithSeed(42))
		if err != nil {
			log.Fatal(err)
		}

		chat, err := bot.NewConversation("Ada")
		if err != nil {
			log.Fatal(err)
		}

		reply, mood := chat.Respond("I am happy and excited")
		fmt.Printf("[%s %.2f] %s\n", mood.Label, mood.Score, reply)
		fmt.Println(chat.Trend())
	}

The terminal loop, HTTP API and MCP server in this module are thin shells over
these three calls: Analyze, Respond and Trend.
*/
package moodbot
