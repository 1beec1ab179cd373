package moodbot_test

import (
	"fmt"
	"log"

	"github.com/aretw0/moodbot"
)

// ExampleBot_Analyze shows standalone scoring without a conversation.
func ExampleBot_Analyze() {
	bot, err := moodbot.New()
	if err != nil {
		log.Fatal(err)
	}

	for _, msg := range []string{"I am happy and excited", "This is terrible and awful and bad", "happy sad", ""} {
		res := bot.Analyze(msg)
		fmt.Printf("%s %.2f\n", res.Label, res.Score)
	}
	// Output:
	// positive 1.00
	// negative -1.00
	// neutral 0.00
	// neutral 0.00
}

// ExampleBot_NewConversation tracks the trend across several turns.
func ExampleBot_NewConversation() {
	bot, err := moodbot.New(moodbot.WithSeed(7))
	if err != nil {
		log.Fatal(err)
	}

	chat, err := bot.NewConversation("")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(chat.Trend())
	chat.Respond("thanks, that was great")
	chat.Respond("what a wonderful idea")
	fmt.Println(chat.Trend())
	chat.Respond("I hate this")
	chat.Respond("worst weekend, so upset")
	chat.Respond("awful")
	fmt.Println(chat.Trend())
	// Output:
	// Not enough data yet
	// Overall positive conversation (trending up)
	// Neutral conversation (stable)
}
