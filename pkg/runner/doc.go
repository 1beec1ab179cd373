/*
Package runner implements the interactive turn loop for moodbot.

It bridges a conversation.Tracker and the outside world: it reads a line, routes
commands (quit, exit, trend), scores everything else through the tracker and hands
the result to an IOHandler for display.

# Key Components

  - Runner: the read → score → respond → print loop.
  - IOHandler: decouples how turns are read and shown.
  - TextHandler: the standard interactive terminal handler.
  - JSONHandler: NDJSON in, NDJSON out, for scripting.

# Usage

	r := runner.NewRunner(
		runner.WithInputHandler(runner.NewTextHandler(os.Stdin, os.Stdout)),
		runner.WithNamePrompt(true),
	)

	if err := r.Run(ctx, tracker); err != nil {
		log.Fatal(err)
	}
*/
package runner
