/*
Package sentiment implements the lexical polarity scorer used by moodbot.

A fixed Lexicon of positive and negative words is matched against the word tokens
of a message. The net polarity is normalized into a score in [-1, 1] and bucketed
into a coarse Label.

# Scoring

	score = (pos - neg) / (pos + neg)   // 0 when no lexicon word occurs

Labels use strict thresholds: score > 0.2 is positive, score < -0.2 is negative,
and everything in between (including exactly ±0.2) is neutral.

The Analyzer holds no mutable state and is safe for concurrent use.
*/
package sentiment
