package category

import (
	"testing"

	"github.com/fathomtext/fathom/pkg/types"
)

func TestExtractResults(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		action  string
		outcome string
	}{
		{
			"led to",
			"I skipped testing which led to a production outage",
			"I skipped testing",
			"a production outage",
		},
		{
			"resulting in",
			"We doubled the cache size resulting in faster page loads",
			"We doubled the cache size",
			"faster page loads",
		},
		{
			"because reversed",
			"We missed the deadline because the build kept failing",
			"the build kept failing",
			"We missed the deadline",
		},
		{
			"so",
			"The test suite was flaky so we rewrote it in Go",
			"The test suite was flaky",
			"we rewrote it in Go",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := ExtractResults(tt.text)
			if len(rs) != 1 {
				t.Fatalf("got %d results, want 1: %+v", len(rs), rs)
			}
			if rs[0].Action != tt.action {
				t.Errorf("action = %q, want %q", rs[0].Action, tt.action)
			}
			if rs[0].Outcome != tt.outcome {
				t.Errorf("outcome = %q, want %q", rs[0].Outcome, tt.outcome)
			}
		})
	}
}

func TestExtractResultsSentiment(t *testing.T) {
	rs := ExtractResults("I switched to Vim so now I edit faster")
	if len(rs) != 1 {
		t.Fatalf("got %d results, want 1: %+v", len(rs), rs)
	}
	if rs[0].Sentiment != types.SentimentPositive {
		t.Errorf("sentiment = %q, want positive", rs[0].Sentiment)
	}
}

func TestExtractResultsStrongOutranksModerate(t *testing.T) {
	strong := ExtractResults("I skipped testing which led to a production outage")
	moderate := ExtractResults("It rained so we stayed inside")
	if len(strong) != 1 || len(moderate) != 1 {
		t.Fatalf("got %d strong, %d moderate; want 1 each", len(strong), len(moderate))
	}
	if strong[0].Confidence <= moderate[0].Confidence {
		t.Errorf("strong connector confidence %v not above moderate %v",
			strong[0].Confidence, moderate[0].Confidence)
	}
}

func TestExtractResultsNoConnector(t *testing.T) {
	if rs := ExtractResults("I want to learn Go"); len(rs) != 0 {
		t.Errorf("got %+v, want none", rs)
	}
}
