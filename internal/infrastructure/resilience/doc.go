/*
Package resilience provides the circuit breaker that guards the relay's calls
to the summarization API.

The breaker never retries. When the upstream keeps failing it opens and every
relay request fails fast with ErrCircuitOpen (surfaced to the client as a 500)
until Cooldown elapses; a single trial call then decides whether to close again.

# Usage

	breaker := resilience.New("gemini", resilience.Settings{
		Threshold: 5,
		Cooldown:  30 * time.Second,
	})

	parts, err := resilience.Do(breaker, func() ([]string, error) {
		return client.Generate(ctx, prompt)
	})

# States

	Closed --[Threshold failures]-> Open --[Cooldown]-> Half-Open --[trial ok]-> Closed
	                                                               |
	                                                         [trial fails]
	                                                               v
	                                                             Open
*/
package resilience
