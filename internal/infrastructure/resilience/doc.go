/*
Package resilience provides a circuit breaker for calls to a remote
numerics server.

A breaker starts closed. Once ReadyToTrip approves the failure counts it
opens and rejects calls with ErrCircuitOpen until Timeout passes, then lets
MaxRequests trial calls through half-open: enough successes close it, any
failure reopens it.

	Closed --[failures]-> Open --[timeout]-> Half-Open --[successes]-> Closed
	                        ^                    |
	                        +-----[failure]------+

IsSuccessful separates transport failures from answers the server gave on
purpose; a DivisionByZeroError reply is a healthy server.

# Usage

	breaker := resilience.New("numerics-remote", resilience.Settings{
		Timeout:     30 * time.Second,
		ReadyToTrip: func(c resilience.Counts) bool { return c.ConsecutiveFailures >= 5 },
	})

	result, err := resilience.Do(breaker, func() (*Result, error) {
		return call(ctx)
	})
*/
package resilience
