// Package ai defines the minimal provider model the evaluator talks to: a
// chat request, a chat response, and the [Provider] interface. Concrete
// transports (HTTP clients for specific vendors) live with the host
// application; see examples/evolve for one.
package ai
