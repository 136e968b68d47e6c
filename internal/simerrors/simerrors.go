// Package simerrors defines the sentinel errors the simulation core
// surfaces across its public boundary. Internal layers prefer
// returning an unsuccessful Effect with a human-readable Message over
// an error value — these sentinels are for failures that make
// continuing the run itself meaningless.
package simerrors

import "errors"

var (
	// ErrUnknownLocation names a reference to a location id the World
	// never registered. No function in this module returns it: World
	// ignores unknown ids and Physics reports them as failed Effects.
	ErrUnknownLocation = errors.New("simerrors: unknown location")

	// ErrUnknownAgent names a reference to an agent id the World never
	// registered. No function in this module returns it.
	ErrUnknownAgent = errors.New("simerrors: unknown agent")

	// ErrUnknownEntity names a reference to an object id the World never
	// registered. No function in this module returns it.
	ErrUnknownEntity = errors.New("simerrors: unknown entity")

	// ErrNoAgents is returned by Run if the world holds no agents at
	// all — there is nothing to simulate.
	ErrNoAgents = errors.New("simerrors: world has no agents")

	// ErrInvalidTickCount is returned by Run for a non-positive max
	// tick count.
	ErrInvalidTickCount = errors.New("simerrors: max ticks must be positive")
)
