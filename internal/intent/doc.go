// Package intent defines the fixed set of actions the agent supports and
// the resolver that maps free-text user input onto them.
//
// The Action type is a closed sum over the supported operations; each
// variant carries only its own parameters and validates them before any
// external API is called. The Resolver delegates the actual language
// understanding to an external model collaborator and is responsible only
// for the contract around it: the schema prompt, strict-JSON reply
// parsing, and a precise failure taxonomy (ResolutionError,
// ValidationError, ErrNoMatch).
package intent
