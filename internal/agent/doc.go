// Package agent implements the interactive session loop: resolving user
// input into actions, gating mutating actions behind confirmation,
// dispatching to the Gmail and Calendar collaborators, and formatting
// results for display.
//
// The loop is a small state machine (awaiting input, resolving, awaiting
// confirmation, dispatching, reporting, terminated). Requests are handled
// strictly sequentially; the only state carried between lines is the
// resolver's bounded conversation history. Collaborators are injected as
// interfaces so the loop is testable without a live model or network.
package agent
