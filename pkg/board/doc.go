// Package board implements a multi-layer grid of agents stepped in discrete ticks.
//
// The Board owns every agent it accepts. Agents live in a registry keyed by a
// process-wide, monotonically increasing ID and the grid stores IDs, never
// references. Callers and behaviors work with Agent handles; a handle to an
// agent that has been purged stops resolving instead of dangling.
//
// Each tick runs an ordered pipeline of stages, by default:
//
//  1. update_agents: every steppable agent's Behavior.Step stages changes with
//     SetPos/SetState. Shared state is not mutated, so all agents observe the
//     same snapshot. A failing or panicking Step is logged and skipped.
//  2. update_agents_end: each agent commits its staged changes (collision
//     check, grid move, census update, on_update hooks). Errors abort the tick.
//  3. scheduled_delete: agents killed during the tick are purged, on_delete
//     hooks fire and the configured Disposer receives the released agent.
//
// A Board is not safe for concurrent use. Independent boards may run on
// separate goroutines.
package board
