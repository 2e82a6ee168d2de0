// Package sim provides the core event-driven molecular dynamics (EDMD)
// engine: a simulator that advances a system of particles not by fixed
// time steps but by leaping from one discrete physical event to the next
// (hard-sphere collision, wall bounce, cell transition, thermostat kick,
// periodic ticker).
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - particle.go: particle store, state flags, peculiar time
//   - vector.go: 3D algebra used throughout (wraps gonum/spatial/r3)
//   - event.go: the tagged Event record and its Kind enum
//   - pel.go / fel.go: per-particle event lists and the future event list
//   - scheduler.go: the main loop, invalidation, lazy deletion, rebuild
//
// # Architecture
//
// The sim package defines the data model and the capability interfaces;
// concrete implementations live in sub-packages:
//   - sim/dynamics/: the Liouvillean (streaming, prediction, impulses)
//   - sim/bc/: boundary conditions (rectangular, periodic, Lees-Edwards)
//   - sim/cells/: the Morton-indexed neighbour cell list and its
//     shearing variant
//   - sim/interactions/: pair interactions (hard spheres, stepped wells)
//   - sim/locals/: single-particle local events (walls)
//   - sim/globals/: non-pair global events (cell transitions, sleep/wake)
//   - sim/systems/: system-wide events (thermostat, ticker)
//   - sim/xmlio/: persistent XML configuration load/save
//   - sim/scenario/: YAML-driven initial-configuration generation
//
// Sub-packages register their implementations with the scheduler through
// small capability interfaces (Interaction, Global, Local, System) rather
// than through a back-reference to a "god object" simulation type; every
// operation takes the particle store, boundary condition, and dynamics it
// needs as explicit arguments.
package sim
