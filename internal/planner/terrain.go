package planner

import (
	"hash/fnv"

	"github.com/aquilax/go-perlin"
)

// terrainSeed is fixed, not drawn from the Simulation's rng: GeneratePlan
// is a pure function of the agent's own state, and re-scoring the same
// cognitive map twice must always rank frontiers identically.
const terrainSeed = 11

// terrainScale controls how far apart two location ids land in noise
// space; small enough that nearby hash buckets still correlate a
// little, matching how real terrain noise is locally smooth.
const terrainScale = 0.015

// terrainBonusWeight caps how much a frontier's desirability can move
// the candidate's baseScore, relative to the 50-point FRONTIER base.
const terrainBonusWeight = 15.0

var terrainNoise = perlin.NewPerlin(2, 2, 3, terrainSeed)

// terrainDesirability derives a stable pseudo-coordinate for loc from
// its id (not a real world coordinate — the Planner never sees one)
// and samples 2D Perlin noise there, returning a value in [-1, 1] that
// nudges FRONTIER scoring toward "richer-looking" unexplored terrain.
func terrainDesirability(loc string) float64 {
	x, y := locationCoords(loc)
	return terrainNoise.Noise2D(x*terrainScale, y*terrainScale)
}

// locationCoords hashes loc into a deterministic pair of pseudo
// coordinates. The two halves of a 64-bit FNV hash feed the two axes
// so that distinct ids almost never collide onto the same point.
func locationCoords(loc string) (float64, float64) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(loc))
	sum := h.Sum64()
	x := float64(uint32(sum))
	y := float64(uint32(sum >> 32))
	return x, y
}
