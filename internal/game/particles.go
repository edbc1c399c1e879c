package game

import (
	"math"
	"math/rand"
)

// Particle is one pop-burst fragment. Purely cosmetic; the shell draws
// whatever the arena holds.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Life   int // remaining ticks
	Color  BubbleColor
}

// ParticleArena holds live particles with index-based swap-remove, so
// removal is O(1) and iteration never sees a hole. Order is not meaningful.
type ParticleArena struct {
	items []Particle
}

// Spawn adds a particle.
func (a *ParticleArena) Spawn(p Particle) {
	a.items = append(a.items, p)
}

// Update advances all particles one tick and swap-removes expired ones.
func (a *ParticleArena) Update() {
	for i := 0; i < len(a.items); {
		p := &a.items[i]
		p.X += p.VX
		p.Y += p.VY
		p.VY += 0.15 // light fall so bursts arc downward
		p.Life--
		if p.Life <= 0 {
			last := len(a.items) - 1
			a.items[i] = a.items[last]
			a.items = a.items[:last]
			continue // re-examine the swapped-in particle
		}
		i++
	}
}

// Items returns the live particles. Valid until the next Update.
func (a *ParticleArena) Items() []Particle { return a.items }

// Len returns the live particle count.
func (a *ParticleArena) Len() int { return len(a.items) }

// spawnBurst scatters a ring of particles at a popped bubble's position.
func (a *ParticleArena) spawnBurst(x, y float64, c BubbleColor, rng *rand.Rand) {
	const count = 8
	for i := 0; i < count; i++ {
		ang := float64(i)/count*2*math.Pi + rng.Float64()*0.4
		speed := 1.5 + rng.Float64()*2
		a.Spawn(Particle{
			X:     x,
			Y:     y,
			VX:    math.Cos(ang) * speed,
			VY:    math.Sin(ang) * speed,
			Life:  20 + rng.Intn(15),
			Color: c,
		})
	}
}
