package player

// Roster is the ordered set of players in a match. The engine owns it and every
// player holds a reference for sensing its enemies.
type Roster struct {
	players []*Player
}

// NewRoster creates an empty roster.
func NewRoster() *Roster {
	return &Roster{}
}

// Add appends p and assigns its index.
func (r *Roster) Add(p *Player) {
	p.index = len(r.players)
	p.roster = r
	r.players = append(r.players, p)
}

// All returns the players in registration order.
func (r *Roster) All() []*Player {
	return r.players
}

// Len returns the roster size.
func (r *Roster) Len() int {
	return len(r.players)
}

// Alive returns the living players in registration order.
func (r *Roster) Alive() []*Player {
	out := make([]*Player, 0, len(r.players))
	for _, p := range r.players {
		if p.Alive() {
			out = append(out, p)
		}
	}
	return out
}

// AliveCount returns the number of living players.
func (r *Roster) AliveCount() int {
	n := 0
	for _, p := range r.players {
		if p.Alive() {
			n++
		}
	}
	return n
}
