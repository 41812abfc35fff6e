package engine

import "github.com/opd-ai/go-thrusters/pkg/entity"

// Role is what drives a ship while it is not focused. The focused ship is
// always driven by the player's Command.
type Role int

const (
	// RoleIdle ships drift under their current velocities.
	RoleIdle Role = iota
	// RoleFollower ships steer toward and approach the focused ship.
	RoleFollower
)

func (r Role) String() string {
	if r == RoleFollower {
		return "follower"
	}
	return "idle"
}

// Command is the player's input for one tick.
type Command struct {
	Thrust    bool
	TurnLeft  bool
	TurnRight bool
	Brake     bool
}

// steer fires engines for the command. Thrust overrides turning. Turning
// right fires the left side engines and turning left the right side ones.
func (c Command) steer(s *entity.Ship) {
	if c.Thrust {
		s.FullThrottle()
		return
	}
	if c.TurnRight {
		s.FullLeftThrottle()
	}
	if c.TurnLeft {
		s.FullRightThrottle()
	}
}

// brake applies the damping half of the command. It runs after followers
// have read the ship's velocity.
func (c Command) brake(s *entity.Ship) {
	if c.Brake {
		s.DampVelocities()
	}
}
