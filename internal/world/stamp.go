package world

import "strconv"

// RevealDuration is how many frames a pinged tile stays on screen.
const RevealDuration = 20

type stampKind uint8

const (
	stampNever stampKind = iota
	stampFrame
	stampPermanent
)

// Stamp records when a tile was last revealed. The zero value is Never.
type Stamp struct {
	kind  stampKind
	frame int
}

// Never is the stamp of a tile no ping has reached.
var Never = Stamp{}

// Permanent is the stamp of a tile that stays revealed for the rest of the level.
var Permanent = Stamp{kind: stampPermanent}

// SeenAt returns a stamp for a reveal at the given frame.
func SeenAt(frame int) Stamp {
	return Stamp{kind: stampFrame, frame: frame}
}

// IsNever reports whether the tile has never been revealed.
func (s Stamp) IsNever() bool {
	return s.kind == stampNever
}

// IsPermanent reports whether the tile is revealed for good.
func (s Stamp) IsPermanent() bool {
	return s.kind == stampPermanent
}

// Frame returns the reveal frame and whether the stamp carries one.
func (s Stamp) Frame() (int, bool) {
	return s.frame, s.kind == stampFrame
}

// Visible is the fade gate: a tile shows at frame now if it was revealed
// fewer than RevealDuration frames ago, or permanently.
func (s Stamp) Visible(now int) bool {
	switch s.kind {
	case stampPermanent:
		return true
	case stampFrame:
		return now-s.frame < RevealDuration
	default:
		return false
	}
}

func (s Stamp) String() string {
	switch s.kind {
	case stampPermanent:
		return "permanent"
	case stampFrame:
		return "frame " + strconv.Itoa(s.frame)
	default:
		return "never"
	}
}
