package particle

import "strings"

// Kind selects the render routine and the lifecycle policy of a particle.
type Kind uint8

const (
	KindSparkle Kind = iota
	KindGlow
	KindRing
	KindEnergy
	KindMote

	KindProfit
	KindLoss
	KindOrder
	KindAlert

	kindCount
)

var kindNames = [...]string{
	KindSparkle: "sparkle",
	KindGlow:    "glow",
	KindRing:    "ring",
	KindEnergy:  "energy",
	KindMote:    "mote",
	KindProfit:  "profit",
	KindLoss:    "loss",
	KindOrder:   "order",
	KindAlert:   "alert",
}

func (k Kind) String() string {
	if k >= kindCount {
		return "unknown"
	}
	return kindNames[k]
}

// Valid reports whether k names a known kind.
func (k Kind) Valid() bool { return k < kindCount }

// IsEvent reports whether k is an event kind: gravity, no wrap, no attraction.
func (k Kind) IsEvent() bool { return k >= KindProfit && k < kindCount }

// Monetary reports whether the burst magnitude of k is a signed amount that
// drives size, alpha and count.
func (k Kind) Monetary() bool { return k == KindProfit || k == KindLoss }

// ParseKind resolves a kind by name. "rune" is accepted as an alias for ring.
func ParseKind(name string) (Kind, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "rune" {
		return KindRing, true
	}
	for i, n := range kindNames {
		if n == name {
			return Kind(i), true
		}
	}
	return 0, false
}

// EventKinds lists the burst kinds in declaration order.
func EventKinds() []Kind {
	return []Kind{KindProfit, KindLoss, KindOrder, KindAlert}
}
