package pathdata

import (
	"fmt"

	"github.com/bartlomiejwolk/animationpath"
	"github.com/emirpasic/gods/maps/treemap"
)

// EventKind identifies a change notification.
type EventKind int

// Notifications emitted by PathData.
const (
	NodeAdded EventKind = iota + 1
	NodeRemoved
	NodePositionChanged
	NodeTimeChanged
	NodeTiltChanged
	PathReset
	RotationPathReset
	RotationPointPositionChanged
	NodeTangentsChanged
	EaseCurveReset
	TiltCurveReset
)

func (k EventKind) String() string {
	switch k {
	case NodeAdded:
		return "NodeAdded"
	case NodeRemoved:
		return "NodeRemoved"
	case NodePositionChanged:
		return "NodePositionChanged"
	case NodeTimeChanged:
		return "NodeTimeChanged"
	case NodeTiltChanged:
		return "NodeTiltChanged"
	case PathReset:
		return "PathReset"
	case RotationPathReset:
		return "RotationPathReset"
	case RotationPointPositionChanged:
		return "RotationPointPositionChanged"
	case NodeTangentsChanged:
		return "NodeTangentsChanged"
	case EaseCurveReset:
		return "EaseCurveReset"
	case TiltCurveReset:
		return "TiltCurveReset"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is the payload of a notification. NodeIndex and Timestamp are set
// for NodeAdded (the new node) and NodeRemoved (the node as it was before
// removal); otherwise NodeIndex is animationpath.NotFound.
type Event struct {
	Kind      EventKind
	NodeIndex int
	Timestamp float64
}

func (ev Event) String() string {
	if ev.NodeIndex == animationpath.NotFound {
		return ev.Kind.String()
	}
	return fmt.Sprintf("%s(%d, t=%.4g)", ev.Kind, ev.NodeIndex, ev.Timestamp)
}

// Listener receives notifications. Listeners are called synchronously, on
// the goroutine performing the mutation, after PathData has restored its
// own invariants. A listener may call back into PathData.
type Listener func(pd *PathData, ev Event)

// Subscribe registers a listener and returns a function removing it again.
// Listeners are called in the order of subscription.
func (pd *PathData) Subscribe(l Listener) (cancel func()) {
	if pd.listeners == nil {
		pd.listeners = treemap.NewWithIntComparator()
	}
	pd.nextID++
	id := pd.nextID
	pd.listeners.Put(id, l)
	return func() {
		pd.listeners.Remove(id)
	}
}

func (pd *PathData) notify(kind EventKind) {
	pd.notifyNode(kind, animationpath.NotFound, 0)
}

func (pd *PathData) notifyNode(kind EventKind, index int, t float64) {
	ev := Event{Kind: kind, NodeIndex: index, Timestamp: t}
	tracer().Debugf("notify %s", ev)
	if pd.listeners == nil {
		return
	}
	// Values is a snapshot: listeners may unsubscribe while being notified
	for _, l := range pd.listeners.Values() {
		l.(Listener)(pd, ev)
	}
}
