package pathdata

import (
	"fmt"
	"slices"
	"testing"

	"github.com/bartlomiejwolk/animationpath"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	events []Event
}

func (r *recorder) listen(_ *PathData, ev Event) {
	r.events = append(r.events, ev)
}

func TestNodeEvents(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pd := newPathData(t)
	r := &recorder{}
	cancel := pd.Subscribe(r.listen)
	_, err := pd.CreateNewNode(0.5, v(0.5, 0, 0.5))
	require.NoError(t, err)
	require.NoError(t, pd.MoveNodeToPosition(1, v(1, 1, 1)))
	require.NoError(t, pd.ChangeNodeTimestamp(1, 0.6))
	require.NoError(t, pd.RemoveNode(1))
	_, err = pd.DistributeTimestamps(0)
	require.NoError(t, err)
	pd.ResetPath()
	assert.Equal(t, []Event{
		{Kind: NodeAdded, NodeIndex: 1, Timestamp: 0.5},
		{Kind: NodePositionChanged, NodeIndex: animationpath.NotFound},
		{Kind: NodeTimeChanged, NodeIndex: animationpath.NotFound},
		{Kind: NodeRemoved, NodeIndex: 1, Timestamp: 0.6},
		{Kind: NodeTimeChanged, NodeIndex: animationpath.NotFound},
		{Kind: PathReset, NodeIndex: animationpath.NotFound},
	}, r.events)
	cancel()
	_, err = pd.CreateNewNode(0.5, v(0.5, 0, 0.5))
	require.NoError(t, err)
	assert.Len(t, r.events, 6)
}

func TestFailedOperationsAreSilent(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pd := newPathData(t)
	r := &recorder{}
	pd.Subscribe(r.listen)
	_, err := pd.CreateNewNode(2, v(0, 0, 0))
	assert.Error(t, err)
	assert.Error(t, pd.RemoveNode(2))
	assert.Error(t, pd.MoveNodeToPosition(-1, v(0, 0, 0)))
	assert.Error(t, pd.ChangeNodeTimestamp(1, 0.5))
	assert.Empty(t, r.events)
}

func TestListenersSeeReconciledState(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pd := newPathData(t)
	calls := 0
	pd.Subscribe(func(pd *PathData, ev Event) {
		calls++
		assert.Equal(t, pd.NodesNo(), len(pd.EaseToolState()), "on %s", ev)
		assert.Equal(t, pd.NodesNo(), pd.RotationPathNodesNo(), "on %s", ev)
		if ev.Kind == NodeAdded {
			// listeners may call back
			assert.NoError(t, pd.EnableTilt(ev.NodeIndex))
		}
	})
	_, err := pd.CreateNewNode(0.25, v(0, 1, 0))
	require.NoError(t, err)
	_, err = pd.CreateNodeAtTime(0.75)
	require.NoError(t, err)
	require.NoError(t, pd.RemoveNode(1))
	assert.Equal(t, []bool{true, true, true}, pd.TiltToolState())
	assert.Equal(t, 5, calls) // 2 adds, 2 tilt changes, 1 removal
	assertConsistent(t, pd)
}

func TestCancelWhileNotifying(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pd := newPathData(t)
	var cancel func()
	first, second := 0, 0
	cancel = pd.Subscribe(func(*PathData, Event) {
		first++
		cancel()
	})
	pd.Subscribe(func(*PathData, Event) { second++ })
	pd.OffsetNodePositions(v(1, 0, 0))
	pd.OffsetNodePositions(v(1, 0, 0))
	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

// eventSlots keeps one named slot per node, the way an external event
// manager attaches payloads to path nodes.
type eventSlots struct {
	names []string
	next  int
}

func (es *eventSlots) listen(pd *PathData, ev Event) {
	switch ev.Kind {
	case NodeAdded:
		es.next++
		es.names = slices.Insert(es.names, ev.NodeIndex, fmt.Sprintf("slot-%d", es.next))
	case NodeRemoved:
		es.names = slices.Delete(es.names, ev.NodeIndex, ev.NodeIndex+1)
	case PathReset:
		es.names = es.names[:0]
		for i := 0; i < pd.NodesNo(); i++ {
			es.next++
			es.names = append(es.names, fmt.Sprintf("slot-%d", es.next))
		}
	}
}

func TestEventSlotsStayInLockStep(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pd := newPathData(t)
	es := &eventSlots{names: []string{"start", "end"}}
	pd.Subscribe(es.listen)
	for _, tm := range []float64{0.5, 0.25, 0.75} {
		_, err := pd.CreateNewNode(tm, v(tm, 0, 0))
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"start", "slot-2", "slot-1", "slot-3", "end"}, es.names)
	require.NoError(t, pd.RemoveNode(2))
	require.NoError(t, pd.RemoveNode(0))
	assert.Equal(t, []string{"slot-2", "slot-3", "end"}, es.names)
	assert.Equal(t, pd.NodesNo(), len(es.names))
	pd.ResetPath()
	assert.Len(t, es.names, 2)
}

func TestEventString(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.Equal(t, "NodeAdded(1, t=0.5)", Event{Kind: NodeAdded, NodeIndex: 1, Timestamp: 0.5}.String())
	assert.Equal(t, "PathReset", Event{Kind: PathReset, NodeIndex: animationpath.NotFound}.String())
	assert.Equal(t, "EventKind(99)", EventKind(99).String())
}
