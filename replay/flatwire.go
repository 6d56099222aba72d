// Package replay serializes an engine event stream to FlatBuffers for
// external consumers (UI playback, log archival) and provides the
// determinism-verification helpers described in §8. Encoding is done
// with the raw flatbuffers.Builder API directly rather than through a
// schema-compiler-generated accessor package, the same low-level style
// cgo/bridge.go used to hand-assemble AggregatedStats tables.
package replay

import (
	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/fatesofolympus/olympus/engine"
)

// Event table field slots, in the fixed order every encodeEvent call
// writes them and every decodeEvent call reads them back.
const (
	fieldType int = iota
	fieldPlayer
	fieldInstance
	fieldLocation
	fieldOldValue
	fieldNewValue
	fieldSource
	fieldFromLocation
	fieldToLocation
	fieldReason
	fieldMoveFailure
	fieldCount
)

func encodeEvent(b *flatbuffers.Builder, e engine.Event) flatbuffers.UOffsetT {
	typeOff := b.CreateString(string(e.Type))
	reasonOff := b.CreateString(string(e.Reason))
	moveFailOff := b.CreateString(string(e.MoveFailure))

	b.StartObject(fieldCount)
	b.PrependUOffsetTSlot(fieldType, typeOff, 0)
	b.PrependByteSlot(fieldPlayer, byte(e.Player), 0)
	b.PrependInt32Slot(fieldInstance, e.Instance, 0)
	b.PrependInt32Slot(fieldLocation, int32(e.Location), 0)
	b.PrependInt32Slot(fieldOldValue, int32(e.OldValue), 0)
	b.PrependInt32Slot(fieldNewValue, int32(e.NewValue), 0)
	b.PrependInt32Slot(fieldSource, e.Source, 0)
	b.PrependInt32Slot(fieldFromLocation, int32(e.FromLocation), 0)
	b.PrependInt32Slot(fieldToLocation, int32(e.ToLocation), 0)
	b.PrependUOffsetTSlot(fieldReason, reasonOff, 0)
	b.PrependUOffsetTSlot(fieldMoveFailure, moveFailOff, 0)
	return b.EndObject()
}

func decodeEvent(buf []byte, pos flatbuffers.UOffsetT) engine.Event {
	t := &flatbuffers.Table{}
	t.Bytes = buf
	t.Pos = pos

	var ev engine.Event
	if off := flatbuffers.UOffsetT(t.Offset(flatbuffers.VOffsetT((fieldType + 2) * 2))); off != 0 {
		ev.Type = engine.EventType(t.ByteVector(off + t.Pos))
	}
	ev.Player = engine.PlayerID(t.GetByteSlot(flatbuffers.VOffsetT((fieldPlayer+2)*2), 0))
	ev.Instance = t.GetInt32Slot(flatbuffers.VOffsetT((fieldInstance+2)*2), 0)
	ev.Location = int(t.GetInt32Slot(flatbuffers.VOffsetT((fieldLocation+2)*2), 0))
	ev.OldValue = int(t.GetInt32Slot(flatbuffers.VOffsetT((fieldOldValue+2)*2), 0))
	ev.NewValue = int(t.GetInt32Slot(flatbuffers.VOffsetT((fieldNewValue+2)*2), 0))
	ev.Source = t.GetInt32Slot(flatbuffers.VOffsetT((fieldSource+2)*2), 0)
	ev.FromLocation = int(t.GetInt32Slot(flatbuffers.VOffsetT((fieldFromLocation+2)*2), 0))
	ev.ToLocation = int(t.GetInt32Slot(flatbuffers.VOffsetT((fieldToLocation+2)*2), 0))
	if off := flatbuffers.UOffsetT(t.Offset(flatbuffers.VOffsetT((fieldReason + 2) * 2))); off != 0 {
		ev.Reason = engine.InvalidReason(t.ByteVector(off + t.Pos))
	}
	if off := flatbuffers.UOffsetT(t.Offset(flatbuffers.VOffsetT((fieldMoveFailure + 2) * 2))); off != 0 {
		ev.MoveFailure = engine.MoveFailReason(t.ByteVector(off + t.Pos))
	}
	return ev
}

// EncodeEventStream builds a single FlatBuffers buffer holding every
// event in order. The root is a one-field table (field 0: a vector of
// Event tables) rather than a bare vector, so the buffer can later grow
// a second field (e.g. a turn/seed header) without changing the wire
// layout of the first.
func EncodeEventStream(events []engine.Event) []byte {
	b := flatbuffers.NewBuilder(1024)
	offsets := make([]flatbuffers.UOffsetT, len(events))
	for i, e := range events {
		offsets[i] = encodeEvent(b, e)
	}
	b.StartVector(flatbuffers.SizeUOffsetT, len(events), flatbuffers.SizeUOffsetT)
	for i := len(offsets) - 1; i >= 0; i-- {
		b.PrependUOffsetT(offsets[i])
	}
	vec := b.EndVector(len(events))

	b.StartObject(1)
	b.PrependUOffsetTSlot(0, vec, 0)
	root := b.EndObject()
	b.Finish(root)
	return b.FinishedBytes()
}

// DecodeEventStream reverses EncodeEventStream.
func DecodeEventStream(buf []byte) []engine.Event {
	rootOff := flatbuffers.GetUOffsetT(buf)
	root := &flatbuffers.Table{Bytes: buf, Pos: rootOff}

	vecFieldOff := flatbuffers.UOffsetT(root.Offset(flatbuffers.VOffsetT((0 + 2) * 2)))
	if vecFieldOff == 0 {
		return nil
	}
	n := root.VectorLen(vecFieldOff)
	vecStart := root.Vector(vecFieldOff)

	out := make([]engine.Event, 0, n)
	for i := 0; i < n; i++ {
		elemPos := vecStart + flatbuffers.UOffsetT(i)*flatbuffers.SizeUOffsetT
		elemOff := root.Indirect(elemPos)
		out = append(out, decodeEvent(buf, elemOff))
	}
	return out
}
