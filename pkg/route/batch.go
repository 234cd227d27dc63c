package route

// wireRecord is an arena slot for a wire known to a batch.
type wireRecord struct {
	wire       Wire
	existing   bool // present before the batch started
	superseded bool // split into two new records
}

// Batch is the mutable state shared by the requests of one routing run:
// the arena of wire records, the growing overlap set and the accumulated
// output. A Batch is not safe for concurrent use.
type Batch struct {
	board   Board
	records []*wireRecord
	byID    map[string]*wireRecord
	overlap []segment

	junctions []Point
	deleted   []string
	unrouted  []Request
}

// NewBatch starts a batch against board. Board wires keep their order and
// precede every wire produced by the batch.
func NewBatch(board Board) *Batch {
	b := &Batch{
		board: board,
		byID:  make(map[string]*wireRecord),
	}
	for _, w := range board.Wires {
		b.add(w, true)
	}
	return b
}

func (b *Batch) add(w Wire, existing bool) {
	rec := &wireRecord{wire: w, existing: existing}
	b.records = append(b.records, rec)
	if w.ID != "" {
		b.byID[w.ID] = rec
	}
	b.overlap = append(b.overlap, segment{a: w.Start, b: w.End})
}

// sameNetWires returns the live wires on net in creation order. Wires
// without an id are offered too; a route may join them but split skips them.
func (b *Batch) sameNetWires(net string) []Wire {
	if net == "" {
		return nil
	}
	var out []Wire
	for _, rec := range b.records {
		if rec.superseded {
			continue
		}
		if SameNet(rec.wire.Net, net) {
			out = append(out, rec.wire)
		}
	}
	return out
}

// pinsExcluding returns the board pins farther than radius from both a and b.
func (b *Batch) pinsExcluding(a, c Point, radius float64) []Pin {
	out := make([]Pin, 0, len(b.board.Pins))
	for _, p := range b.board.Pins {
		if Distance(p.At, a) > radius && Distance(p.At, c) > radius {
			out = append(out, p)
		}
	}
	return out
}

// split replaces the wire id with two halves meeting at the rounded point.
// The halves take net. A record is split at most once; later calls report false.
func (b *Batch) split(id string, at Point, net string, newID func() string) (Wire, Wire, bool) {
	rec, ok := b.byID[id]
	if !ok || rec.superseded {
		return Wire{}, Wire{}, false
	}
	rec.superseded = true
	if rec.existing {
		b.deleted = append(b.deleted, id)
	}

	mid := roundPoint(at)
	first := Wire{ID: newID(), Start: rec.wire.Start, End: mid, Net: net}
	second := Wire{ID: newID(), Start: mid, End: rec.wire.End, Net: net}
	b.add(first, false)
	b.add(second, false)
	return first, second, true
}

// Result returns the batch output so far. Wires lists every live record
// produced by the batch in creation order; a produced wire that a later
// request split is replaced by its halves.
func (b *Batch) Result() Result {
	res := Result{
		Junctions: append([]Point(nil), b.junctions...),
		Deleted:   append([]string(nil), b.deleted...),
		Unrouted:  append([]Request(nil), b.unrouted...),
	}
	for _, rec := range b.records {
		if rec.existing || rec.superseded {
			continue
		}
		res.Wires = append(res.Wires, rec.wire)
	}
	return res
}
