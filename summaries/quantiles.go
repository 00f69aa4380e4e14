package summaries

import (
	"github.com/DataDog/sketches-go/ddsketch"
	"github.com/DataDog/sketches-go/ddsketch/pb/sketchpb"
	"github.com/go-sif/sketchfn"
	"google.golang.org/protobuf/proto"
)

// DefaultRelativeAccuracy is the relative accuracy used by QuantilesSketch
const DefaultRelativeAccuracy = 0.01

// deterministic marshalling keeps the serialized form canonical
var quantilesMarshaller = proto.MarshalOptions{Deterministic: true}

// Quantiles tracks the distribution of float64 values using a DDSketch
type Quantiles struct {
	sketch *ddsketch.DDSketch
}

// NewQuantiles returns a new, empty Quantiles Summary with the given relative accuracy
func NewQuantiles(relativeAccuracy float64) (*Quantiles, error) {
	sketch, err := ddsketch.NewDefaultDDSketch(relativeAccuracy)
	if err != nil {
		return nil, err
	}
	return &Quantiles{sketch: sketch}, nil
}

// Add records a value
func (q *Quantiles) Add(v float64) error {
	return q.sketch.Add(v)
}

// Quantile returns the approximate value at quantile p (0 <= p <= 1)
func (q *Quantiles) Quantile(p float64) (float64, error) {
	return q.sketch.GetValueAtQuantile(p)
}

// Count returns the number of recorded values
func (q *Quantiles) Count() float64 {
	return q.sketch.GetCount()
}

// Merge merges another Quantiles Summary into this one. Sketches with different
// accuracies cannot be merged, and the resulting error is returned as-is.
func (q *Quantiles) Merge(o sketchfn.Summary) error {
	qo, ok := o.(*Quantiles)
	if !ok {
		return incompatible(q, o)
	}
	return q.sketch.MergeWith(qo.sketch)
}

// ToBytes serializes this Summary
func (q *Quantiles) ToBytes() ([]byte, error) {
	return quantilesMarshaller.Marshal(q.sketch.ToProto())
}

// FromBytes produce a new Summary from serialized data
func (q *Quantiles) FromBytes(buf []byte) (sketchfn.Summary, error) {
	var msg sketchpb.DDSketch
	if err := proto.Unmarshal(buf, &msg); err != nil {
		return nil, corrupt("quantiles", "%s", err)
	}
	sketch, err := ddsketch.FromProto(&msg)
	if err != nil {
		return nil, err
	}
	return &Quantiles{sketch: sketch}, nil
}
