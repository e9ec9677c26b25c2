package measurement

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/philipparndt/gomeasure/pkg/geometry"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrMalformedRecord marks a record that cannot be reconstructed
	ErrMalformedRecord = errors.New("malformed measurement record")
	// ErrUnresolvedAnchor marks an object id the resolver could not map
	ErrUnresolvedAnchor = errors.New("unresolved anchor object")
)

// PointRecord is the plain form of a Point
type PointRecord struct {
	Position            []float64 `json:"position"`
	AnchorObjectID      string    `json:"anchorObjectId,omitempty"`
	AnchorLocalPosition []float64 `json:"anchorLocalPosition,omitempty"`
}

// OptionsRecord is the plain form of Options; targets are encoded by id
type OptionsRecord struct {
	SnapMode        string   `json:"snapMode"`
	SnapEnabled     bool     `json:"snapEnabled"`
	SnapDistance    float64  `json:"snapDistance"`
	LineColor       string   `json:"lineColor"`
	LabelColor      string   `json:"labelColor"`
	LineWidth       float64  `json:"lineWidth"`
	FontSize        float64  `json:"fontSize"`
	FontFamily      string   `json:"fontFamily"`
	IsDynamic       bool     `json:"isDynamic"`
	TargetObjectIDs []string `json:"targetObjectIds,omitempty"`
}

// Record is the plain, serializable form of a Measurement
type Record struct {
	ID       string        `json:"id"`
	Start    PointRecord   `json:"start"`
	End      PointRecord   `json:"end"`
	Distance float64       `json:"distance"`
	Options  OptionsRecord `json:"options"`
}

// Serialize converts measurements into records
func Serialize(ms []*Measurement) []Record {
	records := make([]Record, 0, len(ms))
	for _, m := range ms {
		records = append(records, Record{
			ID:       m.ID,
			Start:    pointRecord(m.Start),
			End:      pointRecord(m.End),
			Distance: m.Distance,
			Options:  optionsRecord(m.Options),
		})
	}
	return records
}

func pointRecord(p Point) PointRecord {
	rec := PointRecord{Position: vec(p.World)}
	if p.Anchored() {
		rec.AnchorObjectID = p.Anchor.Object.ID()
		rec.AnchorLocalPosition = vec(p.Anchor.Local)
	}
	return rec
}

func optionsRecord(o Options) OptionsRecord {
	return OptionsRecord{
		SnapMode:        string(o.SnapMode),
		SnapEnabled:     o.SnapEnabled,
		SnapDistance:    o.SnapDistance,
		LineColor:       FormatColor(o.LineColor),
		LabelColor:      FormatColor(o.LabelColor),
		LineWidth:       o.LineWidth,
		FontSize:        o.FontSize,
		FontFamily:      o.FontFamily,
		IsDynamic:       o.Dynamic,
		TargetObjectIDs: o.TargetIDs(),
	}
}

func vec(v geometry.Vector3) []float64 {
	return []float64{v.X, v.Y, v.Z}
}

func toVector(xs []float64) (geometry.Vector3, error) {
	if len(xs) != 3 {
		return geometry.Vector3{}, fmt.Errorf("expected 3 coordinates, got %d", len(xs))
	}
	return geometry.NewVector3(xs[0], xs[1], xs[2]), nil
}

// DiagnosticKind classifies a recovered problem
type DiagnosticKind int

const (
	UnresolvedAnchor DiagnosticKind = iota
	UnresolvedTarget
	MalformedRecord
)

func (k DiagnosticKind) String() string {
	switch k {
	case UnresolvedAnchor:
		return "unresolved_anchor"
	case UnresolvedTarget:
		return "unresolved_target"
	case MalformedRecord:
		return "malformed_record"
	default:
		return "unknown"
	}
}

// Diagnostic reports a problem that was recovered from locally
type Diagnostic struct {
	Kind     DiagnosticKind
	Index    int    // position of the record in the input
	RecordID string // may be empty for undecodable records
	ObjectID string // set for unresolved anchors and targets
	Err      error
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("record %d (%s): %v", d.Index, d.RecordID, d.Err)
}

func (d Diagnostic) Unwrap() error {
	return d.Err
}

// DiagnosticFunc receives diagnostics as they occur
type DiagnosticFunc func(Diagnostic)

// ResolveFunc maps an object id back to a live object. It may block, for
// instance while the object is still loading; it is called concurrently.
type ResolveFunc func(ctx context.Context, id string) (SceneObject, error)

// Lookup adapts a typed lookup function to a ResolveFunc
func Lookup[T SceneObject](fn func(context.Context, string) (T, error)) ResolveFunc {
	return func(ctx context.Context, id string) (SceneObject, error) {
		obj, err := fn(ctx, id)
		if err != nil {
			return nil, err
		}
		return obj, nil
	}
}

// CodecOption configures a Codec
type CodecOption func(*Codec)

// WithCodecLogger sets the logger used for warn-level diagnostics
func WithCodecLogger(log zerolog.Logger) CodecOption {
	return func(c *Codec) {
		c.log = log
	}
}

// WithDiagnostics registers a callback for recovered problems
func WithDiagnostics(fn DiagnosticFunc) CodecOption {
	return func(c *Codec) {
		c.onDiagnostic = fn
	}
}

// WithResolveConcurrency bounds the number of in-flight resolutions
func WithResolveConcurrency(n int) CodecOption {
	return func(c *Codec) {
		c.concurrency = n
	}
}

// Codec reconstructs measurements from records
type Codec struct {
	log          zerolog.Logger
	onDiagnostic DiagnosticFunc
	concurrency  int
	metrics      counters
}

// NewCodec creates a codec
func NewCodec(opts ...CodecOption) *Codec {
	c := &Codec{
		log:         zerolog.Nop(),
		concurrency: 8,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.metrics = newCounters()
	return c
}

func (c *Codec) report(d Diagnostic) {
	c.metrics.diagnostic(d.Kind)
	c.log.Warn().
		Stringer("kind", d.Kind).
		Int("index", d.Index).
		Str("record", d.RecordID).
		Str("object", d.ObjectID).
		Err(d.Err).
		Msg("measurement record recovered")
	if c.onDiagnostic != nil {
		c.onDiagnostic(d)
	}
}

type parsedPoint struct {
	world    geometry.Vector3
	anchorID string
	local    geometry.Vector3
}

type parsedRecord struct {
	index      int
	id         string
	start, end parsedPoint
	options    Options
	targetIDs  []string
}

func parsePoint(rec PointRecord) (parsedPoint, error) {
	world, err := toVector(rec.Position)
	if err != nil {
		return parsedPoint{}, fmt.Errorf("position: %w", err)
	}
	p := parsedPoint{world: world}
	if rec.AnchorObjectID != "" {
		local, err := toVector(rec.AnchorLocalPosition)
		if err != nil {
			return parsedPoint{}, fmt.Errorf("anchorLocalPosition: %w", err)
		}
		p.anchorID = rec.AnchorObjectID
		p.local = local
	}
	return p, nil
}

func parseOptions(rec OptionsRecord) (Options, error) {
	mode, err := ParseSnapMode(rec.SnapMode)
	if err != nil {
		return Options{}, err
	}
	lineColor, err := ParseColor(rec.LineColor)
	if err != nil {
		return Options{}, fmt.Errorf("lineColor: %w", err)
	}
	labelColor, err := ParseColor(rec.LabelColor)
	if err != nil {
		return Options{}, fmt.Errorf("labelColor: %w", err)
	}
	return Options{
		LineColor:    lineColor,
		LabelColor:   labelColor,
		LineWidth:    rec.LineWidth,
		FontSize:     rec.FontSize,
		FontFamily:   rec.FontFamily,
		SnapMode:     mode,
		SnapEnabled:  rec.SnapEnabled,
		SnapDistance: rec.SnapDistance,
		Dynamic:      rec.IsDynamic,
	}, nil
}

func parseRecord(index int, rec Record) (parsedRecord, error) {
	start, err := parsePoint(rec.Start)
	if err != nil {
		return parsedRecord{}, fmt.Errorf("start %w", err)
	}
	end, err := parsePoint(rec.End)
	if err != nil {
		return parsedRecord{}, fmt.Errorf("end %w", err)
	}
	options, err := parseOptions(rec.Options)
	if err != nil {
		return parsedRecord{}, fmt.Errorf("options: %w", err)
	}
	return parsedRecord{
		index:     index,
		id:        rec.ID,
		start:     start,
		end:       end,
		options:   options,
		targetIDs: rec.Options.TargetObjectIDs,
	}, nil
}

type resolution struct {
	obj SceneObject
	err error
}

// resolveAll resolves every id concurrently and waits for all of them
func (c *Codec) resolveAll(ctx context.Context, ids []string, resolve ResolveFunc) (map[string]resolution, error) {
	results := make(map[string]resolution, len(ids))
	if len(ids) == 0 {
		return results, nil
	}
	if resolve == nil {
		for _, id := range ids {
			results[id] = resolution{err: errors.New("no resolver configured")}
		}
		return results, nil
	}

	var mu sync.Mutex
	var g errgroup.Group
	if c.concurrency > 0 {
		g.SetLimit(c.concurrency)
	}
	for _, id := range ids {
		g.Go(func() error {
			obj, err := resolve(ctx, id)
			if err == nil && obj == nil {
				err = errors.New("resolver returned no object")
			}
			mu.Lock()
			results[id] = resolution{obj: obj, err: err}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Deserialize reconstructs measurements from records.
//
// Malformed records are skipped and anchors whose object cannot be resolved
// degrade to plain points at their serialized world position; both are
// reported as diagnostics. Object resolution runs concurrently and the result
// is only returned once every resolution has settled. The only error is
// cancellation of ctx, in which case nothing is returned.
func (c *Codec) Deserialize(ctx context.Context, records []Record, resolve ResolveFunc) ([]*Measurement, error) {
	parsed := make([]parsedRecord, 0, len(records))
	seen := make(map[string]struct{})
	var ids []string
	want := func(id string) {
		if id == "" {
			return
		}
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	for i, rec := range records {
		p, err := parseRecord(i, rec)
		if err != nil {
			c.report(Diagnostic{
				Kind:     MalformedRecord,
				Index:    i,
				RecordID: rec.ID,
				Err:      fmt.Errorf("%w: %w", ErrMalformedRecord, err),
			})
			continue
		}
		want(p.start.anchorID)
		want(p.end.anchorID)
		for _, id := range p.targetIDs {
			want(id)
		}
		parsed = append(parsed, p)
	}

	resolved, err := c.resolveAll(ctx, ids, resolve)
	if err != nil {
		return nil, fmt.Errorf("resolving scene objects: %w", err)
	}

	out := make([]*Measurement, 0, len(parsed))
	for _, p := range parsed {
		m := &Measurement{
			ID:    p.id,
			Start: c.buildPoint(p, p.start, resolved),
			End:   c.buildPoint(p, p.end, resolved),
		}

		var targets []Target
		for _, id := range p.targetIDs {
			r := resolved[id]
			target, ok := r.obj.(Target)
			if r.err != nil || !ok {
				cause := r.err
				if cause == nil {
					cause = errors.New("object cannot be intersected")
				}
				c.report(Diagnostic{
					Kind:     UnresolvedTarget,
					Index:    p.index,
					RecordID: p.id,
					ObjectID: id,
					Err:      fmt.Errorf("%w: %w", ErrUnresolvedAnchor, cause),
				})
				continue
			}
			targets = append(targets, target)
		}
		m.Options = p.options.WithTargets(targets...)
		m.Recompute()
		out = append(out, m)
	}

	return out, nil
}

func (c *Codec) buildPoint(rec parsedRecord, p parsedPoint, resolved map[string]resolution) Point {
	if p.anchorID == "" {
		return NewPoint(p.world)
	}
	r := resolved[p.anchorID]
	if r.err != nil {
		c.report(Diagnostic{
			Kind:     UnresolvedAnchor,
			Index:    rec.index,
			RecordID: rec.id,
			ObjectID: p.anchorID,
			Err:      fmt.Errorf("%w: %w", ErrUnresolvedAnchor, r.err),
		})
		return NewPoint(p.world)
	}
	return Point{World: p.world, Anchor: &Anchor{Object: r.obj, Local: p.local}}
}

// Load deserializes records and installs the result into the store as one batch
func (c *Codec) Load(ctx context.Context, store *Store, records []Record, resolve ResolveFunc) ([]*Measurement, error) {
	ms, err := c.Deserialize(ctx, records, resolve)
	if err != nil {
		return nil, err
	}
	store.AddBatch(ms)
	return ms, nil
}

// Replace deserializes records and, only when that succeeds, swaps them in
// for the store's current contents. On error the store is left untouched.
func (c *Codec) Replace(ctx context.Context, store *Store, records []Record, resolve ResolveFunc) ([]*Measurement, error) {
	ms, err := c.Deserialize(ctx, records, resolve)
	if err != nil {
		return nil, err
	}
	store.Clear()
	store.AddBatch(ms)
	return ms, nil
}
