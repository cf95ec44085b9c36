package folio

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Default easings.
var (
	// EaseOut is the hover and slider easing (power2.out).
	EaseOut ease.TweenFunc = ease.OutQuad
	// EaseFade is the modal opacity easing.
	EaseFade ease.TweenFunc = ease.Linear
)

// Tween animates up to 4 float64 fields simultaneously. Create one via the
// convenience constructors and either call Update(dt) yourself or hand it to
// a Tweener. If the target node is disposed, the tween stops immediately.
type Tween struct {
	fields [4]tweenField
	count  int
	node   *Node
	Done   bool

	// OnComplete runs once when every field reached its end value. It does
	// not run for cancelled tweens.
	OnComplete func()
}

// tweenField interpolates one field in float64. gween only supplies the
// eased progress from 0 to 1, so end values land exactly.
type tweenField struct {
	ptr      *float64
	from, to float64
	progress *gween.Tween
}

// Update advances all fields by dt seconds and writes the values. If the
// target node has been disposed, Done is set and no writes occur.
func (tw *Tween) Update(dt float32) {
	if tw.Done {
		return
	}

	if tw.node != nil && tw.node.IsDisposed() {
		tw.Done = true
		return
	}

	allDone := true
	for i := 0; i < tw.count; i++ {
		f := &tw.fields[i]
		p, finished := f.progress.Update(dt)
		if finished {
			*f.ptr = f.to
			continue
		}
		*f.ptr = f.from + (f.to-f.from)*float64(p)
		allDone = false
	}
	tw.Done = allDone

	if tw.node != nil {
		tw.node.MarkDirty()
	}
}

func (tw *Tween) add(field *float64, to float64, duration float32, fn ease.TweenFunc) {
	tw.fields[tw.count] = tweenField{
		ptr:      field,
		from:     *field,
		to:       to,
		progress: gween.New(0, 1, duration, fn),
	}
	tw.count++
}

// TweenScale animates node.Scale to the target per axis.
func TweenScale(node *Node, to Vec3, duration float32, fn ease.TweenFunc) *Tween {
	tw := &Tween{node: node}
	tw.add(&node.Scale[0], to.X(), duration, fn)
	tw.add(&node.Scale[1], to.Y(), duration, fn)
	tw.add(&node.Scale[2], to.Z(), duration, fn)
	return tw
}

// TweenEmissive animates the RGB components of a material's emissive tint.
func TweenEmissive(m *Material, to Color, duration float32, fn ease.TweenFunc) *Tween {
	tw := &Tween{}
	tw.add(&m.Emissive.R, to.R, duration, fn)
	tw.add(&m.Emissive.G, to.G, duration, fn)
	tw.add(&m.Emissive.B, to.B, duration, fn)
	return tw
}

// TweenValue animates a single float64 field.
func TweenValue(field *float64, to float64, duration float32, fn ease.TweenFunc) *Tween {
	tw := &Tween{}
	tw.add(field, to, duration, fn)
	return tw
}

// TweenValueFrom sets *field to from, then animates it to to. Used by fades
// that always restart from a fixed value.
func TweenValueFrom(field *float64, from, to float64, duration float32, fn ease.TweenFunc) *Tween {
	*field = from
	return TweenValue(field, to, duration, fn)
}

// --- Tweener ---

type tweenEntry struct {
	target any
	tween  *Tween
}

// Tweener drives tweens keyed by their target. Starting and cancelling are
// synchronous: after Cancel(target) returns no tween of that target writes
// again, so a newly started tween never races a stale one writing the same
// property.
type Tweener struct {
	entries []tweenEntry
	// pending receives tweens started while Update is running (for example
	// from an OnComplete callback); they run from the next Update.
	pending  []tweenEntry
	updating bool
}

// NewTweener creates an empty Tweener.
func NewTweener() *Tweener {
	return &Tweener{}
}

// Start registers tw under target. Existing tweens of target keep running;
// use Replace for last-write-wins semantics.
func (t *Tweener) Start(target any, tw *Tween) *Tween {
	e := tweenEntry{target: target, tween: tw}
	if t.updating {
		t.pending = append(t.pending, e)
	} else {
		t.entries = append(t.entries, e)
	}
	return tw
}

// Replace cancels every tween of target, then starts tw.
func (t *Tweener) Replace(target any, tw *Tween) *Tween {
	t.Cancel(target)
	return t.Start(target, tw)
}

// Cancel stops every tween of target immediately. Cancelled tweens do not
// run their OnComplete callback.
func (t *Tweener) Cancel(target any) {
	for i := range t.entries {
		if t.entries[i].target == target {
			t.entries[i].tween.Done = true
			t.entries[i].tween.OnComplete = nil
		}
	}
	t.pending = removeTarget(t.pending, target)
	if !t.updating {
		t.entries = compactTweens(t.entries)
	}
}

// Active reports whether target has a running tween.
func (t *Tweener) Active(target any) bool {
	for _, e := range t.entries {
		if e.target == target && !e.tween.Done {
			return true
		}
	}
	for _, e := range t.pending {
		if e.target == target {
			return true
		}
	}
	return false
}

// Len returns the number of running tweens.
func (t *Tweener) Len() int {
	n := len(t.pending)
	for _, e := range t.entries {
		if !e.tween.Done {
			n++
		}
	}
	return n
}

// Update advances every running tween by dt seconds, removes finished ones
// and then fires their completion callbacks in start order.
func (t *Tweener) Update(dt float32) {
	t.updating = true
	var completed []func()
	for _, e := range t.entries {
		if e.tween.Done {
			continue
		}
		e.tween.Update(dt)
		if e.tween.Done && e.tween.OnComplete != nil {
			completed = append(completed, e.tween.OnComplete)
			e.tween.OnComplete = nil
		}
	}
	t.entries = compactTweens(t.entries)
	t.updating = false

	for _, fn := range completed {
		fn()
	}

	if len(t.pending) > 0 {
		t.entries = append(t.entries, t.pending...)
		t.pending = t.pending[:0]
	}
}

func compactTweens(s []tweenEntry) []tweenEntry {
	out := s[:0]
	for _, e := range s {
		if !e.tween.Done {
			out = append(out, e)
		}
	}
	for i := len(out); i < len(s); i++ {
		s[i] = tweenEntry{}
	}
	return out
}

func removeTarget(s []tweenEntry, target any) []tweenEntry {
	out := s[:0]
	for _, e := range s {
		if e.target != target {
			out = append(out, e)
		}
	}
	for i := len(out); i < len(s); i++ {
		s[i] = tweenEntry{}
	}
	return out
}
