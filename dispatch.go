package folio

// SelectionKind classifies what a click did.
type SelectionKind uint8

const (
	SelectMiss       SelectionKind = iota // nothing under the pointer
	SelectNone                            // hit an object with no action
	SelectLink                            // opened an external link
	SelectModal                           // opened a modal
	SelectSuppressed                      // a modal is already open
	SelectOverlay                         // consumed by the open modal's controls
)

var selectionKindNames = [...]string{
	SelectMiss:       "miss",
	SelectNone:       "none",
	SelectLink:       "link",
	SelectModal:      "modal",
	SelectSuppressed: "suppressed",
	SelectOverlay:    "overlay",
}

func (k SelectionKind) String() string {
	if int(k) < len(selectionKindNames) {
		return selectionKindNames[k]
	}
	return "unknown"
}

// Selection describes the outcome of one click dispatch.
type Selection struct {
	Kind   SelectionKind
	Object string // name of the nearest hit
	Base   string // Object without the hover suffix
	Group  string // registered target the hit mesh belongs to
	URL    string
	Modal  ModalKey
}

// Dispatcher routes clicks on registry objects to links and modals.
type Dispatcher struct {
	links  map[string]string
	modals map[string]ModalKey

	controller *ModalController
	opener     LinkOpener
	video      Video
	log        Logger
	emit       func(InteractionEvent)
}

// NewDispatcher creates a dispatcher. links and modals map base object
// names to URLs and modal keys. opener, video and emit may be nil.
func NewDispatcher(links map[string]string, modals map[string]ModalKey, controller *ModalController, opener LinkOpener, video Video, log Logger, emit func(InteractionEvent)) *Dispatcher {
	if log == nil {
		log = NopLogger{}
	}
	return &Dispatcher{
		links:      links,
		modals:     modals,
		controller: controller,
		opener:     opener,
		video:      video,
		log:        log,
		emit:       emit,
	}
}

// SetVideo replaces the ambient video resumed after successful dispatches.
func (d *Dispatcher) SetVideo(v Video) {
	d.video = v
}

// Dispatch acts on the nearest hit: links open even while a modal is open;
// otherwise a modal opens unless one is already open. Names are looked up
// as the hit mesh, its base name, then its group.
func (d *Dispatcher) Dispatch(hits []Hit, ptr PointerState) Selection {
	if len(hits) == 0 {
		return Selection{Kind: SelectMiss}
	}
	obj := hits[0].Object
	name := obj.Name()
	sel := Selection{Object: name, Base: BaseName(name)}
	if obj.Group != nil {
		sel.Group = obj.Group.Name
	}

	if url, ok := d.lookupLink(sel); ok {
		sel.Kind = SelectLink
		sel.URL = url
		if d.opener != nil {
			if err := d.opener.Open(url); err != nil {
				d.log.Errorf("open %s: %v", url, err)
			}
		}
		d.fire(EventSelectLink, sel, ptr)
		d.resumeVideo()
		return sel
	}

	if d.controller != nil && d.controller.AnyOpen() {
		sel.Kind = SelectSuppressed
		d.fire(EventSuppressed, sel, ptr)
		return sel
	}

	key, ok := d.lookupModal(sel)
	if !ok || d.controller == nil || d.controller.Modal(key) == nil {
		sel.Kind = SelectNone
		d.log.Infof("no action assigned to %s", name)
		d.fire(EventSelectNone, sel, ptr)
		return sel
	}

	if err := d.controller.Show(key); err != nil {
		d.log.Errorf("%v", err)
		sel.Kind = SelectNone
		return sel
	}
	sel.Kind = SelectModal
	sel.Modal = key
	d.fire(EventSelectModal, sel, ptr)
	d.resumeVideo()
	return sel
}

func (d *Dispatcher) lookupLink(sel Selection) (string, bool) {
	for _, n := range [...]string{sel.Object, sel.Base, sel.Group} {
		if url, ok := d.links[n]; ok {
			return url, true
		}
	}
	return "", false
}

func (d *Dispatcher) lookupModal(sel Selection) (ModalKey, bool) {
	if key, ok := d.modals[sel.Base]; ok {
		return key, true
	}
	key, ok := d.modals[sel.Group]
	return key, ok
}

// resumeVideo restarts paused playback. A rejection is logged and not
// retried until the next click.
func (d *Dispatcher) resumeVideo() {
	if d.video == nil || !d.video.Paused() {
		return
	}
	if err := d.video.Play(); err != nil {
		d.log.Errorf("video play blocked: %v", err)
	}
}

func (d *Dispatcher) fire(t EventType, sel Selection, ptr PointerState) {
	if d.emit == nil {
		return
	}
	d.emit(InteractionEvent{
		Type:     t,
		Object:   sel.Object,
		Modal:    sel.Modal,
		URL:      sel.URL,
		PointerX: ptr.X,
		PointerY: ptr.Y,
	})
}
