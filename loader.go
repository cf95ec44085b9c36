package folio

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"path"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// NodeDesc is one node of a room description.
type NodeDesc struct {
	Name string `yaml:"name"`
	// Size makes the node a box mesh of that full size.
	Size     *Vec3 `yaml:"size"`
	Center   Vec3  `yaml:"center"`
	Position Vec3  `yaml:"position"`
	// Rotation is Euler XYZ in degrees.
	Rotation Vec3  `yaml:"rotation"`
	Scale    *Vec3 `yaml:"scale"`
	// Color is the base color as 0xRRGGBB.
	Color *uint32 `yaml:"color"`
	// Material is "standard" (default) or "basic".
	Material string     `yaml:"material"`
	Spin     float64    `yaml:"spin"`
	Hidden   bool       `yaml:"hidden"`
	Children []NodeDesc `yaml:"children"`
}

// RoomDesc is the YAML room description.
type RoomDesc struct {
	Nodes []NodeDesc `yaml:"nodes"`
}

// ParseRoom decodes a YAML room description into a scene tree rooted at a
// group named "Scene".
func ParseRoom(data []byte) (*Node, error) {
	var desc RoomDesc
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("parse room: %w", err)
	}
	root := NewGroup("Scene")
	for i := range desc.Nodes {
		n, err := buildNode(&desc.Nodes[i])
		if err != nil {
			return nil, err
		}
		root.AddChild(n)
	}
	return root, nil
}

func buildNode(d *NodeDesc) (*Node, error) {
	var n *Node
	if d.Size != nil {
		var mat *Material
		switch d.Material {
		case "", "standard":
			var base *Color
			if d.Color != nil {
				c := ColorFromHex(*d.Color)
				base = &c
			}
			mat = NewStandardMaterial(base)
		case "basic":
			c := ColorWhite
			if d.Color != nil {
				c = ColorFromHex(*d.Color)
			}
			mat = NewBasicMaterial(c)
		default:
			return nil, fmt.Errorf("node %q: unknown material %q", d.Name, d.Material)
		}
		n = NewMesh(d.Name, *d.Size, mat)
		n.Geometry.Center = d.Center
	} else {
		n = NewGroup(d.Name)
	}
	n.Position = d.Position
	n.Rotation = Vec3{
		mgl64.DegToRad(d.Rotation.X()),
		mgl64.DegToRad(d.Rotation.Y()),
		mgl64.DegToRad(d.Rotation.Z()),
	}
	if d.Scale != nil {
		n.Scale = *d.Scale
	}
	n.Spin = d.Spin
	n.Visible = !d.Hidden
	for i := range d.Children {
		c, err := buildNode(&d.Children[i])
		if err != nil {
			return nil, err
		}
		n.AddChild(c)
	}
	return n, nil
}

// RoomSource locates the assets of a room.
type RoomSource struct {
	FS fs.FS
	// Scene is the path of the YAML room description inside FS.
	Scene string
	// Frames is a directory of PNG frames for the screen video, played in
	// lexical order. Empty means no frames.
	Frames string
}

// Room is a loaded room.
type Room struct {
	Root   *Node
	Frames []image.Image
}

// Lookup finds an object by name, or nil.
func (r *Room) Lookup(name string) *Node {
	if r == nil || r.Root == nil {
		return nil
	}
	return r.Root.FindByName(name)
}

// frameLoadLimit bounds concurrent frame decodes.
const frameLoadLimit = 4

// LoadTask is an asynchronous room load.
type LoadTask struct {
	done   chan struct{}
	loaded atomic.Int64
	total  atomic.Int64

	room *Room
	err  error
}

// LoadRoom starts loading src on a background goroutine. Cancelling ctx
// aborts the load with an error.
func LoadRoom(ctx context.Context, src RoomSource) *LoadTask {
	t := &LoadTask{done: make(chan struct{})}
	go t.run(ctx, src)
	return t
}

func (t *LoadTask) run(ctx context.Context, src RoomSource) {
	defer close(t.done)

	var framePaths []string
	if src.Frames != "" {
		matches, err := fs.Glob(src.FS, path.Join(src.Frames, "*.png"))
		if err != nil {
			t.err = fmt.Errorf("%w: list frames: %w", ErrLoadFailure, err)
			return
		}
		framePaths = matches
	}
	t.total.Store(int64(1 + len(framePaths)))

	var root *Node
	frames := make([]image.Image, len(framePaths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(frameLoadLimit)
	g.Go(func() error {
		data, err := fs.ReadFile(src.FS, src.Scene)
		if err != nil {
			return fmt.Errorf("read room: %w", err)
		}
		root, err = ParseRoom(data)
		if err != nil {
			return err
		}
		t.loaded.Add(1)
		return nil
	})
	for i, p := range framePaths {
		i, p := i, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			img, err := decodeFrame(src.FS, p)
			if err != nil {
				return err
			}
			frames[i] = img
			t.loaded.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.err = fmt.Errorf("%w: %w", ErrLoadFailure, err)
		return
	}
	if err := ctx.Err(); err != nil {
		t.err = fmt.Errorf("%w: %w", ErrLoadFailure, err)
		return
	}
	t.room = &Room{Root: root, Frames: frames}
}

func decodeFrame(fsys fs.FS, name string) (image.Image, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open frame: %w", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode frame %s: %w", name, err)
	}
	return img, nil
}

// Progress returns the fraction of assets loaded, in [0, 1].
func (t *LoadTask) Progress() float64 {
	total := t.total.Load()
	if total == 0 {
		return 0
	}
	return float64(t.loaded.Load()) / float64(total)
}

// Done is closed once the load has finished, successfully or not.
func (t *LoadTask) Done() <-chan struct{} {
	return t.done
}

// Finished reports whether Done is closed.
func (t *LoadTask) Finished() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Result returns the loaded room. It blocks until the load finishes. The
// error wraps ErrLoadFailure.
func (t *LoadTask) Result() (*Room, error) {
	<-t.done
	return t.room, t.err
}
