package folio

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func ndcOf(t *testing.T, cam *Camera, p Vec3) PointerState {
	t.Helper()
	x, y := pixelOf(t, cam, p)
	return ToNDC(x, y, cam.Width, cam.Height)
}

func hitNames(hits []Hit) []string {
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.Object.Name()
	}
	return out
}

func TestHitTesterNearestFirst(t *testing.T) {
	root := testRoom()
	r := testRegistry(t, root)
	cam := frontCamera()

	var h HitTester
	hits := h.Query(PointerState{}, cam, r.Objects())
	if diff := cmp.Diff([]string{"Work_Raycaster_Hover", "Work_Sign"}, hitNames(hits)); diff != "" {
		t.Fatalf("hits (-want +got):\n%s", diff)
	}
	if !(hits[0].Distance < hits[1].Distance) {
		t.Errorf("distances not ascending: %v, %v", hits[0].Distance, hits[1].Distance)
	}
	// Hover face at z=0.35, sign face at z=0.1.
	if gap := hits[1].Distance - hits[0].Distance; !approx(gap, 0.25, 1e-6) {
		t.Errorf("distance gap = %v, want 0.25", gap)
	}
	if !vecApprox(hits[0].Point, Vec3{0, 0, 0.35}, 1e-6) {
		t.Errorf("nearest point = %v", hits[0].Point)
	}
}

func TestHitTesterOffCenterTargets(t *testing.T) {
	root := testRoom()
	r := testRegistry(t, root)
	cam := frontCamera()

	tests := []struct {
		at   Vec3
		want string
	}{
		{Vec3{3, 0, 0}, "Insta_Raycaster_Hover"},
		{Vec3{-3, 0, 0}, "Mouse_Raycaster"},
	}
	var h HitTester
	for _, tt := range tests {
		hits := h.Query(ndcOf(t, cam, tt.at), cam, r.Objects())
		if len(hits) != 1 || hits[0].Object.Name() != tt.want {
			t.Errorf("at %v hits = %v, want [%s]", tt.at, hitNames(hits), tt.want)
		}
	}
}

func TestHitTesterMiss(t *testing.T) {
	root := testRoom()
	r := testRegistry(t, root)
	cam := frontCamera()

	var h HitTester
	if hits := h.Query(PointerState{X: 0, Y: 0.9}, cam, r.Objects()); len(hits) != 0 {
		t.Errorf("hits = %v, want none", hitNames(hits))
	}
}

func TestHitTesterSkipsInvisibleAncestors(t *testing.T) {
	root := testRoom()
	r := testRegistry(t, root)
	cam := frontCamera()

	root.FindByName("Work_Raycaster").Visible = false
	var h HitTester
	if hits := h.Query(PointerState{}, cam, r.Objects()); len(hits) != 0 {
		t.Errorf("hits = %v, want none with the group hidden", hitNames(hits))
	}
}

func TestHitTesterEmptyInputs(t *testing.T) {
	root := testRoom()
	r := testRegistry(t, root)

	var h HitTester
	if hits := h.Query(PointerState{}, nil, r.Objects()); len(hits) != 0 {
		t.Error("nil camera should produce no hits")
	}
	if hits := h.Query(PointerState{}, frontCamera(), nil); len(hits) != 0 {
		t.Error("empty registry should produce no hits")
	}
}

func TestHitTesterHasNoSideEffects(t *testing.T) {
	root := testRoom()
	r := testRegistry(t, root)
	cam := frontCamera()
	hover := r.ByName("Work_Raycaster_Hover")
	scale, emissive := hover.Node.Scale, hover.Node.Material.Emissive

	var h HitTester
	h.Query(PointerState{}, cam, r.Objects())
	if hover.Hovered || hover.Node.Scale != scale || hover.Node.Material.Emissive != emissive {
		t.Error("Query mutated a hit object")
	}
}
