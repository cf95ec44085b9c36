// Package folio is the interaction core of a 3D portfolio room for
// [Ebitengine].
//
// A room is a tree of box meshes. A fixed list of named objects in it is
// interactive: hovering one highlights and grows its hover variants,
// clicking one opens an external link or a content modal. Drag orbits the
// camera, the wheel zooms.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	exp := folio.NewExperience(folio.DefaultConfig(), folio.Options{
//		Log:    folio.GlogLogger{},
//		Cursor: folio.EbitenCursor{},
//		Opener: folio.BrowserOpener{},
//	})
//	exp.Load(ctx, folio.RoomSource{FS: assets, Scene: "room.yaml"})
//	folio.Run(exp, folio.RunConfig{Resizable: true})
//
// # Driving it yourself
//
// Everything but [Run], [Renderer] and the ebiten input poll is free of
// ebiten state, so an [Experience] can be driven from tests with
// [Experience.Update] and the Handle* entry points, or with the Inject*
// queue and a scripted [TestRunner]:
//
//	exp.Install(room)
//	exp.HandlePointerMove(400, 300)
//	exp.Update(1.0 / 60)
//	sel := exp.HandleClick(400, 300)
//
// # Pieces
//
// [Registry] holds the interactive objects, [PointerTracker] converts
// pixels to normalized device coordinates, [HitTester] casts the pointer
// ray, [HoverMachine] drives hover feedback, [Dispatcher] routes clicks and
// [ModalController] fades dialogs in and out. Animations run through a
// [Tweener] (via [gween]); interaction events can be forwarded to a
// [Donburi] world with the folio/ecs adapter.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package folio
