// Package lattice is a declarative rendering engine for grid-shaped
// interactive surfaces such as inventory panes.
//
// An [Interface] is built once from a [Shape], a title, and a set of
// transforms: functions that paint [Element] values into a [View]. Opening the
// interface for a viewer creates a [Session] that renders every transform,
// pushes the result to a host [Surface], and routes the viewer's clicks back to
// the element under the cursor.
//
// # Quick start
//
//	selected := lattice.NewProperty(0)
//
//	menu := lattice.BuildChest(3, "Pick one").
//		AddTransform(func(v *lattice.View) error {
//			for i := 0; i < 9; i++ {
//				i := i
//				v.Set(i, 1, lattice.NewElement(option(i, selected.Get()), lattice.Canceling(
//					func(lattice.ClickContext) { selected.Set(i) })))
//			}
//			return nil
//		}, lattice.WithProperties(selected)).
//		Build()
//
//	engine := lattice.NewEngine(host)
//	engine.Open(ctx, menu, viewer, lattice.NewArguments())
//
// The host drives the engine by calling [Engine.Tick] once per host tick.
//
// # Reactivity
//
// A [Property] holds one value. Transforms registered with [WithProperties]
// re-run whenever one of their properties is set. Marks coalesce until the
// next [Engine.Tick] or [Engine.Flush], so any number of sets in between
// produce one pass that sees only the final values. Transforms with no
// properties are static and run only on full passes: the first render,
// [Session.Refresh], and periodic passes enabled with
// [Builder.SetUpdatePolicy].
//
// # Compositing
//
// Transforms run in ascending priority, ties in registration order. Later
// transforms overwrite earlier ones cell by cell. A partial pass starts from
// the committed snapshot, so cells no dirty transform touches keep their
// content. A transform that returns an error or panics has all of its writes
// for that pass discarded; the remaining transforms still run.
//
// # Hosts
//
// The engine never draws. A [Host] opens surfaces and a [Surface] receives
// changed cells. Packages memhost, termhost, and ebitenhost provide an
// in-memory host for tests, a terminal host built on [Bubble Tea], and a
// window host built on [Ebitengine]. Package ecs forwards interaction events
// into a [Donburi] world.
//
// [Bubble Tea]: https://github.com/charmbracelet/bubbletea
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package lattice
