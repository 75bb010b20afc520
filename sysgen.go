// Package sysgen generates Svelte UI primitives from a design-token theme.
//
// A theme declares scales (space, colors, font sizes and so on). Every prop
// of the catalog maps to one utility class per scale value, so
//
//	<Box gap={2} color="primary" />
//
// renders with the classes gap-2 and color-primary, which the generated
// stylesheet defines. Responsive values select breakpoint-prefixed classes:
//
//	<Box gap={[1, 2]} mt={{ md: 4 }} />
//
// # Generation
//
//	th, err := theme.Load("theme.yaml")
//	result, err := sysgen.Generate(ctx, sysgen.Options{
//		Theme:          th,
//		ComponentsPath: "src/lib/system",
//		StylesheetPath: "src/lib/system/system.css",
//	})
//
// # Optimize mode
//
// With Optimize set, the project's .svelte templates are scanned first and
// only the props, values, classes, events and types they use are emitted.
//
// # Check mode
//
// With Check set nothing is written. Files that differ from what would be
// generated are reported in a *CheckError with a line diff each.
package sysgen
