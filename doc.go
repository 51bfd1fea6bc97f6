// Package monopet renders animated, posable characters and scene props onto
// a 1-bit-per-pixel framebuffer for small monochrome displays such as a
// 128x64 SSD1306 OLED panel.
//
// Artwork is authored as still packed bitmaps. At runtime monopet mirrors,
// rotates and skews them, composites sprite parts through a small skeleton
// of attachment points, and fills procedural polygons with dither patterns.
//
// # Bitmaps
//
// A [Bitmap] stores one bit per pixel, rows top to bottom, the most
// significant bit leftmost, each row padded to a whole byte. This is the
// layout display drivers expect in horizontal mode, so a [Framebuffer] can
// be handed to the panel as is.
//
//	heart := monopet.ParseArt(
//		".#.#.",
//		"#####",
//		".###.",
//		"..#..",
//	)
//
// [MirrorH], [MirrorV], [Rotate] and [Skew] are pure: they never modify their
// input and always return a new bitmap.
//
// # Drawing
//
// A [Renderer] draws into any [Target]. [Renderer.DrawBitmap] applies
// [DrawOptions] in a fixed order (mirror, rotate, skew, invert) and blits
// the result with unlit pixels transparent by default:
//
//	fb := monopet.NewFramebuffer(monopet.DisplayWidth, monopet.DisplayHeight)
//	r := monopet.NewRenderer(fb)
//	r.DrawBitmap(heart, 10, 10, monopet.DrawOptions{Rotate: 90})
//
// A [Sprite] groups animation frames with optional fill frames and named
// attachment points. Fill frames are solid silhouettes drawn before the
// outline so the sprite hides whatever is behind it.
//
// # Rigs
//
// A [Rig] composites a character from the parts of a [Skeleton]. The shipped
// [PetSkeleton] has a body, a head on the body's "head" point, eyes on the
// head's "eye" point and a tail on the body's "tail" point. Attachment
// points may change per frame, so parts follow the body as it animates:
//
//	rig := monopet.NewPetRig()
//	rig.SetPose(pose)
//	rig.Advance(dt)
//	rig.Draw(r, 64, 60, mirrored)
//
// # Caching
//
// Transforms are recomputed on every draw unless a [TransformCache] is
// attached with [Renderer.SetCache]. Cache entries are keyed by bitmap
// identity and version, so edits through [Bitmap.SetBit] or
// [TransformCache.Invalidate] retire stale results.
//
// # Desktop preview
//
// [Screen] emulates the panel in an Ebitengine window; see [Run]. The
// assets package loads sprite and pose libraries from YAML, and the ecs
// module adapts rigs to Donburi worlds.
package monopet
