// Package mask provides dense boolean pixel masks and binary morphology.
//
// A Bitmap is a 2-D boolean raster with the same coordinate convention as
// the rest of the module: origin (0, 0) at the top-left corner, X increasing
// rightward, Y increasing downward. The meaning of a set pixel (ink,
// structure, excluded line) is defined by whichever component produced the
// mask; this package only manipulates the raster.
//
// All operations are pure: they never mutate their receiver or arguments
// and always allocate a new Bitmap for the result. Masks for independent
// images can therefore be processed concurrently without synchronization.
//
// # Morphology
//
// Erode, Dilate and Open implement binary morphology with rectangular
// all-true structuring elements. The anchor is the kernel center (kw/2,
// kh/2). Neighborhoods are clipped at the image border and out-of-range
// positions count as unset, so erosion shrinks foreground that touches the
// frame edge.
package mask
