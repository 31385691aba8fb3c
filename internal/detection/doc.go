// Package detection identifies straight line-art in binary ink masks.
//
// Two complementary detectors are provided:
//
//   - OrthogonalLines finds long horizontal and vertical runs with
//     directional morphological openings. Table borders, grid rules and
//     underlines are typically axis-aligned; chemical bond strokes rarely
//     span a tenth of the page on a perfect axis.
//
//   - NoiseLines finds straight segments at arbitrary angles with an
//     accumulator-based (Hough) line transform, then classifies each
//     segment by sampling its interior against a candidate structure mask.
//     Segments touching the candidate mask are treated as part of a drawn
//     structure (a long bond) and left alone; the rest are rasterized into
//     an exclusion mask as noise.
//
// Both detectors consume masks in ink polarity (true = ink pixel) and
// return exclusion masks of identical shape. They are independent
// primitives; callers wanting both behaviors OR the two results.
//
// # Coordinate System
//
// Standard image convention: origin (0, 0) at top-left, X rightward,
// Y downward. Segment endpoints are inclusive pixel coordinates.
package detection
