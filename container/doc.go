// Package container reads Open Packaging Conventions zip containers.
//
// A [Package] is built once per load. Every entry is decompressed eagerly
// into an immutable byte slice, so lookups after [Open] never touch the
// archive again and the input slice is never modified.
//
// Parts are addressed by their package name without the leading slash.
// Lookups are case-insensitive, matching the OPC part-name equivalence
// rules:
//
//	pkg, err := container.Open(data)
//	if err != nil {
//		return err
//	}
//	styles, err := pkg.Get("word/styles.xml")
//
// Entries may be stored, deflated or compressed with Zstandard (zip
// method 93). Any other method, a checksum mismatch or a size mismatch
// fails the whole load with [diag.ErrCorruptContainer].
package container
