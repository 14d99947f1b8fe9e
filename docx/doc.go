// Package docx maps parsed WordprocessingML parts onto typed records.
//
// Every optional property is a pointer. A nil field means "not specified
// here, inherit", which is different from an explicit off value such as
// <w:b w:val="0"/>. The style engine relies on that distinction when it
// walks the cascade.
//
// Elements the mapper does not understand are kept, in order, in the
// Extensions bag of the record that owns them. They are never consulted
// by layout. Each unrecognized element name produces one aggregated
// warning per part. Attributes from foreign namespaces, such as w14:paraId,
// are kept in the record's ExtAttrs without a warning.
package docx
