package container

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/zeebo/blake3"
	"go.uber.org/zap"

	"github.com/tsawler/docxlayout/diag"
)

// DefaultMainPart is used when the package relationships do not name an
// officeDocument target.
const DefaultMainPart = "word/document.xml"

// Part is a single decompressed package entry.
type Part struct {
	Name        string // as stored, without a leading slash
	ContentType string // empty when the content-type map has no entry
	Data        []byte // must not be modified
	Method      uint16 // zip compression method the entry was stored with
	CRC32       uint32
}

// Size returns the uncompressed size of the part.
func (p *Part) Size() int { return len(p.Data) }

// Package is a read-only view of an OPC container.
type Package struct {
	parts  map[string]*Part
	order  []*Part
	types  *ContentTypes
	relsMu sync.Mutex
	rels   map[string]*Relationships
	main   string
	flavor Flavor
	digest [32]byte
	log    *zap.Logger
}

// Option configures Open.
type Option func(*options)

type options struct {
	limits Limits
	log    *zap.Logger
}

// WithLimits overrides the default resource limits.
func WithLimits(l Limits) Option {
	return func(o *options) { o.limits = l }
}

// WithLogger sets the logger used for debug output.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// OpenFile reads the file at path and opens it as a package.
func OpenFile(path string, opts ...Option) (*Package, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, diag.Wrap(diag.KindContainer, diag.ErrCorruptContainer, "", fmt.Errorf("reading %s: %w", path, err))
	}
	return Open(data, opts...)
}

// Open parses data as a zip container, decompresses every entry and
// locates the main document part.
func Open(data []byte, opts ...Option) (*Package, error) {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	limits := o.limits.withDefaults()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, diag.Wrap(diag.KindContainer, diag.ErrCorruptContainer, "", err)
	}
	registerDecompressors(zr)

	if len(zr.File) > limits.MaxParts {
		return nil, diag.New(diag.KindContainer, diag.ErrCorruptContainer, "",
			fmt.Sprintf("%d entries exceeds limit of %d", len(zr.File), limits.MaxParts))
	}

	p := &Package{
		parts:  make(map[string]*Part, len(zr.File)),
		rels:   make(map[string]*Relationships),
		digest: blake3.Sum256(data),
		log:    o.log,
	}

	var total uint64
	for _, f := range zr.File {
		if strings.HasSuffix(f.Name, "/") {
			continue
		}
		if f.UncompressedSize64 > limits.MaxPartSize {
			return nil, diag.New(diag.KindContainer, diag.ErrCorruptContainer, f.Name,
				fmt.Sprintf("declared size %d exceeds limit of %d", f.UncompressedSize64, limits.MaxPartSize))
		}
		total += f.UncompressedSize64
		if total > limits.MaxTotalSize {
			return nil, diag.New(diag.KindContainer, diag.ErrCorruptContainer, f.Name,
				fmt.Sprintf("total uncompressed size exceeds limit of %d", limits.MaxTotalSize))
		}

		key := normalizeName(f.Name)
		if _, dup := p.parts[key]; dup {
			return nil, diag.New(diag.KindContainer, diag.ErrCorruptContainer, f.Name, "duplicate part name")
		}

		content, err := readEntry(f)
		if err != nil {
			return nil, diag.Wrap(diag.KindContainer, diag.ErrCorruptContainer, f.Name, err)
		}
		part := &Part{
			Name:   cleanName(f.Name),
			Data:   content,
			Method: f.Method,
			CRC32:  f.CRC32,
		}
		p.parts[key] = part
		p.order = append(p.order, part)
	}

	if err := p.indexContentTypes(); err != nil {
		return nil, err
	}
	if err := p.locateMain(); err != nil {
		return nil, err
	}

	p.log.Debug("package opened",
		zap.Int("parts", len(p.order)),
		zap.String("main", p.main),
		zap.Stringer("flavor", p.flavor))
	return p, nil
}

func registerDecompressors(zr *zip.Reader) {
	zr.RegisterDecompressor(zip.Deflate, func(r io.Reader) io.ReadCloser {
		return flate.NewReader(r)
	})
	zr.RegisterDecompressor(zstd.ZipMethodWinZip, zstd.ZipDecompressor())
	zr.RegisterDecompressor(zstd.ZipMethodPKWare, zstd.ZipDecompressor())
}

// readEntry decompresses f and verifies it against its declared size.
// The zip reader verifies the CRC-32 when the stream reaches EOF.
func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		if errors.Is(err, zip.ErrAlgorithm) {
			return nil, fmt.Errorf("unsupported compression method %d", f.Method)
		}
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, int64(f.UncompressedSize64)+1))
	if err != nil {
		return nil, err
	}
	if uint64(len(data)) != f.UncompressedSize64 {
		return nil, fmt.Errorf("declared size %d, got %d bytes", f.UncompressedSize64, len(data))
	}
	return data, nil
}

func (p *Package) indexContentTypes() error {
	part, ok := p.parts[normalizeName(ContentTypesPart)]
	if !ok {
		p.flavor = p.detectWithoutTypes()
		detail := "content-type map is absent"
		if p.flavor != FlavorUnknown {
			detail += fmt.Sprintf(" (package looks like %s)", p.flavor)
		}
		return diag.New(diag.KindPart, diag.ErrMissingPart, ContentTypesPart, detail)
	}
	types, err := parseContentTypes(part.Data)
	if err != nil {
		return diag.Wrap(diag.KindXMLSyntax, diag.ErrMalformedXML, ContentTypesPart, err)
	}
	p.types = types
	for _, part := range p.order {
		if ct, ok := types.Lookup(part.Name); ok {
			part.ContentType = ct
		}
	}
	return nil
}

func (p *Package) locateMain() error {
	main := DefaultMainPart
	if rels, err := p.Relationships(""); err == nil {
		if rel, ok := rels.ByType(RelOfficeDocument); ok && !rel.External {
			main = rel.Target
		}
	} else if !errors.Is(err, diag.ErrPartNotFound) {
		return err
	}

	part, ok := p.parts[normalizeName(main)]
	p.flavor = detectFlavor(part, p.types)
	if !ok {
		detail := "main document part is absent"
		if p.flavor != FlavorUnknown && p.flavor != FlavorWordprocessing {
			detail += fmt.Sprintf(" (package is %s)", p.flavor)
		}
		return diag.New(diag.KindPart, diag.ErrMissingPart, main, detail)
	}
	if p.flavor != FlavorWordprocessing && p.flavor != FlavorUnknown {
		return diag.New(diag.KindPart, diag.ErrMissingPart, main,
			fmt.Sprintf("main part is %s, not a word-processing document", p.flavor))
	}
	p.main = part.Name
	return nil
}

// MainPart returns the name of the main document part.
func (p *Package) MainPart() string { return p.main }

// Flavor returns the detected package flavor.
func (p *Package) Flavor() Flavor { return p.flavor }

// Digest returns the BLAKE3-256 digest of the raw container bytes.
func (p *Package) Digest() [32]byte { return p.digest }

// ContentTypes returns the content-type map.
func (p *Package) ContentTypes() *ContentTypes { return p.types }

// Has reports whether the package contains name.
func (p *Package) Has(name string) bool {
	_, ok := p.parts[normalizeName(name)]
	return ok
}

// Get returns the decompressed bytes of name.
func (p *Package) Get(name string) ([]byte, error) {
	part, err := p.Part(name)
	if err != nil {
		return nil, err
	}
	return part.Data, nil
}

// Part returns the part called name.
func (p *Package) Part(name string) (*Part, error) {
	part, ok := p.parts[normalizeName(name)]
	if !ok {
		return nil, diag.New(diag.KindPart, diag.ErrPartNotFound, cleanName(name), "")
	}
	return part, nil
}

// Parts returns every part in archive order.
func (p *Package) Parts() []*Part {
	out := make([]*Part, len(p.order))
	copy(out, p.order)
	return out
}

// Relationships returns the relationships whose source is the given part.
// The empty source names the package-level relationships. Parsed results
// are cached.
func (p *Package) Relationships(source string) (*Relationships, error) {
	key := normalizeName(source)
	p.relsMu.Lock()
	defer p.relsMu.Unlock()
	if rels, ok := p.rels[key]; ok {
		return rels, nil
	}
	name := relsName(source)
	data, err := p.Get(name)
	if err != nil {
		return nil, err
	}
	rels, err := parseRelationships(source, data)
	if err != nil {
		return nil, diag.Wrap(diag.KindXMLSyntax, diag.ErrMalformedXML, name, err)
	}
	p.rels[key] = rels
	return rels, nil
}

// Related returns the target part name of the first relationship of the
// given type from source, falling back to fallback when the source has
// no relationships part or no such relationship.
func (p *Package) Related(source, relType, fallback string) string {
	rels, err := p.Relationships(source)
	if err == nil {
		if rel, ok := rels.ByType(relType); ok && !rel.External {
			return rel.Target
		}
	}
	return fallback
}
