package style

import (
	"encoding/hex"
	"fmt"
	"strings"
	"sync"

	"github.com/zeebo/blake3"

	"github.com/tsawler/docxlayout/diag"
	"github.com/tsawler/docxlayout/docx"
)

// DefaultPart is the part name reported in style chain errors.
const DefaultPart = "word/styles.xml"

// Table is an immutable index of style definitions.
type Table struct {
	styles      *docx.Styles
	version     [32]byte
	part        string
	defaultPara string
	defaultChar string
	defaultTbl  string
	cache       *Cache
}

// Option configures NewTable.
type Option func(*Table)

// WithCache shares a chain cache between tables. Entries are keyed by
// table version, so tables built from different styles never collide.
func WithCache(c *Cache) Option {
	return func(t *Table) {
		if c != nil {
			t.cache = c
		}
	}
}

// WithPart sets the part name used in diagnostics.
func WithPart(name string) Option {
	return func(t *Table) { t.part = name }
}

// NewTable builds a table from mapped styles. source is the raw styles
// part and determines the table version; styles may be nil.
func NewTable(styles *docx.Styles, source []byte, opts ...Option) *Table {
	if styles == nil {
		styles = &docx.Styles{Definitions: map[string]*docx.StyleDefinition{}}
	}
	t := &Table{
		styles:  styles,
		version: blake3.Sum256(source),
		part:    DefaultPart,
		cache:   NewCache(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.defaultPara = styles.DefaultStyle(docx.StyleParagraph)
	t.defaultChar = styles.DefaultStyle(docx.StyleCharacter)
	t.defaultTbl = styles.DefaultStyle(docx.StyleTable)
	return t
}

// Empty returns a table with no styles. Resolution against it yields
// document-independent baseline values.
func Empty() *Table {
	return NewTable(nil, nil)
}

// Version identifies the style content the table was built from.
func (t *Table) Version() string {
	return hex.EncodeToString(t.version[:8])
}

// Styles returns the underlying definitions. They must not be modified.
func (t *Table) Styles() *docx.Styles { return t.styles }

// Lookup returns the definition with the given id.
func (t *Table) Lookup(id string) (*docx.StyleDefinition, bool) {
	return t.styles.Lookup(id)
}

// DefaultParagraphStyle returns the id of the default paragraph style.
func (t *Table) DefaultParagraphStyle() string { return t.defaultPara }

// Chain returns the basedOn chain of id, most specific first.
func (t *Table) Chain(id string) ([]*docx.StyleDefinition, error) {
	var (
		chain   []*docx.StyleDefinition
		path    []string
		visited = make(map[string]bool)
	)
	for cur := id; cur != ""; {
		path = append(path, cur)
		if visited[cur] {
			return nil, diag.New(diag.KindStyleChain, diag.ErrCyclicStyleChain, t.part, strings.Join(path, " -> "))
		}
		visited[cur] = true
		def, ok := t.styles.Lookup(cur)
		if !ok {
			if len(chain) == 0 {
				return nil, diag.New(diag.KindStyleChain, diag.ErrDanglingStyle, t.part,
					fmt.Sprintf("style %q is not defined", cur))
			}
			return chain, diag.New(diag.KindStyleChain, diag.ErrDanglingStyle, t.part,
				fmt.Sprintf("style %q is based on undefined style %q", chain[len(chain)-1].ID, cur))
		}
		chain = append(chain, def)
		cur = def.BasedOn
	}
	return chain, nil
}

// flat is a style chain folded into one layer.
type flat struct {
	name        string
	kind        docx.StyleKind
	para        docx.ParaProps
	run         docx.RunProps
	table       docx.TableProps
	row         docx.RowProps
	cell        docx.CellProps
	conditional map[docx.TableRegion]*docx.ConditionalFormat
	err         error
}

var emptyFlat = &flat{}

// flatten returns the folded chain for id, memoized in the cache.
func (t *Table) flatten(id string) *flat {
	if id == "" {
		return emptyFlat
	}
	key := cacheKey{version: t.version, id: id}
	if f, ok := t.cache.get(key); ok {
		return f
	}

	chain, err := t.Chain(id)
	f := &flat{err: err}
	for i, def := range chain {
		if i == 0 {
			f.name = def.Name
			f.kind = def.Kind
			f.para, f.run = def.Para, def.Run
			f.table, f.row, f.cell = def.Table, def.Row, def.Cell
		} else {
			f.para = f.para.Over(def.Para)
			f.run = f.run.Over(def.Run)
			f.table = f.table.Over(def.Table)
			f.row = f.row.Over(def.Row)
			f.cell = f.cell.Over(def.Cell)
		}
		for region, cf := range def.Conditional {
			if f.conditional == nil {
				f.conditional = make(map[docx.TableRegion]*docx.ConditionalFormat)
			}
			prev, ok := f.conditional[region]
			if !ok {
				f.conditional[region] = cf
				continue
			}
			f.conditional[region] = &docx.ConditionalFormat{
				Para:  prev.Para.Over(cf.Para),
				Run:   prev.Run.Over(cf.Run),
				Table: prev.Table.Over(cf.Table),
				Row:   prev.Row.Over(cf.Row),
				Cell:  prev.Cell.Over(cf.Cell),
			}
		}
	}
	// rStyle inside a style definition has no effect.
	f.run.StyleID = ""
	t.cache.put(key, f)
	return f
}

type cacheKey struct {
	version [32]byte
	id      string
}

// Cache memoizes folded style chains. It is safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	entries map[cacheKey]*flat
	hits    int
	misses  int
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[cacheKey]*flat)}
}

func (c *Cache) get(k cacheKey) (*flat, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	f, ok := c.entries[k]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return f, ok
}

func (c *Cache) put(k cacheKey, f *flat) {
	c.mu.Lock()
	c.entries[k] = f
	c.mu.Unlock()
}

// Len returns the number of cached chains.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns the number of cache hits and misses.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
