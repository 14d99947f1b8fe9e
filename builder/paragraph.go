package builder

import (
	"github.com/tsawler/docxlayout/docx"
	"github.com/tsawler/docxlayout/model"
	"github.com/tsawler/docxlayout/style"
)

func (b *Builder) paragraph(p *docx.Paragraph, tables []style.TableLayer) *model.Paragraph {
	props, err := b.styles.ResolveParagraph(p.Props, tables)
	b.soft(err)

	var item *model.ListItem
	if props.Numbering != nil {
		item = b.listItem(props.Numbering)
		if item.Def != nil {
			// Level indentation sits between direct formatting and styles.
			props, err = b.styles.ResolveParagraphLevel(p.Props, tables, item.Def.Para)
			b.soft(err)
		}
	}

	out := &model.Paragraph{
		ID:         b.id(),
		Props:      props,
		List:       item,
		Extensions: p.Extensions,
		ExtAttrs:   p.ExtAttrs,
		Fields:     p.Fields,
	}

	mark, err := b.styles.ResolveRun(p.MarkProps, props.StyleID, tables)
	b.soft(err)
	out.Mark = mark
	if item != nil {
		item.Marker = mark
		if item.Def != nil {
			item.Marker = style.OverlayRun(mark, item.Def.Run)
		}
	}

	for _, r := range p.Runs {
		rp, err := b.styles.ResolveRun(r.Props, props.StyleID, tables)
		b.soft(err)
		for _, c := range r.Content {
			out.Runs = append(out.Runs, &model.Run{ID: b.id(), Props: rp, Content: content(c)})
		}
	}
	return out
}

func (b *Builder) listItem(ref *style.Numbering) *model.ListItem {
	item := &model.ListItem{NumID: ref.NumID, Level: ref.Level, Abstract: -1}
	lvl, inst, ok := b.numbering.Level(ref.NumID, ref.Level)
	if inst != nil {
		item.Abstract = inst.AbstractID
	}
	if ok {
		item.Def = lvl
	}
	return item
}

func content(c docx.RunContent) model.Content {
	switch v := c.(type) {
	case docx.Text:
		return model.Text{Value: v.Value}
	case docx.Break:
		return model.Break{Kind: v.Kind}
	case docx.Tab:
		return model.Tab{}
	case docx.Drawing:
		return model.Drawing{Width: v.Width, Height: v.Height, Name: v.Name}
	default:
		return model.Text{}
	}
}
