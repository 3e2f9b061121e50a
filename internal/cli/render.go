package cli

import (
	"os"
	"strconv"
	"strings"

	"github.com/aidanlsb/rtend/internal/model"
	"github.com/aidanlsb/rtend/internal/mutation"
	"github.com/aidanlsb/rtend/internal/ui"
)

func newTable(columns ...ui.Column) *ui.Table {
	return ui.NewTable(ui.DetectDisplay(os.Stdout), columns...)
}

func idColumn(title string) ui.Column {
	return ui.Column{Title: title, Align: ui.AlignRight, Style: ui.Accent}
}

func timeColumn(title string) ui.Column {
	return ui.Column{Title: title, Style: ui.Muted}
}

func countColumn(title string) ui.Column {
	return ui.Column{Title: title, Align: ui.AlignRight}
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }

func renderEntity(e *model.Entity) string {
	t := newTable(idColumn("id"), timeColumn("created"))
	if e != nil {
		t.AddRow(itoa(e.ID), e.Created.String())
	}
	return t.Render()
}

func renderEntitiesLong(rows []model.EntityLong) string {
	t := newTable(idColumn("id"), ui.Column{Title: "aliases"}, countColumn("#aliases"), countColumn("#snippets"), timeColumn("created"))
	for _, e := range rows {
		t.AddRow(itoa(e.ID), e.Aliases, itoa(e.AliasCount), itoa(e.SnippetCount), e.Created.String())
	}
	return t.Render()
}

func renderDetail(rows []model.DetailRow) string {
	t := newTable(ui.Column{Title: "type"}, idColumn("id"), ui.Column{Title: "data"}, timeColumn("created"), timeColumn("updated"))
	for _, r := range rows {
		t.AddRow(r.Kind.String(), itoa(r.ID), r.Data, r.Created.String(), r.Updated.String())
	}
	return t.Render()
}

func renderEntityView(view model.EntityView) string {
	switch v := view.(type) {
	case model.PlainView:
		return renderEntity(v.Entity)
	case model.LongView:
		var rows []model.EntityLong
		if v.Entity != nil {
			rows = append(rows, *v.Entity)
		}
		return renderEntitiesLong(rows)
	case model.DetailView:
		return renderDetail(v.Rows)
	default:
		return ui.NothingFound + "\n"
	}
}

func renderAliases(rows []model.Alias) string {
	t := newTable(idColumn("id"), ui.Column{Title: "name"}, countColumn("entity_id"), timeColumn("created"), timeColumn("updated"))
	for _, a := range rows {
		t.AddRow(itoa(a.ID), a.Name, itoa(a.EntityID), a.Created.String(), a.Updated.String())
	}
	return t.Render()
}

func renderAliasMatches(rows []model.AliasMatch) string {
	t := newTable(idColumn("id"), countColumn("entity_id"), ui.Column{Title: "name"}, timeColumn("updated"))
	for _, a := range rows {
		t.AddRow(itoa(a.ID), itoa(a.EntityID), a.Name, a.Updated.String())
	}
	return t.Render()
}

func renderAliasMatchesLong(rows []model.AliasMatchLong) string {
	t := newTable(idColumn("id"), countColumn("entity_id"), ui.Column{Title: "name"}, ui.Column{Title: "other aliases"}, timeColumn("updated"))
	for _, a := range rows {
		t.AddRow(itoa(a.ID), itoa(a.EntityID), a.Name, a.OtherAliases, a.Updated.String())
	}
	return t.Render()
}

func renderRelations(rows []model.Relation) string {
	t := newTable(idColumn("id"), countColumn("entity_id_a"), countColumn("entity_id_b"), timeColumn("created"), timeColumn("updated"))
	for _, r := range rows {
		t.AddRow(itoa(r.ID), itoa(r.EntityIDA), itoa(r.EntityIDB), r.Created.String(), r.Updated.String())
	}
	return t.Render()
}

func renderRelationsLong(rows []model.RelationLong) string {
	t := newTable(idColumn("id"), countColumn("entity_id_a"), ui.Column{Title: "aliases a"}, countColumn("entity_id_b"), ui.Column{Title: "aliases b"}, timeColumn("updated"))
	for _, r := range rows {
		t.AddRow(itoa(r.ID), itoa(r.EntityIDA), r.AliasesA, itoa(r.EntityIDB), r.AliasesB, r.Updated.String())
	}
	return t.Render()
}

func renderSnippets(rows []model.Snippet) string {
	t := newTable(idColumn("id"), ui.Column{Title: "data"}, timeColumn("created"), timeColumn("updated"))
	for _, s := range rows {
		t.AddRow(itoa(s.ID), s.Data, s.Created.String(), s.Updated.String())
	}
	return t.Render()
}

func renderRelationSnippets(rows []model.RelationSnippet) string {
	t := newTable(idColumn("id"), ui.Column{Title: "data"}, timeColumn("created"), timeColumn("updated"))
	for _, s := range rows {
		t.AddRow(itoa(s.ID), s.Data, s.Created.String(), s.Updated.String())
	}
	return t.Render()
}

func renderSnippetMatches(rows []model.SnippetMatch) string {
	t := newTable(idColumn("id"), ui.Column{Title: "data"}, countColumn("entity_id"), timeColumn("updated"))
	for _, s := range rows {
		t.AddRow(itoa(s.ID), s.Data, itoa(s.EntityID), s.Updated.String())
	}
	return t.Render()
}

func renderRelationSnippetMatches(rows []model.RelationSnippetMatch) string {
	t := newTable(idColumn("id"), ui.Column{Title: "data"}, countColumn("relation_id"), timeColumn("updated"))
	for _, s := range rows {
		t.AddRow(itoa(s.ID), s.Data, itoa(s.RelationID), s.Updated.String())
	}
	return t.Render()
}

func renderStats(rows []model.Stat) string {
	t := newTable(ui.Column{Title: "type"}, countColumn("count"))
	for _, s := range rows {
		t.AddRow(s.Type, itoa(s.Count))
	}
	return t.Render()
}

func renderPlan(steps []mutation.Step) string {
	t := newTable(ui.Column{Title: "step"}, ui.Column{Title: "removes"}, countColumn("rows"))
	for i, s := range steps {
		t.AddRow(itoa(int64(i+1)), s.Label, itoa(s.Rows))
	}
	return t.Render()
}

type markdownBlock struct {
	ID      int64
	Text    string
	Updated string
}

// renderMarkdownBlocks renders each block under an id header through glamour.
func renderMarkdownBlocks(blocks []markdownBlock) (string, error) {
	if len(blocks) == 0 {
		return ui.NothingFound + "\n", nil
	}
	width := ui.DetectDisplay(os.Stdout).Width
	var b strings.Builder
	for _, block := range blocks {
		rendered, err := ui.RenderMarkdown(block.Text, width)
		if err != nil {
			return "", err
		}
		b.WriteString(ui.Header("#"+itoa(block.ID)) + "  " + ui.Hint(block.Updated) + "\n")
		b.WriteString(rendered)
	}
	return b.String(), nil
}
