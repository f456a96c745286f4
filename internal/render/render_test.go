package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkalandadze/zmna-backend/internal/domain"
	"github.com/nkalandadze/zmna-backend/internal/resolver"
)

func testDoc() *domain.VerbDocument {
	return &domain.VerbDocument{
		ID: 17,
		PreverbConfig: &domain.PreverbConfig{
			HasMultiplePreverbs: true,
			DefaultPreverb:      "მი",
			AvailablePreverbs:   []string{"მი", "მო", "წა"},
		},
		PreverbContent: map[string]domain.PreverbContent{
			"მი": {
				Conjugations: domain.Conjugations{
					domain.TensePresent: {Forms: map[string]string{
						"1sg": "მივდივარ",
						"2sg": "მიდიხარ",
					}},
					domain.TenseImperative: {Forms: map[string]string{
						"2sg": "მიდი",
						"2pl": "მიდით",
					}},
				},
				Examples: map[string][]domain.Example{
					domain.TensePresent: {
						{Georgian: "მე მივდივარ", English: "I am going"},
						{Georgian: "a", English: "b"},
						{Georgian: "c", English: "d"},
						{Georgian: "e", English: "f"},
					},
				},
				GlossAnalysis: map[string]domain.GlossAnalysis{
					domain.TensePresent: {
						RawGloss:   "V MedAct Pres",
						Components: []domain.GlossComponent{{Label: "voice", Value: "medio-active"}},
					},
				},
			},
		},
	}
}

func testEntry() domain.VerbIndexEntry {
	return domain.VerbIndexEntry{ID: 17, Georgian: "მისვლა", Description: "to go (there)"}
}

func TestBuildSection(t *testing.T) {
	t.Parallel()

	doc := testDoc()
	rc := resolver.Resolve(doc, "მი")
	data := BuildSection(testEntry(), doc, "", rc)

	assert.Equal(t, 17, data.VerbID)
	assert.True(t, data.MultiPreverb)
	assert.Equal(t, "მი", data.Preverb, "empty preverb falls back to the default")
	assert.Equal(t, []string{"მი", "მო", "წა"}, data.AvailablePreverbs)

	// The overview grid always has one row per person and one column per
	// tense, regardless of which slots the verb fills.
	require.Len(t, data.Overview, len(domain.Persons))
	for _, row := range data.Overview {
		assert.Len(t, row.Cells, len(domain.Tenses))
	}
	assert.Equal(t, "მივდივარ", data.Overview[0].Cells[0])
	assert.Equal(t, domain.NoForm, data.Overview[2].Cells[0], "3sg present is absent")

	// Panels only exist for resolved tenses; imperative keeps its
	// second-person-only slots.
	require.Len(t, data.Tenses, 2)
	assert.Equal(t, domain.TensePresent, data.Tenses[0].Tense)
	imp := data.Tenses[1]
	assert.Equal(t, domain.TenseImperative, imp.Tense)
	require.Len(t, imp.Forms, 2)
	assert.Equal(t, "მიდი", imp.Forms[0].Form)

	// Examples are capped.
	assert.Len(t, data.Tenses[0].Examples, maxExamplesPerTense)
}

func TestBuildSection_ImperativeOnlySecondPersonInOverview(t *testing.T) {
	t.Parallel()

	doc := testDoc()
	rc := resolver.Resolve(doc, "მი")
	data := BuildSection(testEntry(), doc, "მი", rc)

	impCol := -1
	for i, tense := range domain.Tenses {
		if tense == domain.TenseImperative {
			impCol = i
		}
	}
	require.GreaterOrEqual(t, impCol, 0)

	for _, row := range data.Overview {
		switch row.Person {
		case "2sg":
			assert.Equal(t, "მიდი", row.Cells[impCol])
		case "2pl":
			assert.Equal(t, "მიდით", row.Cells[impCol])
		default:
			assert.Equal(t, domain.NoForm, row.Cells[impCol], "person %s", row.Person)
		}
	}
}

func TestVerbSection_Renders(t *testing.T) {
	t.Parallel()

	r, err := New()
	require.NoError(t, err)

	doc := testDoc()
	rc := resolver.Resolve(doc, "მი")
	data := BuildSection(testEntry(), doc, "მი", rc)

	var buf bytes.Buffer
	require.NoError(t, r.VerbSection(&buf, data))
	html := buf.String()

	assert.Contains(t, html, `id="verb-17"`)
	assert.Contains(t, html, "მისვლა")
	assert.Contains(t, html, "მივდივარ")
	assert.Contains(t, html, `data-preverb="წა"`)
	assert.Contains(t, html, "medio-active")
	assert.Contains(t, html, "I am going")
	assert.Contains(t, html, `aria-selected="true"`)
}

func TestVerbSection_Idempotent(t *testing.T) {
	t.Parallel()

	r, err := New()
	require.NoError(t, err)

	doc := testDoc()
	rc := resolver.Resolve(doc, "მი")
	data := BuildSection(testEntry(), doc, "მი", rc)

	var first, second bytes.Buffer
	require.NoError(t, r.VerbSection(&first, data))
	require.NoError(t, r.VerbSection(&second, data))

	assert.Equal(t, first.String(), second.String())
}

func TestVerbSection_EscapesUntrustedText(t *testing.T) {
	t.Parallel()

	r, err := New()
	require.NoError(t, err)

	entry := domain.VerbIndexEntry{ID: 1, Georgian: "x", Description: `<script>alert(1)</script>`}
	data := BuildSection(entry, nil, "", domain.ResolvedConjugation{})

	var buf bytes.Buffer
	require.NoError(t, r.VerbSection(&buf, data))

	assert.NotContains(t, buf.String(), "<script>")
}

func TestVerbSection_SinglePreverbHasNoSelector(t *testing.T) {
	t.Parallel()

	r, err := New()
	require.NoError(t, err)

	doc := &domain.VerbDocument{
		ID: 4,
		Conjugations: domain.Conjugations{
			domain.TenseAorist: {Forms: map[string]string{"3sg": "თქვა"}},
		},
	}
	rc := resolver.Resolve(doc, "")
	data := BuildSection(domain.VerbIndexEntry{ID: 4, Georgian: "თქმა"}, doc, "", rc)

	var buf bytes.Buffer
	require.NoError(t, r.VerbSection(&buf, data))

	assert.False(t, strings.Contains(buf.String(), "preverb-selector"))
}

func TestErrorPanel(t *testing.T) {
	t.Parallel()

	r, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.ErrorPanel(&buf, ErrorData{
		VerbID:   9,
		Georgian: "წასვლა",
		Message:  "Could not load conjugation data.",
	}))

	html := buf.String()
	assert.Contains(t, html, `id="verb-9"`)
	assert.Contains(t, html, "Could not load conjugation data.")
	assert.Contains(t, html, "retry-load")
}
