package render

import "github.com/nkalandadze/zmna-backend/internal/domain"

// maxExamplesPerTense keeps tense panels short on dense verbs.
const maxExamplesPerTense = 3

var tenseLabels = map[string]string{
	domain.TensePresent:    "Present",
	domain.TenseImperfect:  "Imperfect",
	domain.TenseFuture:     "Future",
	domain.TenseAorist:     "Aorist",
	domain.TenseOptative:   "Optative",
	domain.TenseImperative: "Imperative",
}

var personLabels = map[string]string{
	"1sg": "მე",
	"2sg": "შენ",
	"3sg": "ის",
	"1pl": "ჩვენ",
	"2pl": "თქვენ",
	"3pl": "ისინი",
}

// SectionData is the view model for a verb section fragment.
type SectionData struct {
	VerbID      int
	Georgian    string
	Description string

	Preverb           string
	AvailablePreverbs []string
	MultiPreverb      bool

	Overview []OverviewRow
	Tenses   []TenseView
}

// OverviewRow is one person row of the overview grid, with a cell per
// tense in canonical order.
type OverviewRow struct {
	Person string
	Label  string
	Cells  []string
}

// TenseView is one expanded tense panel.
type TenseView struct {
	Tense    string
	Label    string
	Forms    []FormRow
	Gloss    domain.GlossAnalysis
	Examples []domain.Example
}

// FormRow is one person slot within a tense panel.
type FormRow struct {
	Person string
	Label  string
	Form   string
}

// ErrorData is the view model for the load-failure placeholder.
type ErrorData struct {
	VerbID   int
	Georgian string
	Message  string
}

// BuildSection assembles the section view model from an index entry and
// a resolved conjugation. Tenses follow the canonical order; tenses
// absent from the resolution are skipped in the panels but still get an
// overview column so the grid shape is stable across verbs.
func BuildSection(entry domain.VerbIndexEntry, doc *domain.VerbDocument, preverb string, rc domain.ResolvedConjugation) SectionData {
	data := SectionData{
		VerbID:      entry.ID,
		Georgian:    entry.Georgian,
		Description: entry.Description,
		Preverb:     preverb,
	}
	if doc != nil && doc.IsMultiPreverb() {
		data.MultiPreverb = true
		data.AvailablePreverbs = doc.PreverbConfig.AvailablePreverbs
		if data.Preverb == "" {
			data.Preverb = doc.PreverbConfig.DefaultPreverb
		}
	}

	for _, person := range domain.Persons {
		row := OverviewRow{Person: person, Label: personLabels[person]}
		for _, tense := range domain.Tenses {
			rt, ok := rc[tense]
			if !ok || !personApplies(tense, person) {
				row.Cells = append(row.Cells, domain.NoForm)
				continue
			}
			row.Cells = append(row.Cells, rt.Form(person))
		}
		data.Overview = append(data.Overview, row)
	}

	for _, tense := range domain.Tenses {
		rt, ok := rc[tense]
		if !ok {
			continue
		}

		view := TenseView{
			Tense:    tense,
			Label:    tenseLabels[tense],
			Gloss:    rt.Gloss,
			Examples: rt.Examples,
		}
		if len(view.Examples) > maxExamplesPerTense {
			view.Examples = view.Examples[:maxExamplesPerTense]
		}
		for _, person := range domain.PersonsFor(tense) {
			view.Forms = append(view.Forms, FormRow{
				Person: person,
				Label:  personLabels[person],
				Form:   rt.Form(person),
			})
		}
		data.Tenses = append(data.Tenses, view)
	}

	return data
}

func personApplies(tense, person string) bool {
	for _, p := range domain.PersonsFor(tense) {
		if p == person {
			return true
		}
	}
	return false
}
