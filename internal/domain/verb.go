package domain

import "strconv"

// Tense names in canonical display order. The imperative paradigm only
// carries 2nd-person forms.
const (
	TensePresent    = "present"
	TenseImperfect  = "imperfect"
	TenseFuture     = "future"
	TenseAorist     = "aorist"
	TenseOptative   = "optative"
	TenseImperative = "imperative"
)

// Tenses lists all screves in display order.
var Tenses = []string{
	TensePresent,
	TenseImperfect,
	TenseFuture,
	TenseAorist,
	TenseOptative,
	TenseImperative,
}

// Persons lists person labels in display order.
var Persons = []string{"1sg", "2sg", "3sg", "1pl", "2pl", "3pl"}

// NoForm is the explicit "no form exists" marker for person slots a
// paradigm does not fill (e.g. non-2nd persons of the imperative).
// It is distinct from an empty string, which is never emitted.
const NoForm = "-"

// PersonsFor returns the person labels a tense can fill.
func PersonsFor(tense string) []string {
	if tense == TenseImperative {
		return []string{"2sg", "2pl"}
	}
	return Persons
}

// VerbIndexEntry is one row of the lightweight navigation index.
// Entries are immutable once fetched; collection order is the source
// file's insertion order.
type VerbIndexEntry struct {
	ID          int    `json:"id"`
	Georgian    string `json:"georgian"`
	Description string `json:"description"`
	SemanticKey string `json:"semantic_key"`
}

// VerbIndex is the payload of data/verbs-index.json.
type VerbIndex struct {
	Verbs []VerbIndexEntry `json:"verbs"`
}

// PreverbConfig describes which preverbs a verb supports.
type PreverbConfig struct {
	HasMultiplePreverbs bool     `json:"has_multiple_preverbs"`
	DefaultPreverb      string   `json:"default_preverb"`
	AvailablePreverbs   []string `json:"available_preverbs"`
}

// TenseForms holds the surface forms of one tense, keyed by person label.
// A person absent from the map has no form in this paradigm.
type TenseForms struct {
	Forms    map[string]string `json:"forms"`
	RawGloss string            `json:"raw_gloss,omitempty"`
}

// Conjugations maps tense name to its forms.
type Conjugations map[string]TenseForms

// Example is a usage sentence with an optional component breakdown.
type Example struct {
	Georgian   string             `json:"georgian"`
	English    string             `json:"english"`
	Components []ExampleComponent `json:"components,omitempty"`
}

// ExampleComponent is one annotated chunk of an example sentence.
type ExampleComponent struct {
	Text  string `json:"text"`
	Role  string `json:"role,omitempty"`
	Gloss string `json:"gloss,omitempty"`
}

// GlossComponent is one element of a structured gloss breakdown
// (voice, tense, argument-case pattern, ...).
type GlossComponent struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// GlossAnalysis is the structured linguistic annotation of a tense.
type GlossAnalysis struct {
	RawGloss   string           `json:"raw_gloss,omitempty"`
	Components []GlossComponent `json:"components,omitempty"`
}

// PreverbContent is the pre-computed content for one preverb of a
// multi-preverb verb, each sub-object keyed by tense.
type PreverbContent struct {
	Conjugations  Conjugations             `json:"conjugations"`
	Examples      map[string][]Example     `json:"examples,omitempty"`
	GlossAnalysis map[string]GlossAnalysis `json:"gloss_analysis,omitempty"`
}

// VerbDocument is the full per-verb payload served as data/verb_{id}.json.
//
// Multi-preverb verbs carry PreverbConfig + PreverbContent; single-preverb
// verbs carry the flat Conjugations/Examples/GlossAnalysis fields. The
// cache owns a document exclusively once fetched; the resolver only reads
// it and never mutates it.
type VerbDocument struct {
	ID          int    `json:"id"`
	Georgian    string `json:"georgian,omitempty"`
	Description string `json:"description,omitempty"`
	SemanticKey string `json:"semantic_key,omitempty"`

	PreverbConfig  *PreverbConfig            `json:"preverb_config,omitempty"`
	PreverbContent map[string]PreverbContent `json:"preverb_content,omitempty"`

	Conjugations  Conjugations             `json:"conjugations,omitempty"`
	Examples      map[string][]Example     `json:"examples,omitempty"`
	GlossAnalysis map[string]GlossAnalysis `json:"gloss_analysis,omitempty"`
}

// IsMultiPreverb reports whether the document declares interchangeable
// preverbs. Absent config means a single fixed preverb.
func (d *VerbDocument) IsMultiPreverb() bool {
	return d.PreverbConfig != nil && d.PreverbConfig.HasMultiplePreverbs
}

// DefaultPreverb returns the configured default preverb, or "" for
// single-preverb verbs.
func (d *VerbDocument) DefaultPreverb() string {
	if d.PreverbConfig == nil {
		return ""
	}
	return d.PreverbConfig.DefaultPreverb
}

// Key returns the string cache/document key for a verb id
// (decimal, no padding).
func Key(id int) string {
	return strconv.Itoa(id)
}

// ResolvedTense is one tense of a resolved conjugation table.
//
// Forms may alias the source document's map (the fallback path returns the
// flat conjugations untouched); callers must treat it as read-only and use
// Form for person access.
type ResolvedTense struct {
	Tense    string
	Forms    map[string]string
	Gloss    GlossAnalysis
	Examples []Example
}

// Form returns the surface form for a person label, or NoForm when the
// paradigm has no form in that slot. The empty string is never returned.
func (t ResolvedTense) Form(person string) string {
	if f, ok := t.Forms[person]; ok && f != "" {
		return f
	}
	return NoForm
}

// ResolvedConjugation maps tense name to its resolved content. It is
// ephemeral: computed per resolve call and memoized only by the caller.
type ResolvedConjugation map[string]ResolvedTense
