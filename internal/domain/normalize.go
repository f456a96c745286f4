package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// rawDocument accepts every key spelling found in historical verb
// artifacts. Several generations of the data pipeline disagreed on
// whether preverb_rules, preverb_config, or preverb_content was
// authoritative; preverb_config + preverb_content is canonical and the
// rest are folded in here, once, at the fetch boundary.
type rawDocument struct {
	VerbDocument

	PreverbRules        *PreverbConfig            `json:"preverb_rules,omitempty"`
	PreverbConjugations map[string]PreverbContent `json:"preverb_conjugations,omitempty"`
}

// DecodeDocument parses a verb document payload and normalizes legacy key
// spellings into the canonical shape. A JSON-level failure is returned as
// is (the cache treats it as a transient load failure); shape oddities are
// repaired, not rejected.
func DecodeDocument(data []byte) (*VerbDocument, error) {
	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode verb document: %w", err)
	}

	doc := raw.VerbDocument

	if doc.PreverbConfig == nil && raw.PreverbRules != nil {
		doc.PreverbConfig = raw.PreverbRules
	}
	if len(doc.PreverbContent) == 0 && len(raw.PreverbConjugations) > 0 {
		doc.PreverbContent = raw.PreverbConjugations
	}

	NormalizeDocument(&doc)
	return &doc, nil
}

// NormalizeDocument repairs a decoded document in place so every access
// point past the adapter can default-to-empty instead of nil-checking:
// nil sub-maps become empty, preverb lists always include the default,
// and form values are whitespace-trimmed.
func NormalizeDocument(doc *VerbDocument) {
	if doc.Conjugations == nil {
		doc.Conjugations = Conjugations{}
	}
	for tense, tf := range doc.Conjugations {
		doc.Conjugations[tense] = normalizeTenseForms(tf)
	}

	for preverb, pc := range doc.PreverbContent {
		if pc.Conjugations == nil {
			pc.Conjugations = Conjugations{}
		}
		for tense, tf := range pc.Conjugations {
			pc.Conjugations[tense] = normalizeTenseForms(tf)
		}
		if pc.Examples == nil {
			pc.Examples = map[string][]Example{}
		}
		if pc.GlossAnalysis == nil {
			pc.GlossAnalysis = map[string]GlossAnalysis{}
		}
		doc.PreverbContent[preverb] = pc
	}

	if cfg := doc.PreverbConfig; cfg != nil {
		cfg.DefaultPreverb = strings.TrimSpace(cfg.DefaultPreverb)
		if cfg.DefaultPreverb != "" && !contains(cfg.AvailablePreverbs, cfg.DefaultPreverb) {
			cfg.AvailablePreverbs = append([]string{cfg.DefaultPreverb}, cfg.AvailablePreverbs...)
		}
	}
}

// normalizeTenseForms trims form values and drops empty ones so that an
// absent form and an empty-string form are the same condition downstream.
func normalizeTenseForms(tf TenseForms) TenseForms {
	for person, form := range tf.Forms {
		form = strings.TrimSpace(form)
		if form == "" {
			delete(tf.Forms, person)
			continue
		}
		tf.Forms[person] = form
	}
	return tf
}

// Validate checks the document invariants that the data pipeline is
// supposed to guarantee. Used by the verify tool; the serving path only
// normalizes and degrades gracefully.
func (d *VerbDocument) Validate() error {
	var errs []FieldError

	if d.ID <= 0 {
		errs = append(errs, FieldError{Field: "id", Message: "must be a positive integer"})
	}

	if d.IsMultiPreverb() {
		def := d.PreverbConfig.DefaultPreverb
		if def == "" {
			errs = append(errs, FieldError{Field: "preverb_config.default_preverb", Message: "required for multi-preverb verbs"})
		} else if _, ok := d.PreverbContent[def]; !ok {
			errs = append(errs, FieldError{
				Field:   "preverb_content",
				Message: fmt.Sprintf("missing content for default preverb %q", def),
			})
		}
	}

	for tense := range d.Conjugations {
		if !contains(Tenses, tense) {
			errs = append(errs, FieldError{Field: "conjugations", Message: fmt.Sprintf("unknown tense %q", tense)})
		}
	}
	for preverb, pc := range d.PreverbContent {
		for tense := range pc.Conjugations {
			if !contains(Tenses, tense) {
				errs = append(errs, FieldError{
					Field:   "preverb_content." + preverb,
					Message: fmt.Sprintf("unknown tense %q", tense),
				})
			}
		}
	}

	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// NormalizeText prepares text for search comparison: trims whitespace,
// lowercases (a no-op for Georgian script, which has no case), and
// compresses runs of spaces. Diacritics and hyphens are preserved.
func NormalizeText(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	text = strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(text))
	prevSpace := false
	for _, r := range text {
		if r == ' ' {
			if prevSpace {
				continue
			}
			prevSpace = true
		} else {
			prevSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
