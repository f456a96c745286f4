// Package resolver derives the per-preverb conjugation table, gloss
// analysis, and examples from a verb document. It only reads the
// document and never mutates it; resolution is deterministic, so callers
// may memoize on (verb id, preverb).
package resolver

import "github.com/nkalandadze/zmna-backend/internal/domain"

// Resolve derives the conjugation content for the requested preverb.
//
// Single-preverb documents (or documents without a preverb config) yield
// their flat conjugations unchanged. For multi-preverb documents the
// pre-computed preverb content is merged per tense; a preverb whose
// content has not been generated yet falls back to the flat conjugations
// rather than failing. Missing gloss or example data defaults to empty
// structures.
//
// The returned tenses alias the document's form maps; treat them as
// read-only and access person slots through ResolvedTense.Form, which
// renders absent slots as the explicit no-form marker.
func Resolve(doc *domain.VerbDocument, preverb string) domain.ResolvedConjugation {
	if doc == nil {
		return domain.ResolvedConjugation{}
	}

	if !doc.IsMultiPreverb() {
		return flatten(doc)
	}

	if preverb == "" {
		preverb = doc.PreverbConfig.DefaultPreverb
	}

	content, ok := doc.PreverbContent[preverb]
	if !ok {
		// Content for this preverb has not been generated; degrade
		// gracefully to the unresolved conjugations.
		return flatten(doc)
	}

	resolved := make(domain.ResolvedConjugation, len(content.Conjugations))
	for tense, tf := range content.Conjugations {
		resolved[tense] = domain.ResolvedTense{
			Tense:    tense,
			Forms:    tf.Forms,
			Gloss:    glossFor(content.GlossAnalysis, tense, tf.RawGloss),
			Examples: examplesFor(content.Examples, tense),
		}
	}
	return resolved
}

// flatten exposes a document's flat conjugations as resolved tenses,
// without copying the underlying form maps.
func flatten(doc *domain.VerbDocument) domain.ResolvedConjugation {
	resolved := make(domain.ResolvedConjugation, len(doc.Conjugations))
	for tense, tf := range doc.Conjugations {
		resolved[tense] = domain.ResolvedTense{
			Tense:    tense,
			Forms:    tf.Forms,
			Gloss:    glossFor(doc.GlossAnalysis, tense, tf.RawGloss),
			Examples: examplesFor(doc.Examples, tense),
		}
	}
	return resolved
}

func glossFor(analyses map[string]domain.GlossAnalysis, tense, rawGloss string) domain.GlossAnalysis {
	if g, ok := analyses[tense]; ok {
		return g
	}
	return domain.GlossAnalysis{RawGloss: rawGloss}
}

func examplesFor(examples map[string][]domain.Example, tense string) []domain.Example {
	if ex, ok := examples[tense]; ok {
		return ex
	}
	return []domain.Example{}
}
